// Package store persists users, issues, and authority signatures. The
// services take these interfaces as constructor parameters; Mongo backs
// the server, the in-memory store backs tests.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lavanyasahu/CitiFix/models"
)

// UserStore persists accounts. Users are never deleted or mutated after
// creation.
type UserStore interface {
	// CreateUser inserts u and returns its generated id. It fails with
	// common.ErrDuplicateIdentity if the username or email is taken.
	CreateUser(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// IssueStore persists issues and their signature audit trail. Every
// mutation is a single atomic write; two concurrent AddSignature calls on
// the same issue both land.
type IssueStore interface {
	CreateIssue(ctx context.Context, issue *models.Issue) (primitive.ObjectID, error)
	GetIssueByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	// ListIssues returns every issue, newest-created first.
	ListIssues(ctx context.Context) ([]models.Issue, error)
	// MarkInProgress moves a pending issue to in_progress. The check and
	// the transition are one conditional write, so a concurrently
	// resolved issue can never be reverted. It fails with
	// common.ErrNotFound for a missing issue and common.ErrValidation
	// when the issue is no longer pending.
	MarkInProgress(ctx context.Context, id primitive.ObjectID) error
	SetAdminNotes(ctx context.Context, id primitive.ObjectID, notes string) error
	AddSignature(ctx context.Context, sig *models.Signature) (primitive.ObjectID, error)
	// SignaturesForIssue returns the audit trail, oldest first.
	SignaturesForIssue(ctx context.Context, issueID primitive.ObjectID) ([]models.Signature, error)
	// ResolveIssue appends a signature and then marks the issue resolved.
	// If the status update fails after the signature lands, the error
	// wraps common.ErrPartialResolution; retrying is safe since the
	// status set is idempotent and extra signatures are permitted.
	ResolveIssue(ctx context.Context, issueID, authorityID primitive.ObjectID, note string) (primitive.ObjectID, error)
}
