package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lavanyasahu/CitiFix/common"
	"github.com/lavanyasahu/CitiFix/models"
)

// MemoryStore is an in-memory implementation of UserStore and IssueStore
// used by the service tests. A single mutex serializes writes, mirroring
// the coarse-lock discipline the backing store otherwise provides.
type MemoryStore struct {
	mu         sync.Mutex
	users      []models.User
	issues     []models.Issue
	signatures []models.Signature
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Exact-match uniqueness, the same comparison Mongo's unique
	// indexes apply with the default collation.
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return primitive.NilObjectID, common.ErrDuplicateIdentity
		}
	}
	u.ID = primitive.NewObjectID()
	s.users = append(s.users, *u)
	return u.ID, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Username == username {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryStore) CreateIssue(ctx context.Context, issue *models.Issue) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue.ID = primitive.NewObjectID()
	s.issues = append(s.issues, *issue)
	return issue.ID, nil
}

func (s *MemoryStore) GetIssueByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findIssue(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	issue := s.issues[i]
	return &issue, nil
}

func (s *MemoryStore) ListIssues(ctx context.Context) ([]models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Newest first; reverse insertion order breaks creation-time ties.
	out := make([]models.Issue, 0, len(s.issues))
	for i := len(s.issues) - 1; i >= 0; i-- {
		out = append(out, s.issues[i])
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out, nil
}

// MarkInProgress checks the pending status and flips it under the same
// lock, matching the conditional write the Mongo store issues.
func (s *MemoryStore) MarkInProgress(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findIssue(id)
	if i < 0 {
		return common.ErrNotFound
	}
	if s.issues[i].Status != models.StatusPending {
		return fmt.Errorf("%w: only pending issues can be acknowledged", common.ErrValidation)
	}
	s.issues[i].Status = models.StatusInProgress
	return nil
}

func (s *MemoryStore) SetAdminNotes(ctx context.Context, id primitive.ObjectID, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findIssue(id)
	if i < 0 {
		return common.ErrNotFound
	}
	s.issues[i].AdminNotes = &notes
	return nil
}

func (s *MemoryStore) AddSignature(ctx context.Context, sig *models.Signature) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sig.ID = primitive.NewObjectID()
	s.signatures = append(s.signatures, *sig)
	return sig.ID, nil
}

func (s *MemoryStore) SignaturesForIssue(ctx context.Context, issueID primitive.ObjectID) ([]models.Signature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Signature{}
	for _, sig := range s.signatures {
		if sig.IssueID == issueID {
			out = append(out, sig)
		}
	}
	return out, nil
}

func (s *MemoryStore) ResolveIssue(ctx context.Context, issueID, authorityID primitive.ObjectID, note string) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findIssue(issueID)
	if i < 0 {
		return primitive.NilObjectID, common.ErrNotFound
	}

	now := time.Now().UTC()
	sig := models.Signature{
		ID:          primitive.NewObjectID(),
		IssueID:     issueID,
		AuthorityID: authorityID,
		Note:        note,
		SignedAt:    now,
	}
	s.signatures = append(s.signatures, sig)

	s.issues[i].Status = models.StatusResolved
	s.issues[i].ResolvedAt = &now
	s.issues[i].ResolvedBy = &authorityID
	return sig.ID, nil
}

// findIssue returns the index of the issue with the given id, or -1.
// Caller must hold the mutex.
func (s *MemoryStore) findIssue(id primitive.ObjectID) int {
	for i := range s.issues {
		if s.issues[i].ID == id {
			return i
		}
	}
	return -1
}
