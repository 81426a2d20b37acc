package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Signature records an authority's endorsement of an issue. The history
// is append-only: signatures are never edited or removed, and an
// authority may sign the same issue more than once.
type Signature struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueID     primitive.ObjectID `bson:"issueId" json:"issueId"`
	AuthorityID primitive.ObjectID `bson:"authorityId" json:"authorityId"`
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
	SignedAt    time.Time          `bson:"signedAt" json:"signedAt"`
}
