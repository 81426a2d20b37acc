package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lavanyasahu/CitiFix/common"
	"github.com/lavanyasahu/CitiFix/models"
)

const queryTimeout = 10 * time.Second

// MongoStore implements UserStore and IssueStore on top of MongoDB.
// Each mutation is a single statement, so the driver's per-document
// atomicity is the only write discipline we need.
type MongoStore struct {
	users      *mongo.Collection
	issues     *mongo.Collection
	signatures *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users:      db.Collection("users"),
		issues:     db.Collection("issues"),
		signatures: db.Collection("authority_signatures"),
	}
}

// EnsureIndexes creates the unique indexes on username and email that
// back the DuplicateIdentity guarantee.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	u.ID = primitive.NewObjectID()
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, common.ErrDuplicateIdentity
		}
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	return u.ID, nil
}

func (s *MongoStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *MongoStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *MongoStore) CreateIssue(ctx context.Context, issue *models.Issue) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	issue.ID = primitive.NewObjectID()
	if _, err := s.issues.InsertOne(ctx, issue); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert issue: %w", err)
	}
	return issue.ID, nil
}

func (s *MongoStore) GetIssueByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var issue models.Issue
	if err := s.issues.FindOne(ctx, bson.M{"_id": id}).Decode(&issue); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("find issue: %w", err)
	}
	return &issue, nil
}

func (s *MongoStore) ListIssues(ctx context.Context) ([]models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.issues.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return issues, nil
}

// MarkInProgress filters on the pending status so the transition and
// the check are one write. A resolve that lands first leaves nothing
// for the update to match, and the issue stays resolved.
func (s *MongoStore) MarkInProgress(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": models.StatusPending}
	res, err := s.issues.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": models.StatusInProgress}})
	if err != nil {
		return fmt.Errorf("acknowledge issue: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetIssueByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: only pending issues can be acknowledged", common.ErrValidation)
	}
	return nil
}

func (s *MongoStore) SetAdminNotes(ctx context.Context, id primitive.ObjectID, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.issues.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"adminNotes": notes}})
	if err != nil {
		return fmt.Errorf("set admin notes: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *MongoStore) AddSignature(ctx context.Context, sig *models.Signature) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	sig.ID = primitive.NewObjectID()
	if _, err := s.signatures.InsertOne(ctx, sig); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert signature: %w", err)
	}
	return sig.ID, nil
}

func (s *MongoStore) SignaturesForIssue(ctx context.Context, issueID primitive.ObjectID) ([]models.Signature, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "signedAt", Value: 1}})
	cursor, err := s.signatures.Find(ctx, bson.M{"issueId": issueID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list signatures: %w", err)
	}
	defer cursor.Close(ctx)

	sigs := []models.Signature{}
	if err := cursor.All(ctx, &sigs); err != nil {
		return nil, fmt.Errorf("decode signatures: %w", err)
	}
	return sigs, nil
}

// ResolveIssue records the signature first and then flips the issue to
// resolved. A standalone Mongo node has no multi-document transactions,
// so if the second write fails the caller gets ErrPartialResolution and
// retries; the status set is idempotent and the audit trail tolerates
// the extra signature.
func (s *MongoStore) ResolveIssue(ctx context.Context, issueID, authorityID primitive.ObjectID, note string) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	sigID, err := s.AddSignature(ctx, &models.Signature{
		IssueID:     issueID,
		AuthorityID: authorityID,
		Note:        note,
		SignedAt:    now,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	uctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     models.StatusResolved,
		"resolvedAt": now,
		"resolvedBy": authorityID,
	}}
	res, err := s.issues.UpdateOne(uctx, bson.M{"_id": issueID}, update)
	if err != nil {
		return sigID, fmt.Errorf("%w: %v", common.ErrPartialResolution, err)
	}
	if res.MatchedCount == 0 {
		return sigID, fmt.Errorf("%w: issue %s missing", common.ErrPartialResolution, issueID.Hex())
	}
	return sigID, nil
}
