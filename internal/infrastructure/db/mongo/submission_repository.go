package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/safevault/safevault/internal/core/domain"
)

const submissionCollection = "submissions"

// SubmissionRepository stores unauthenticated form submissions. Usernames
// are not unique here; the same visitor may submit more than once.
type SubmissionRepository struct {
	coll *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{coll: db.Collection(submissionCollection)}
}

type submissionDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	doc := submissionDoc{
		Username:  submission.Username,
		Email:     submission.Email,
		CreatedAt: submission.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}
