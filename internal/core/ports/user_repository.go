package ports

import (
	"context"

	"github.com/safevault/safevault/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Create must be atomic insert-if-absent: concurrent inserts of the same
// username yield exactly one success, the rest domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SubmissionRepository persists unauthenticated form submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
}
