package ports

import (
	"context"

	"github.com/safevault/safevault/internal/core/domain"
)

type SubmissionService interface {
	Submit(ctx context.Context, username, email string) (*domain.Submission, error)
}
