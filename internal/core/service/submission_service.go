package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/safevault/safevault/internal/core/domain"
	"github.com/safevault/safevault/internal/core/ports"
	"github.com/safevault/safevault/internal/core/sanitize"
)

// SubmissionService handles the unauthenticated form path: sanitize,
// validate, persist. No credentials are involved.
type SubmissionService struct {
	repo ports.SubmissionRepository
	log  zerolog.Logger
}

func NewSubmissionService(repo ports.SubmissionRepository, log zerolog.Logger) *SubmissionService {
	return &SubmissionService{repo: repo, log: log}
}

// Submit stores a sanitized submission and returns it so the caller can echo
// the accepted values. The returned fields are already inert for HTML output.
func (s *SubmissionService) Submit(ctx context.Context, username, email string) (*domain.Submission, error) {
	username = sanitize.Clean(username)
	email = sanitize.Clean(email)

	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	submission := &domain.Submission{
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		s.log.Error().Err(err).Msg("failed to store submission")
		return nil, err
	}

	s.log.Info().Str("username", username).Msg("submission stored")
	return submission, nil
}
