package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/safevault/safevault/internal/core/domain"
)

type stubSubmissionRepo struct {
	submissions []*domain.Submission
	err         error
}

func (r *stubSubmissionRepo) Create(_ context.Context, s *domain.Submission) error {
	if r.err != nil {
		return r.err
	}
	r.submissions = append(r.submissions, s)
	return nil
}

func TestSubmissionService_Submit_Success(t *testing.T) {
	repo := &stubSubmissionRepo{}
	svc := NewSubmissionService(repo, zerolog.Nop())

	sub, err := svc.Submit(context.Background(), "  alice  ", "alice@example.com")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if sub.Username != "alice" || sub.Email != "alice@example.com" {
		t.Fatalf("unexpected submission: %+v", sub)
	}
	if len(repo.submissions) != 1 {
		t.Fatalf("expected one stored submission, got %d", len(repo.submissions))
	}
}

func TestSubmissionService_Submit_RejectsInjection(t *testing.T) {
	repo := &stubSubmissionRepo{}
	svc := NewSubmissionService(repo, zerolog.Nop())

	cases := []struct {
		name     string
		username string
		email    string
		want     error
	}{
		{"xss username", "<script>alert('xss')</script>", "xss@example.com", domain.ErrInvalidUsername},
		{"sql username", "testuser', DROP TABLE Users;--", "test@example.com", domain.ErrInvalidUsername},
		{"xss email", "xssuser", "<img src=x onerror=alert('xss')>", domain.ErrInvalidEmail},
		{"sql email", "admin", "test@example.com' OR '1'='1", domain.ErrInvalidEmail},
	}

	for _, tc := range cases {
		if _, err := svc.Submit(context.Background(), tc.username, tc.email); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(repo.submissions) != 0 {
		t.Fatalf("rejected submissions must not write, store has %d", len(repo.submissions))
	}
}

func TestSubmissionService_Submit_SanitizedValuesAreInert(t *testing.T) {
	repo := &stubSubmissionRepo{}
	svc := NewSubmissionService(repo, zerolog.Nop())

	// Tag shapes are stripped before validation, so this passes and the
	// stored value must contain nothing renderable as markup.
	sub, err := svc.Submit(context.Background(), "<b>alice</b>", "alice@example.com")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if strings.ContainsAny(sub.Username, `<>'";`) {
		t.Fatalf("stored username not sanitized: %q", sub.Username)
	}
	if sub.Username != "alice" {
		t.Fatalf("expected %q, got %q", "alice", sub.Username)
	}
}
