package ports

import (
	"context"

	"github.com/safevault/safevault/internal/core/domain"
)

// AuthService covers the credential lifecycle. Register takes no role
// parameter on purpose: new accounts are always RoleUser, and only trusted
// internal paths may create anything else.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
