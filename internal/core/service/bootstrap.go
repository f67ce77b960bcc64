package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/safevault/safevault/internal/core/domain"
	"github.com/safevault/safevault/internal/core/ports"
)

// EnsureAdmin creates an admin account at startup when one is configured.
// This is the only path that assigns RoleAdmin; an existing account with the
// same username is left untouched.
func EnsureAdmin(ctx context.Context, repo ports.UserRepository, username, email, password string, log zerolog.Logger) error {
	if err := domain.ValidateUsername(username); err != nil {
		return err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		log.Debug().Str("username", username).Msg("admin account already present")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("admin account created")
	return nil
}
