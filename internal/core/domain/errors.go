package domain

import "errors"

var (
	// ErrInvalidUsername and ErrInvalidEmail are client-correctable input
	// failures raised after sanitization.
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidEmail    = errors.New("invalid email")
	// ErrWeakPassword is returned when a registration password is shorter
	// than MinPasswordLength.
	ErrWeakPassword = errors.New("password too weak")

	// ErrUserExists is returned on a duplicate username. The store is left
	// untouched.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound never crosses the login boundary; handlers see
	// ErrInvalidCredentials for both unknown users and bad passwords.
	ErrUserNotFound = errors.New("user not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
