package domain

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the minimum accepted password length at registration.
// Login does not enforce it, so accounts created before the policy keep working.
const MinPasswordLength = 8

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	// Deliberately simple local@domain.tld shape, not RFC 5322.
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Custom tags so the field patterns live alongside the built-in rules.
	_ = v.RegisterValidation("safe_username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidateUsername checks a sanitized username: non-empty, at most 100 chars,
// alphanumerics and underscores only.
func ValidateUsername(username string) error {
	if validate.Var(username, "required,max=100,safe_username") != nil {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateEmail checks a sanitized email address against the simple
// local@domain.tld shape, at most 100 chars.
func ValidateEmail(email string) error {
	if validate.Var(email, "required,max=100,simple_email") != nil {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the registration password policy. Passwords are
// never sanitized: they are hashed or compared, never rendered.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
