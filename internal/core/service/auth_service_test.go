package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/safevault/safevault/internal/core/domain"
	"github.com/safevault/safevault/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) Blocked(_ context.Context, username string) (bool, error) {
	return t.failures[username] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	delete(t.failures, username)
	return nil
}

func newTestAuthService(repo *stubUserRepo, throttle LoginThrottle) (*AuthService, *token.Manager) {
	tokens := token.NewManager([]byte("secret"), "safevault", time.Hour)
	return NewAuthService(repo, tokens, throttle, zerolog.Nop()), tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %q, got %q", domain.RoleUser, user.Role)
	}
}

func TestAuthService_Register_TrimsInput(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), "  alice  ", " alice@example.com ", "pass1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", user.Username)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected trimmed email, got %q", user.Email)
	}
}

func TestAuthService_Register_SaltedHashes(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	u1, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	u2, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	if u1.PasswordHash == u2.PasswordHash {
		t.Fatalf("identical passwords produced identical digests")
	}
	for _, u := range []*domain.User{u1, u2} {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pass1234")); err != nil {
			t.Fatalf("digest for %s does not verify: %v", u.Username, err)
		}
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	cases := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"empty username", "", "a@example.com", "pass1234", domain.ErrInvalidUsername},
		{"bad username chars", "alice!", "a@example.com", "pass1234", domain.ErrInvalidUsername},
		{"script tag username", "<script>alert('x')</script>", "a@example.com", "pass1234", domain.ErrInvalidUsername},
		{"empty email", "alice", "", "pass1234", domain.ErrInvalidEmail},
		{"malformed email", "alice", "not-an-email", "pass1234", domain.ErrInvalidEmail},
		{"short password", "alice", "a@example.com", "short", domain.ErrWeakPassword},
	}

	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.username, tc.email, tc.password); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(repo.users) != 0 {
		t.Fatalf("rejected registrations must not write, store has %d records", len(repo.users))
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass1234"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "other@example.com", "pass5678"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(repo.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cret99"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	raw, user, err := svc.Login(context.Background(), "carol", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := tokens.Validate(raw)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Username != "carol" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_FailureShapeIsUniform(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "dave", "dave@example.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPass := svc.Login(context.Background(), "dave", "badpass")
	_, _, noUser := svc.Login(context.Background(), "ghost", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("failure shapes differ: %q vs %q", wrongPass, noUser)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(3)
	svc, _ := newTestAuthService(repo, throttle)

	if _, err := svc.Register(context.Background(), "eve", "eve@example.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Login(context.Background(), "eve", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Limit reached: even the correct password is refused.
	if _, _, err := svc.Login(context.Background(), "eve", "goodpass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ResetsThrottleOnSuccess(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(3)
	svc, _ := newTestAuthService(repo, throttle)

	if _, err := svc.Register(context.Background(), "frank", "frank@example.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, _ = svc.Login(context.Background(), "frank", "wrong")
	if _, _, err := svc.Login(context.Background(), "frank", "goodpass"); err != nil {
		t.Fatalf("login after one failure should succeed: %v", err)
	}
	if throttle.failures["frank"] != 0 {
		t.Fatalf("expected failure counter reset, got %d", throttle.failures["frank"])
	}
}
