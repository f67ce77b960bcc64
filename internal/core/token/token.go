// Package token issues and validates the signed bearer tokens that carry
// identity and role claims between login and protected requests.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/safevault/safevault/internal/core/domain"
)

const defaultTTL = time.Hour

// Claims are the assertions embedded in every issued token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a single symmetric key held
// server-side. Rotating the key invalidates all outstanding tokens; there is
// no revocation list.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewManager returns a Manager signing with secret on behalf of issuer.
// A non-positive ttl falls back to one hour.
func NewManager(secret []byte, issuer string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: secret, issuer: issuer, ttl: ttl}
}

// Issue creates a signed HS256 token for the given identity and role,
// expiring after the configured TTL.
func (m *Manager) Issue(username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Validate verifies signature, signing method, issuer, and expiry. Any
// failure yields domain.ErrInvalidToken with no partial trust.
func (m *Manager) Validate(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Username == "" || claims.Role == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
