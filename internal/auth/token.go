// Package auth provides the token issuer/verifier and the password hasher
// behind the ports.TokenProvider and ports.PasswordHasher interfaces.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskmanager-api/internal/domain"
	"taskmanager-api/internal/ports"
)

// Compile-time check that JWTProvider implements ports.TokenProvider.
var _ ports.TokenProvider = (*JWTProvider)(nil)

// Claims is the JWT payload issued at sign-in. The subject carries the
// username; Roles carries the user's role names for downstream
// authorization checks.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTProvider issues and verifies HS256-signed tokens.
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTProvider creates a JWTProvider with the given signing secret and
// token lifetime.
func NewJWTProvider(secret string, ttl time.Duration) *JWTProvider {
	return &JWTProvider{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed token for the given username and role names.
func (p *JWTProvider) Issue(username string, roles []string) (string, error) {
	now := p.now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token string, returning the identity it
// carries. Any parse, signature, or expiry failure is reported as an error
// wrapping domain.ErrUnauthorized; the underlying cause is never exposed to
// clients.
func (p *JWTProvider) Verify(raw string) (*ports.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return p.secret, nil
		},
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", errors.Join(err, domain.ErrUnauthorized))
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}

	return &ports.Identity{
		Username: claims.Subject,
		Roles:    claims.Roles,
	}, nil
}
