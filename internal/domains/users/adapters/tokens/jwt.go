// Package tokens issues and verifies HS256 access tokens.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

var _ ports.TokenCodec = (*JWT)(nil)

// Issuer is the iss claim of every token.
const Issuer = "pharmatrack-lite"

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = 24 * time.Hour

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWT signs tokens with a shared secret.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWT builds a codec. The secret must not be empty.
func NewJWT(secret string, ttl time.Duration) (*JWT, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWT{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock overrides the time source used for iat and verification.
func (j *JWT) WithClock(now func() time.Time) {
	if now != nil {
		j.now = now
	}
}

func (j *JWT) TTL() time.Duration { return j.ttl }

func (j *JWT) Issue(claims ports.Claims) (string, error) {
	expires := claims.ExpiresAt
	if expires.IsZero() {
		expires = j.now().Add(j.ttl)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Email: claims.Email,
		Role:  string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   claims.UserID,
			ID:        claims.TokenID,
			IssuedAt:  jwt.NewNumericDate(j.now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	return token.SignedString(j.secret)
}

func (j *JWT) Verify(raw string) (*ports.Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &accessClaims{}, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || claims.Subject == "" {
		return nil, ports.ErrInvalidToken
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	return &ports.Claims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
