package ports

import (
	"errors"
	"time"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
)

// ErrInvalidToken covers malformed, expired or badly signed tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the verified contents of an access token.
type Claims struct {
	UserID    string
	Email     string
	Role      domain.Role
	TokenID   string
	ExpiresAt time.Time
}

// TokenCodec issues and verifies access tokens.
type TokenCodec interface {
	Issue(claims Claims) (string, error)
	Verify(token string) (*Claims, error)
	TTL() time.Duration
}
