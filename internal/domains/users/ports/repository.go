package ports

import (
	"context"
	"errors"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("this email address is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Repository persists user accounts. Emails are unique.
type Repository interface {
	// Create inserts a new account and fails with ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update overwrites an existing account.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns accounts ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)
}
