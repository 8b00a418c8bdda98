package ports

import (
	"context"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
)

// Service exposes account and authentication use cases to adapters.
type Service interface {
	SignUp(ctx context.Context, input types.SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, input types.SignInInput) (*types.AuthResult, error)
	SignOut(ctx context.Context, userID string) error
	Authenticate(ctx context.Context, token string) (*Claims, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, input types.UpdateRoleInput) (*domain.User, error)
}
