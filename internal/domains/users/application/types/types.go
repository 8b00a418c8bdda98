package types

import (
	"time"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
)

type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SignInInput carries credentials plus the role the user claims to sign in as.
type SignInInput struct {
	Email    string
	Password string
	Role     string
}

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type UpdateRoleInput struct {
	UserID string
	Role   string
}
