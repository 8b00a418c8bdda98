package mapper

import (
	"time"

	usertypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application/types"
	userdomain "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
)

// SignUp is the registration payload.
type SignUp struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

// SignIn carries credentials and the role the user signs in as.
type SignIn struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UpdateRole struct {
	Role string `json:"role" binding:"required"`
}

// User is the public account representation. The password hash is never exposed.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Session struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

func ToSignUpInput(p SignUp) usertypes.SignUpInput {
	return usertypes.SignUpInput{Email: p.Email, Password: p.Password, FirstName: p.FirstName, LastName: p.LastName}
}

func ToSignInInput(p SignIn) usertypes.SignInInput {
	return usertypes.SignInInput{Email: p.Email, Password: p.Password, Role: p.Role}
}

func FromDomainUser(u *userdomain.User) User {
	if u == nil {
		return User{}
	}
	return User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func FromDomainUsers(list []*userdomain.User) []User {
	out := make([]User, 0, len(list))
	for _, u := range list {
		out = append(out, FromDomainUser(u))
	}
	return out
}

func FromAuthResult(r *usertypes.AuthResult) Session {
	return Session{Token: r.Token, TokenType: "Bearer", ExpiresAt: r.ExpiresAt, User: FromDomainUser(r.User)}
}
