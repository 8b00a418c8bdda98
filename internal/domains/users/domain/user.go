package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role gates what a signed-in user may do.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleManufacturer Role = "manufacturer"
	RoleAdmin        Role = "admin"
)

const minPasswordLength = 6

var (
	ErrInvalidEmail   = errors.New("please enter a valid email address")
	ErrWeakPassword   = errors.New("password must be at least 6 characters")
	ErrMissingName    = errors.New("first name is required")
	ErrInvalidRole    = errors.New("role must be customer, manufacturer or admin")
	ErrPasswordLength = errors.New("password exceeds 72 bytes")
)

// Roles lists every role.
func Roles() []Role { return []Role{RoleCustomer, RoleManufacturer, RoleAdmin} }

// ParseRole validates a raw role value.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Roles() {
		if role == known {
			return role, nil
		}
	}
	return "", ErrInvalidRole
}

// User is an account of the store. PasswordHash is a bcrypt hash and never leaves the service.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser validates the sign-up fields and hashes the password with the given bcrypt cost.
// New accounts are always customers.
func NewUser(id, email, password, firstName, lastName string, cost int, now time.Time) (*User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	first := strings.TrimSpace(firstName)
	if first == "" {
		return nil, ErrMissingName
	}
	hash, err := HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           id,
		Email:        normalized,
		FirstName:    first,
		LastName:     strings.TrimSpace(lastName),
		Role:         RoleCustomer,
		PasswordHash: hash,
		CreatedAt:    now.UTC(),
	}, nil
}

// NormalizeEmail lower-cases and validates an address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// HashPassword enforces the minimum length and returns a bcrypt hash.
func HashPassword(password string, cost int) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordLength
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangeRole assigns a new role.
func (u *User) ChangeRole(role Role) error {
	parsed, err := ParseRole(string(role))
	if err != nil {
		return err
	}
	u.Role = parsed
	return nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
