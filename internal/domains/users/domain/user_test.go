package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUserHashesPasswordAndDefaultsToCustomer(t *testing.T) {
	user, err := NewUser("usr-1", " Asha@Example.com ", "s3cret!", "Asha", "Rao", bcrypt.MinCost, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, RoleCustomer, user.Role)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)
	assert.True(t, user.CheckPassword("s3cret!"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.Equal(t, "Asha Rao", user.FullName())
}

func TestNewUserValidation(t *testing.T) {
	cases := map[string]struct {
		email, password, first string
		err                    error
	}{
		"bad email":      {"not-an-email", "secret1", "A", ErrInvalidEmail},
		"display name":   {"Asha <a@b.co>", "secret1", "A", ErrInvalidEmail},
		"short password": {"a@b.co", "123", "A", ErrWeakPassword},
		"long password":  {"a@b.co", strings.Repeat("x", 80), "A", ErrPasswordLength},
		"missing name":   {"a@b.co", "secret1", " ", ErrMissingName},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewUser("id", tc.email, tc.password, tc.first, "", bcrypt.MinCost, time.Now())
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("pharmacist")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestChangeRole(t *testing.T) {
	user := &User{Role: RoleCustomer}
	require.NoError(t, user.ChangeRole(RoleManufacturer))
	assert.Equal(t, RoleManufacturer, user.Role)
	assert.ErrorIs(t, user.ChangeRole("root"), ErrInvalidRole)
	assert.Equal(t, RoleManufacturer, user.Role)
}
