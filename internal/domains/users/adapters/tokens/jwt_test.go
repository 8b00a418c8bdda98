package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

func TestIssueAndVerify(t *testing.T) {
	codec, err := NewJWT("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := codec.Issue(ports.Claims{UserID: "usr-1", Email: "a@b.co", Role: domain.RoleAdmin, TokenID: "tok-1"})
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "tok-1", claims.TokenID)
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	codec, err := NewJWT("test-secret", time.Hour)
	require.NoError(t, err)
	issuedAt := time.Now().Add(-3 * time.Hour)
	codec.WithClock(func() time.Time { return issuedAt })
	expired, err := codec.Issue(ports.Claims{UserID: "usr-1", Role: domain.RoleCustomer})
	require.NoError(t, err)
	codec.WithClock(time.Now)

	_, err = codec.Verify(expired)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)

	other, err := NewJWT("other-secret", time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue(ports.Claims{UserID: "usr-1", Role: domain.RoleCustomer})
	require.NoError(t, err)
	_, err = codec.Verify(foreign)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "usr-1", "iss": Issuer, "exp": time.Now().Add(time.Hour).Unix(), "role": "admin"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = codec.Verify(unsigned)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestNewJWTRequiresSecret(t *testing.T) {
	_, err := NewJWT("", time.Hour)
	assert.Error(t, err)
}
