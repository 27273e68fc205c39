package jwt

import (
	"testing"
	"time"

	"preben-prepper/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateTokenUser(42, "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	claims, err := svc.GetClaimsByToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokensAreUnique(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	a, err := svc.GenerateTokenUser(1, "a@example.com", domain.RoleUser)
	require.NoError(t, err)
	b, err := svc.GenerateTokenUser(1, "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour).(*jwtService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateTokenUser(1, "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.GetClaimsByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenSignedWithOtherSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateTokenUser(1, "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).GetClaimsByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGarbageToken(t *testing.T) {
	_, err := NewJWTService("one", time.Hour).GetClaimsByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
