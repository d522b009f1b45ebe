package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "ana@example.com", "AGENCY", testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "AGENCY", claims.Role)
	assert.Equal(t, "caribe-tours", claims.Issuer)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "ana@example.com", "USER", testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(1, "ana@example.com", "USER", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessTokenGarbage(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "tok-abc", testSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "tok-abc", claims.TokenID)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	token, err := GenerateRefreshToken(7, "tok-abc", testSecret, 7)
	require.NoError(t, err)

	// Parses structurally but carries no role/email claims
	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Empty(t, claims.Role)
	assert.Empty(t, claims.Email)
}

func TestGetExpiryTime(t *testing.T) {
	expiry := GetExpiryTime(7)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiry, time.Minute)
}
