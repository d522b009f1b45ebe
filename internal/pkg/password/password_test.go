package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct-horse-battery")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse-battery", hash)

	assert.True(t, Verify("correct-horse-battery", hash))
	assert.False(t, Verify("wrong-password", hash))
}

func TestVerify_ExternalSentinel(t *testing.T) {
	// The sentinel never verifies, not even against itself
	assert.False(t, Verify(ExternalAuthSentinel, ExternalAuthSentinel))
	assert.False(t, Verify("anything", ExternalAuthSentinel))
}

func TestIsExternal(t *testing.T) {
	assert.True(t, IsExternal(ExternalAuthSentinel))

	hash, err := Hash("some-password")
	require.NoError(t, err)
	assert.False(t, IsExternal(hash))
}

func TestHashToken(t *testing.T) {
	a := HashToken("refresh-token-value")
	b := HashToken("refresh-token-value")
	c := HashToken("other-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // hex encoded sha256
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("short"))
	assert.False(t, ValidatePassword("1234567"))
	assert.True(t, ValidatePassword("12345678"))
	assert.True(t, ValidatePassword("a much longer passphrase"))
}
