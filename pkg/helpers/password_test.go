package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("p@ss1234", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "p@ss1234", hash)

	ok, err := VerifyPassword(hash, "p@ss1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "different")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltUniqueness(t *testing.T) {
	h1, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)

	// same plaintext, different salt, different secret
	assert.NotEqual(t, h1, h2)
}

func TestHashPassword_CostOutOfRangeFallsBack(t *testing.T) {
	hash, err := HashPassword("p@ss1234", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestVerifyPassword_MalformedSecret(t *testing.T) {
	ok, err := VerifyPassword("not-a-bcrypt-hash", "whatever")
	assert.False(t, ok)
	assert.Error(t, err)
}
