package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCredentialService_HashAndCompare(t *testing.T) {
	c := NewCredentialService(bcrypt.MinCost)

	hash, err := c.HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", hash)

	assert.True(t, c.ComparePassword("password1", hash))
	assert.False(t, c.ComparePassword("password2", hash))
}

func TestCredentialService_RehashStillMatchesStoredHash(t *testing.T) {
	c := NewCredentialService(bcrypt.MinCost)

	stored, err := c.HashPassword("secret-pass")
	require.NoError(t, err)
	again, err := c.HashPassword("secret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, stored, again, "hashes are salted")
	assert.True(t, c.ComparePassword("secret-pass", stored))
	assert.True(t, c.ComparePassword("secret-pass", again))
}

func TestCredentialService_MalformedHash(t *testing.T) {
	c := NewCredentialService(bcrypt.MinCost)
	assert.False(t, c.ComparePassword("whatever", "not-a-bcrypt-hash"))
}

func TestNewCredentialService_DefaultsInvalidCost(t *testing.T) {
	assert.Equal(t, defaultBcryptCost, NewCredentialService(0).cost)
	assert.Equal(t, defaultBcryptCost, NewCredentialService(99).cost)
	assert.Equal(t, 12, NewCredentialService(12).cost)
}
