package auth

import (
	"testing"

	"jordanmarket/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, hasher.Check("s3cret-pass", hash))
	assert.False(t, hasher.Check("wrong-pass", hash))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	require.NoError(t, hasher.ValidatePasswordStrength("market99"))
	require.Error(t, hasher.ValidatePasswordStrength("short1"))
	require.Error(t, hasher.ValidatePasswordStrength("onlyletters"))
	require.Error(t, hasher.ValidatePasswordStrength("12345678"))
}

func TestBcryptHasher_ConfiguredMinLength(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{MinPasswordLength: 12}}
	hasher := NewBcryptHasher(cfg)

	require.Error(t, hasher.ValidatePasswordStrength("market99"))
	require.NoError(t, hasher.ValidatePasswordStrength("market99long"))
}
