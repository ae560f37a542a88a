// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("manager123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("manager123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("manager124", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := HashPassword("manager123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestVerifyPasswordTimingSafe_NoHash(t *testing.T) {
	ok, newHash, err := VerifyPasswordTimingSafe("anything", nil)

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, newHash)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := VerifyPassword("x", "not-a-hash")
	assert.Error(t, err)
}
