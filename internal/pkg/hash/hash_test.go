package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SaltIsHashPrefix(t *testing.T) {
	salt, h, err := Generate("password123")

	require.NoError(t, err)
	assert.Len(t, salt, saltLen)
	assert.True(t, strings.HasPrefix(h, salt))
}

func TestGenerate_DistinctSaltPerCall(t *testing.T) {
	salt1, hash1, err := Generate("password123")
	require.NoError(t, err)
	salt2, hash2, err := Generate("password123")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestCompare(t *testing.T) {
	_, h, err := Generate("password123")
	require.NoError(t, err)

	assert.True(t, Compare("password123", h))
	assert.False(t, Compare("wrong", h))
	assert.False(t, Compare("password123", "not-a-bcrypt-hash"))
}
