package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, CompareHashAndPassword(hash, "123456"))
	assert.False(t, CompareHashAndPassword(hash, "1234567"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "123456"))
}

func TestResetTokenUnique(t *testing.T) {
	a, err := NewResetToken()
	require.NoError(t, err)
	b, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 64) // 32 random bytes, hex encoded
	assert.NotEqual(t, a, b)
}
