package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CompareHashAndPassword(hash, "s3cret"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("s3cret")
	require.NoError(t, err)
	h2, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
