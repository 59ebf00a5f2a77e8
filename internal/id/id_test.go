package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	tok, err := Token()
	require.NoError(t, err)
	assert.Len(t, tok, TokenBytes*2)
}

func TestTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok, err := Token()
		require.NoError(t, err)
		require.False(t, seen[tok], "duplicate token generated")
		seen[tok] = true
	}
}

func TestUserID(t *testing.T) {
	a := UserID()
	b := UserID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
