package token

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	raw, hash, err := Generate()
	assert.NoError(t, err)

	assert.Len(t, raw, 64)
	assert.Len(t, hash, 64)

	_, err = hex.DecodeString(raw)
	assert.NoError(t, err)

	assert.Equal(t, Hash(raw), hash)
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		raw, _, err := Generate()
		assert.NoError(t, err)
		assert.False(t, seen[raw], "duplicate token generated")
		seen[raw] = true
	}
}

func TestHashDeterministic(t *testing.T) {
	raw := "0b5e8c1f6a3d9e2c4b7a0f1d8e5c2a9b6d3f0e7c4a1b8d5e2f9c6a3b0d7e4f1a"
	assert.Equal(t, Hash(raw), Hash(raw))
	assert.NotEqual(t, Hash(raw), Hash(raw+"x"))
}
