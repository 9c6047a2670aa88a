package encryption

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKeyA = "86b26ea1549695b6a4a2d1f3c08bdb2a5a98e1c4e02fc3b1d9e7a60514c83f72"
	testKeyB = "2f1e0d9c8b7a65544332211000ffeeddccbbaa998877665544332211aabbccdd"
)

func newTestKeyring(t *testing.T) *Keyring {
	kr, err := NewKeyring(testKeyA, nil)
	require.NoError(t, err)
	return kr
}

func TestNewKeyring(t *testing.T) {
	t.Run("rejects short key", func(t *testing.T) {
		_, err := NewKeyring("deadbeef", nil)
		assert.ErrorIs(t, err, ErrInvalidKeyLength)
	})

	t.Run("rejects non-hex key", func(t *testing.T) {
		_, err := NewKeyring(strings.Repeat("zz", 32), nil)
		assert.Error(t, err)
	})

	t.Run("rejects bad secondary key", func(t *testing.T) {
		_, err := NewKeyring(testKeyA, []string{"beef"})
		assert.ErrorIs(t, err, ErrInvalidKeyLength)
	})
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kr := newTestKeyring(t)

	inputs := []string{
		"",
		"a",
		"abandon ability able about above absent absorb abstract absurd abuse access accident",
		strings.Repeat("x", 4096),
		"Test 测试 テスト",
	}
	for _, plaintext := range inputs {
		envelope, err := kr.Encrypt(plaintext)
		require.NoError(t, err)

		decrypted, err := kr.Decrypt(envelope)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	kr := newTestKeyring(t)

	first, err := kr.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := kr.Encrypt("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecryptFailures(t *testing.T) {
	kr := newTestKeyring(t)

	t.Run("malformed hex", func(t *testing.T) {
		_, err := kr.Decrypt("not-hex")
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := kr.Decrypt("aabb")
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		envelope, err := kr.Encrypt("secret")
		require.NoError(t, err)

		raw, err := hex.DecodeString(envelope)
		require.NoError(t, err)
		raw[len(raw)-1] ^= 0xff

		_, err = kr.Decrypt(hex.EncodeToString(raw))
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := NewKeyring(testKeyB, nil)
		require.NoError(t, err)

		envelope, err := kr.Encrypt("secret")
		require.NoError(t, err)

		_, err = other.Decrypt(envelope)
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})
}

func TestKeyRotation(t *testing.T) {
	oldRing, err := NewKeyring(testKeyB, nil)
	require.NoError(t, err)
	envelope, err := oldRing.Encrypt("mnemonic words here")
	require.NoError(t, err)

	// New primary, old key demoted to secondary: old envelopes still open.
	rotated, err := NewKeyring(testKeyA, []string{testKeyB})
	require.NoError(t, err)

	plaintext, err := rotated.Decrypt(envelope)
	require.NoError(t, err)
	assert.Equal(t, "mnemonic words here", plaintext)

	// Rotate re-seals under the new primary so the old key can be dropped.
	fresh, err := rotated.Rotate(envelope)
	require.NoError(t, err)

	primaryOnly, err := NewKeyring(testKeyA, nil)
	require.NoError(t, err)
	plaintext, err = primaryOnly.Decrypt(fresh)
	require.NoError(t, err)
	assert.Equal(t, "mnemonic words here", plaintext)
}
