// Package encryption protects wallet secrets at rest with AES-256-GCM. Each
// envelope is hex(nonce || ciphertext || tag), so every value is decryptable
// on its own. A Keyring holds one primary key used for encryption plus any
// number of secondary keys kept around so rotation never orphans old rows.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// KeySize is the AES-256 key size in bytes.
	KeySize = 32
	// NonceSize is the standard GCM nonce size.
	NonceSize = 12
)

var (
	ErrInvalidKeyLength = errors.New("encryption key must be exactly 32 bytes")
	ErrDecryptionFailed = errors.New("envelope is malformed or no key validates it")
)

type Keyring struct {
	primary   cipher.AEAD
	secondary []cipher.AEAD
}

// NewKeyring builds a keyring from hex-encoded 32-byte keys. The primary key
// encrypts; secondaries only decrypt.
func NewKeyring(primaryHex string, secondaryHex []string) (*Keyring, error) {
	primary, err := aeadFromHex(primaryHex)
	if err != nil {
		return nil, err
	}

	kr := &Keyring{primary: primary}
	for _, h := range secondaryHex {
		aead, err := aeadFromHex(h)
		if err != nil {
			return nil, err
		}
		kr.secondary = append(kr.secondary, aead)
	}
	return kr, nil
}

func aeadFromHex(keyHex string) (cipher.AEAD, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("decoding encryption key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext under the primary key with a fresh random nonce.
func (kr *Keyring) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := kr.primary.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(sealed), nil
}

// Decrypt opens an envelope, trying the primary key first and then every
// secondary. Failure of all keys, or a malformed envelope, is
// ErrDecryptionFailed.
func (kr *Keyring) Decrypt(envelope string) (string, error) {
	sealed, err := hex.DecodeString(envelope)
	if err != nil || len(sealed) < NonceSize {
		return "", ErrDecryptionFailed
	}

	nonce, ciphertext := sealed[:NonceSize], sealed[NonceSize:]
	for _, aead := range append([]cipher.AEAD{kr.primary}, kr.secondary...) {
		plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
		if err == nil {
			return string(plaintext), nil
		}
	}
	return "", ErrDecryptionFailed
}

// Rotate re-encrypts an envelope under the primary key. Used when a secondary
// key is being retired.
func (kr *Keyring) Rotate(envelope string) (string, error) {
	plaintext, err := kr.Decrypt(envelope)
	if err != nil {
		return "", err
	}
	return kr.Encrypt(plaintext)
}
