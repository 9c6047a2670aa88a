// Package token issues the opaque bearer secrets universities use on machine
// calls. Only the SHA-256 hash of a token is ever stored; recognizing a caller
// is a hash lookup, not a password check, which is sound only because tokens
// carry 256 bits of entropy.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const rawTokenBytes = 32

// Generate returns a fresh raw bearer token and its storage hash. The raw
// token is 64 hex characters and must never be logged or persisted.
func Generate() (rawToken, tokenHash string, err error) {
	buf := make([]byte, rawTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generating token entropy: %w", err)
	}

	rawToken = hex.EncodeToString(buf)
	return rawToken, Hash(rawToken), nil
}

// Hash digests a raw token for storage or lookup. Callers always pass the raw
// secret; pre-hashed input is not accepted anywhere.
func Hash(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
