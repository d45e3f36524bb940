package random

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
)

// Random provides random value generation that can be mocked for testing
type Random interface {
	// Hex returns n random bytes rendered as lowercase hexadecimal
	// (2n characters)
	Hex(n int) string

	// URLToken returns n random bytes rendered as unpadded base64url
	URLToken(n int) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Hex returns n cryptographically random bytes as lowercase hex
func (r *CryptoRandom) Hex(n int) string {
	return hex.EncodeToString(r.read(n))
}

// URLToken returns n cryptographically random bytes as unpadded base64url
func (r *CryptoRandom) URLToken(n int) string {
	return base64.RawURLEncoding.EncodeToString(r.read(n))
}

func (r *CryptoRandom) read(n int) []byte {
	b := make([]byte, n)
	// crypto/rand.Read never fails on supported platforms
	_, _ = rand.Read(b)
	return b
}
