package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Calculator is an interface for computing file content hashes.
// This abstraction allows for different hash algorithms without touching
// the compiler.
type Calculator interface {
	// Calculate computes a hash of the raw, unmodified content.
	Calculate(content []byte) string
}

// SHA256 implements content hashing using SHA-256 over the raw file bytes.
// Change detection is byte-exact: editing whitespace or comments in an
// artifact re-applies it.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple
// goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Calculate computes the hex-encoded SHA-256 of content.
func (c SHA256) Calculate(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Verify SHA256 implements the interface at compile time
var _ Calculator = SHA256{}
