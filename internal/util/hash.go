package util

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex SHA-256 digest of the raw secret bytes.
// Unsalted and deterministic: login re-hashes and compares, and stored
// digests predate any salting scheme. Known-weak, kept for compatibility
// with existing admin documents.
func HashPassword(secret string) string {
	digest := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(digest[:])
}

func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
