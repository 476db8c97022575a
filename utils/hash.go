package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText returns the SHA-256 hash of text, hex encoded. Verdict
// cache keys are derived from this so identical content short-circuits
// to the previously computed verdict.
func HashText(text string) string {
	h := sha256.New()
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// TruncateHash shortens a hash for log display.
func TruncateHash(hash string, length int) string {
	if len(hash) <= length {
		return hash
	}
	return hash[:length]
}
