// Package hash computes content digests used for change detection.
//
// A PDF's digest decides whether a previously stored competition needs
// re-parsing; a message digest gives the notifier a stable idempotency
// key without storing raw message text.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Bytes returns the hex-encoded SHA-256 digest of content.
func Bytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Text returns the hex-encoded SHA-256 digest of s.
func Text(s string) string {
	return Bytes([]byte(s))
}
