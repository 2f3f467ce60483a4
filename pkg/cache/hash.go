package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ResultKey builds the cache key for an inference result from the capture
// bytes. The configuration is kept out of the key on purpose - results for
// different threshold sets are separated by a [ScopedCache] namespace.
func ResultKey(captureData []byte) string {
	return "result:" + Hash(captureData)
}
