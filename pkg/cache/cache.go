// Package cache provides content-addressed storage for inference results.
//
// Inference is deterministic for a fixed capture and configuration, so the
// CLI caches the full result JSON keyed by a hash of both. Backends:
//   - [FileCache]: directory-backed storage for CLI usage
//   - [NullCache]: no-op cache for tests or --refresh runs
//
// Keys are built with [ResultKey]; a [ScopedCache] prefixes keys with a
// namespace (typically the configuration hash) so threshold experiments
// never collide.
package cache

import (
	"context"
	"time"
)

// TTLResult bounds how long inference results live on disk. Entries are
// content-addressed and never go stale; the TTL only bounds disk growth.
const TTLResult = 30 * 24 * time.Hour

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
