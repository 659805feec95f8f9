package releasecache

import (
	"context"
	"time"
)

// Cache is a key/value store with per-entry expiry used in front of the GitHub API.
//
// Values are raw JSON documents. Every operation is total: storage failures are
// logged and degrade to a cache miss (Get) or a no-op (Set, Clear), so callers never
// branch on cache health.
type Cache interface {
	// Get returns the stored value if the entry exists, is well-formed and has not expired.
	// Expired and corrupted entries are removed as a side effect.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key until now+ttl. Callers must not depend on the write succeeding.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Clear removes every entry in the cache's namespace.
	Clear(ctx context.Context)
}
