package releasecache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryCacheSize bounds the in-process cache. One entry per tracked repository.
const DefaultMemoryCacheSize = 1024

// MemoryCache implements Cache with a bounded in-process LRU.
// Useful for tests and single-process hosts where the disk cache is not wanted.
type MemoryCache struct {
	entries *lru.Cache[string, entry]
	now     func() time.Time
}

// NewMemoryCache creates a MemoryCache holding at most size entries.
func NewMemoryCache(size int, opts ...MemoryCacheOption) (*MemoryCache, error) {
	if size <= 0 {
		return nil, ErrInvalidCacheSize
	}
	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	c := &MemoryCache{entries: entries, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MemoryCacheOption configures a MemoryCache
type MemoryCacheOption func(*MemoryCache)

// WithMemoryClock overrides the time source used for expiry
func WithMemoryClock(now func() time.Time) MemoryCacheOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if e.expired(c.now()) {
		c.entries.Remove(key)
		return nil, false
	}
	out := make([]byte, len(e.Data))
	copy(out, e.Data)
	return out, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	stored := make([]byte, len(value))
	copy(stored, value)
	c.entries.Add(key, newEntry(stored, ttl, c.now()))
}

func (c *MemoryCache) Clear(_ context.Context) {
	c.entries.Purge()
}
