package releasecache

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockFileName   = ".lock"
	lockTimeout    = 2 * time.Second
	lockRetryDelay = 10 * time.Millisecond
)

// FileCache implements Cache with one JSON file per key under a root directory.
// File layout: {root}/{sanitized_key}.json
//
// Writes hold an exclusive flock on {root}/.lock and replace the target via rename,
// so concurrent writers never interleave and readers never observe partial data.
// Readers take no lock; a lost race is just a miss.
type FileCache struct {
	now  func() time.Time
	root string
}

// FileCacheOption configures a FileCache
type FileCacheOption func(*FileCache)

// WithClock overrides the time source used for expiry
func WithClock(now func() time.Time) FileCacheOption {
	return func(c *FileCache) {
		c.now = now
	}
}

// NewFileCache creates a FileCache rooted at root. The directory is created lazily on
// the first Set, so an unusable root only costs caching, never the caller.
func NewFileCache(root string, opts ...FileCacheOption) (*FileCache, error) {
	if root == "" {
		return nil, ErrInvalidCachePath
	}
	c := &FileCache{
		root: filepath.Clean(root),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Root returns the cache directory
func (c *FileCache) Root() string {
	return c.root
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.root, sanitizeKey(key)+".json")
}

// Get returns the cached value for key.
// Missing, unreadable, corrupted and expired entries are all misses; the latter two
// are deleted so they don't accumulate.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Debug("[RELEASE-CACHE] failed to read cache entry", "path", path, "error", err)
		}
		return nil, false
	}

	e, err := decodeEntry(raw)
	if err != nil {
		slog.Warn("[RELEASE-CACHE] removing corrupted cache entry", "path", path, "error", err)
		c.remove(path)
		return nil, false
	}

	if e.expired(c.now()) {
		c.remove(path)
		return nil, false
	}

	return []byte(e.Data), true
}

// Set writes value under key with the given ttl. It is a silent no-op when the root
// cannot be created, is not writable, or the write lock cannot be acquired.
func (c *FileCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if !json.Valid(value) {
		slog.Warn("[RELEASE-CACHE] refusing to store non-JSON value", "key", key)
		return
	}

	if err := os.MkdirAll(c.root, 0o755); err != nil {
		slog.Debug("[RELEASE-CACHE] cache directory unavailable, skipping write", "root", c.root, "error", err)
		return
	}

	data, err := json.Marshal(newEntry(value, ttl, c.now()))
	if err != nil {
		return
	}

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	lock := flock.New(filepath.Join(c.root, lockFileName))
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil || !locked {
		slog.Debug("[RELEASE-CACHE] could not acquire write lock, skipping write", "root", c.root, "error", err)
		return
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(c.root, ".tmp-*")
	if err != nil {
		slog.Debug("[RELEASE-CACHE] cache directory not writable, skipping write", "root", c.root, "error", err)
		return
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmpPath)
		return
	}

	if err := os.Rename(tmpPath, c.path(key)); err != nil {
		slog.Debug("[RELEASE-CACHE] failed to publish cache entry", "key", key, "error", err)
		_ = os.Remove(tmpPath)
	}
}

// Clear removes every *.json entry under the root.
func (c *FileCache) Clear(_ context.Context) {
	files, err := filepath.Glob(filepath.Join(c.root, "*.json"))
	if err != nil {
		return
	}

	removed := 0
	for _, f := range files {
		if err := os.Remove(f); err == nil {
			removed++
		}
	}

	if removed > 0 {
		slog.Info("[RELEASE-CACHE] cache cleared", "root", c.root, "entries_removed", removed)
	}
}

func (c *FileCache) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Debug("[RELEASE-CACHE] failed to remove cache entry", "path", path, "error", err)
	}
}
