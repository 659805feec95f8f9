package plugin

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"

	"UpdateCheck/internal/core/releasecache"
	"UpdateCheck/internal/db/migrations"
	"UpdateCheck/internal/db/postgres"
)

// Cache backends selectable through CacheConfig.Backend.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// CacheConfig selects and configures the release cache backend.
type CacheConfig struct {
	Backend     string
	Path        string
	DatabaseURL string
}

// DefaultCachePath is the file backend root when none is configured.
func DefaultCachePath() string {
	return filepath.Join(os.TempDir(), "update-check")
}

// CacheConfigFromEnv reads the backend selection.
//
// Environment variables:
//   - UPDATE_CHECK_CACHE_BACKEND: file, memory or postgres (default: file)
//   - UPDATE_CHECK_CACHE_PATH: file backend root (default: $TMPDIR/update-check)
//   - DATABASE_URL: postgres connection string for the postgres backend
func CacheConfigFromEnv() CacheConfig {
	cfg := CacheConfig{
		Backend:     BackendFile,
		Path:        DefaultCachePath(),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	if v := strings.TrimSpace(os.Getenv("UPDATE_CHECK_CACHE_BACKEND")); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("UPDATE_CHECK_CACHE_PATH")); v != "" {
		cfg.Path = v
	}

	return cfg
}

// OpenCache builds the configured backend. The returned close function releases
// backend resources and is never nil.
func OpenCache(ctx context.Context, cfg CacheConfig) (releasecache.Cache, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", BackendFile:
		path := cfg.Path
		if path == "" {
			path = DefaultCachePath()
		}
		cache, err := releasecache.NewFileCache(path)
		if err != nil {
			return nil, noop, err
		}
		slog.Info("[UPDATE-CHECK] using file release cache", "path", cache.Root())
		return cache, noop, nil

	case BackendMemory:
		cache, err := releasecache.NewMemoryCache(releasecache.DefaultMemoryCacheSize)
		if err != nil {
			return nil, noop, err
		}
		return cache, noop, nil

	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, noop, ErrMissingDatabaseURL
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := migrations.Up(db); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		slog.Info("[UPDATE-CHECK] using postgres release cache")
		return postgres.NewReleaseCacheRepository(db), db.Close, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownCacheBackend, cfg.Backend)
	}
}
