package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"UpdateCheck/internal/core/releasecache"
)

// ReleaseCacheRepository stores release lookups in the release_cache table so
// several host processes can share one cache.
type ReleaseCacheRepository struct {
	db  *sql.DB
	now func() time.Time
}

// ReleaseCacheOption configures a ReleaseCacheRepository.
type ReleaseCacheOption func(*ReleaseCacheRepository)

// WithReleaseCacheClock overrides the clock used for expiry.
func WithReleaseCacheClock(now func() time.Time) ReleaseCacheOption {
	return func(r *ReleaseCacheRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// NewReleaseCacheRepository creates a postgres-backed release cache.
func NewReleaseCacheRepository(db *sql.DB, opts ...ReleaseCacheOption) *ReleaseCacheRepository {
	if db == nil {
		panic("postgres: db cannot be nil")
	}
	r := &ReleaseCacheRepository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ releasecache.Cache = (*ReleaseCacheRepository)(nil)

// Get returns the cached value for key. Expired rows are deleted and reported absent.
func (r *ReleaseCacheRepository) Get(ctx context.Context, key string) ([]byte, bool) {
	query := `SELECT data, expires_at FROM release_cache WHERE cache_key = $1`

	var data []byte
	var expiresAt time.Time
	err := r.db.QueryRowContext(ctx, query, key).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		logDBError("failed to read release cache entry", err, "key", key)
		return nil, false
	}

	if r.now().After(expiresAt) {
		r.delete(ctx, key)
		return nil, false
	}

	return data, true
}

// Set upserts value under key for ttl. Values that are not valid JSON are ignored.
func (r *ReleaseCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if !json.Valid(value) {
		slog.Warn("[RELEASE-CACHE] refusing to store non-JSON value", "key", key)
		return
	}

	query := `
		INSERT INTO release_cache (cache_key, data, expires_at, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (cache_key) DO UPDATE
		SET data = EXCLUDED.data,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = NOW()`

	expiresAt := r.now().Add(ttl).UTC()
	if _, err := r.db.ExecContext(ctx, query, key, string(value), expiresAt); err != nil {
		logDBError("failed to write release cache entry", err, "key", key)
	}
}

// Clear deletes every cached entry.
func (r *ReleaseCacheRepository) Clear(ctx context.Context) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM release_cache`)
	if err != nil {
		logDBError("failed to clear release cache", err)
		return
	}
	if n, err := result.RowsAffected(); err == nil {
		slog.Info("[RELEASE-CACHE] cleared", "entries", n)
	}
}

// PurgeExpired deletes rows whose expiry has passed and returns how many were removed.
func (r *ReleaseCacheRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM release_cache WHERE expires_at < $1`, r.now().UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ReleaseCacheRepository) delete(ctx context.Context, key string) {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM release_cache WHERE cache_key = $1`, key); err != nil {
		logDBError("failed to delete expired release cache entry", err, "key", key)
	}
}

// logDBError logs err, adding the postgres error code when the driver provides one.
func logDBError(msg string, err error, args ...any) {
	args = append(args, "error", err)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		args = append(args, "pg_code", string(pqErr.Code))
	}
	slog.Warn("[RELEASE-CACHE] "+msg, args...)
}
