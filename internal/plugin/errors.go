package plugin

import "errors"

var (
	// ErrUnknownCacheBackend indicates an unsupported UPDATE_CHECK_CACHE_BACKEND value
	ErrUnknownCacheBackend = errors.New("unknown cache backend")

	// ErrMissingDatabaseURL indicates the postgres backend was selected without DATABASE_URL
	ErrMissingDatabaseURL = errors.New("postgres cache backend requires DATABASE_URL")
)
