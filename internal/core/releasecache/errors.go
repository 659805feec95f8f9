package releasecache

import "errors"

var (
	// ErrInvalidCachePath is returned when the cache root directory is empty
	ErrInvalidCachePath = errors.New("cache path cannot be empty")
	// ErrInvalidCacheSize is returned when the memory cache size is not positive
	ErrInvalidCacheSize = errors.New("cache size must be positive")
	// ErrMalformedEntry is returned when a stored record cannot be decoded
	ErrMalformedEntry = errors.New("malformed cache entry")
)
