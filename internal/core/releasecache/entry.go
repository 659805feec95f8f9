package releasecache

import (
	"encoding/json"
	"fmt"
	"time"
)

// entry is the on-disk record shape: {"expires_at": ..., "data": ...}
type entry struct {
	ExpiresAt time.Time       `json:"expires_at"`
	Data      json.RawMessage `json:"data"`
}

func newEntry(value []byte, ttl time.Duration, now time.Time) entry {
	return entry{
		ExpiresAt: now.Add(ttl),
		Data:      json.RawMessage(value),
	}
}

// decodeEntry parses a stored record, rejecting anything without both fields.
func decodeEntry(raw []byte) (entry, error) {
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entry{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	if e.ExpiresAt.IsZero() {
		return entry{}, fmt.Errorf("%w: missing expires_at", ErrMalformedEntry)
	}
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return entry{}, fmt.Errorf("%w: missing data", ErrMalformedEntry)
	}
	return e, nil
}

// expired reports whether the entry is stale at now. An entry is valid up to and
// including its expiry instant.
func (e entry) expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// sanitizeKey maps an arbitrary key onto [A-Za-z0-9_-] so it is safe as a file name.
// Distinct keys may collide after sanitization.
func sanitizeKey(key string) string {
	b := []byte(key)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
