package plugin

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultCacheTTLHours applies when no TTL is configured
	DefaultCacheTTLHours = 6

	// MinCacheTTLHours is the floor for a configured TTL
	MinCacheTTLHours = 1
)

// Config holds the operator settings for update checking.
type Config struct {
	// GitHubToken is sent as a bearer token when set (raises the API rate limit)
	GitHubToken string

	// CacheTTLHours is how long a resolved release stays cached. 0 means default.
	CacheTTLHours int
}

// Normalize applies defaults and bounds: an unset TTL becomes
// DefaultCacheTTLHours, anything else is raised to at least MinCacheTTLHours.
func (c Config) Normalize() Config {
	switch {
	case c.CacheTTLHours == 0:
		c.CacheTTLHours = DefaultCacheTTLHours
	case c.CacheTTLHours < MinCacheTTLHours:
		c.CacheTTLHours = MinCacheTTLHours
	}
	c.GitHubToken = strings.TrimSpace(c.GitHubToken)
	return c
}

// CacheTTL returns the normalized TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Normalize().CacheTTLHours) * time.Hour
}

// ConfigFromEnv creates a Config from environment variables.
// Invalid values are logged and replaced by defaults.
//
// Environment variables:
//   - UPDATE_CHECK_CACHE_TTL_HOURS: release cache lifetime in hours (default: 6, minimum: 1)
//   - UPDATE_CHECK_GITHUB_TOKEN: optional GitHub personal access token
func ConfigFromEnv() Config {
	var cfg Config

	if v := strings.TrimSpace(os.Getenv("UPDATE_CHECK_CACHE_TTL_HOURS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CacheTTLHours = n
		} else {
			slog.Warn("[UPDATE-CHECK] invalid UPDATE_CHECK_CACHE_TTL_HOURS value, using default",
				"value", v,
				"default", DefaultCacheTTLHours,
				"error", err,
			)
		}
	}

	cfg.GitHubToken = os.Getenv("UPDATE_CHECK_GITHUB_TOKEN")

	return cfg.Normalize()
}
