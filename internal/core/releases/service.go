package releases

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"UpdateCheck/internal/core/releasecache"
)

// Cache TTLs
const (
	// DefaultSuccessTTL is how long a resolved release is reused
	DefaultSuccessTTL = 6 * time.Hour
	// MinSuccessTTL is the floor for configured success TTLs
	MinSuccessTTL = 1 * time.Hour
	// NegativeCacheTTL is how long a failed lookup is remembered. Fixed and shorter than
	// any success TTL so failures are retried sooner than successes are refreshed.
	NegativeCacheTTL = 1 * time.Hour
)

// negativeSentinel is the cached value for "lookup attempted and failed"
var negativeSentinel = []byte(`"none"`)

// Default outbound budget towards the GitHub API
const (
	defaultRateLimit rate.Limit = 10
	defaultRateBurst            = 20
)

type service struct {
	cache          releasecache.Cache
	client         *http.Client
	limiter        *rate.Limiter
	circuitBreaker *circuitBreaker
	group          singleflight.Group
	apiBaseURL     string
	userAgent      string
	token          string
	successTTL     time.Duration
	timeout        time.Duration
}

// ServiceOption configures the service
type ServiceOption func(*service)

// WithToken sets a GitHub access token, sent as a bearer credential to raise rate limits
func WithToken(token string) ServiceOption {
	return func(s *service) {
		s.token = token
	}
}

// WithSuccessTTL sets how long successful lookups are cached. Values below
// MinSuccessTTL are raised to it.
func WithSuccessTTL(ttl time.Duration) ServiceOption {
	return func(s *service) {
		if ttl < MinSuccessTTL {
			ttl = MinSuccessTTL
		}
		s.successTTL = ttl
	}
}

// WithTimeout sets the HTTP timeout for GitHub API requests
func WithTimeout(timeout time.Duration) ServiceOption {
	return func(s *service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithAPIBaseURL points the service at a different API root (tests, GitHub Enterprise)
func WithAPIBaseURL(baseURL string) ServiceOption {
	return func(s *service) {
		s.apiBaseURL = baseURL
	}
}

// WithHTTPClient replaces the default timeout-bounded client
func WithHTTPClient(client *http.Client) ServiceOption {
	return func(s *service) {
		s.client = client
	}
}

// WithUserAgent overrides the User-Agent sent to GitHub
func WithUserAgent(userAgent string) ServiceOption {
	return func(s *service) {
		s.userAgent = userAgent
	}
}

// WithRateLimit sets the outbound request budget (requests per second and burst).
// Lookups beyond the budget wait for it, up to the fetch timeout.
func WithRateLimit(limit rate.Limit, burst int) ServiceOption {
	return func(s *service) {
		s.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewService creates a release Service backed by cache.
func NewService(cache releasecache.Cache, opts ...ServiceOption) Service {
	if cache == nil {
		panic("releases: cache cannot be nil")
	}

	s := &service{
		cache:          cache,
		apiBaseURL:     DefaultAPIBaseURL,
		userAgent:      DefaultUserAgent,
		successTTL:     DefaultSuccessTTL,
		timeout:        DefaultFetchTimeout,
		limiter:        rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		circuitBreaker: newCircuitBreaker(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = newHTTPClient(s.timeout)
	}

	return s
}

func (s *service) ParseRepositoryURL(url string) (RepositoryRef, error) {
	return ParseRepositoryURL(url)
}

func (s *service) IsRecognizedURL(url string) bool {
	return IsRecognizedURL(url)
}

func (s *service) HasUpdate(current, latest string) bool {
	return HasUpdate(current, latest)
}

// LatestRelease resolves url to its latest release, or nil.
//
// Order within one call: cache read, then (on miss) one API fetch, then cache write.
// Concurrent misses for the same repository in this process share one fetch.
func (s *service) LatestRelease(ctx context.Context, url string) *ReleaseInfo {
	ref, err := ParseRepositoryURL(url)
	if err != nil {
		return nil
	}

	key := ref.CacheKey()

	if info, hit := s.lookup(ctx, key); hit {
		slog.Debug("[RELEASES] cache hit", "repo", ref.String(), "negative", info == nil)
		return info
	}

	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		return s.resolve(ctx, ref, key), nil
	})

	info, _ := v.(*ReleaseInfo)
	if info == nil {
		return nil
	}
	out := *info
	return &out
}

// lookup reads key from the cache. The second result is false on a miss; a cached
// negative result is a hit with a nil release. Undecodable values count as misses.
func (s *service) lookup(ctx context.Context, key string) (*ReleaseInfo, bool) {
	data, found := s.cache.Get(ctx, key)
	if !found {
		return nil, false
	}

	if bytes.Equal(bytes.TrimSpace(data), negativeSentinel) {
		return nil, true
	}

	var info ReleaseInfo
	if err := json.Unmarshal(data, &info); err != nil || info.TagName == "" {
		slog.Warn("[RELEASES] ignoring unusable cached release", "key", key, "error", err)
		return nil, false
	}

	return &info, true
}

// resolve fetches the latest release and records the outcome in the cache.
func (s *service) resolve(ctx context.Context, ref RepositoryRef, key string) *ReleaseInfo {
	info, err := s.fetch(ctx, ref)
	switch {
	case err == nil:
		data, marshalErr := json.Marshal(info)
		if marshalErr == nil {
			s.cache.Set(ctx, key, data, s.successTTL)
		}
		slog.Debug("[RELEASES] resolved latest release", "repo", ref.String(), "tag", info.TagName, "cache_ttl", s.successTTL)
		return info

	case errors.Is(err, ErrCircuitOpen), errors.Is(err, ErrRateLimited):
		// Not attempted, so nothing learned about this repository
		slog.Debug("[RELEASES] skipping GitHub lookup", "repo", ref.String(), "reason", err)
		return nil

	case ctx.Err() != nil:
		// The caller went away; the repository itself may be fine
		slog.Debug("[RELEASES] lookup abandoned", "repo", ref.String(), "error", ctx.Err())
		return nil

	default:
		slog.Warn("[RELEASES] latest release lookup failed", "repo", ref.String(), "error", err)
		s.cache.Set(ctx, key, negativeSentinel, NegativeCacheTTL)
		return nil
	}
}

func (s *service) fetch(ctx context.Context, ref RepositoryRef) (*ReleaseInfo, error) {
	if err := s.circuitBreaker.canAttempt(); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Wait for outbound budget; the fetch timeout bounds the wait too
	if err := s.limiter.Wait(fetchCtx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	info, err := fetchLatestRelease(fetchCtx, s.client, latestReleaseURL(s.apiBaseURL, ref), s.userAgent, s.token)
	switch {
	case ctx.Err() != nil:
		// Caller cancellation says nothing about GitHub's health
	case isProviderFailure(err):
		s.circuitBreaker.recordFailure(err)
	default:
		s.circuitBreaker.recordSuccess()
	}
	return info, err
}
