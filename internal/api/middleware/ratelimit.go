package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// DefaultMaxClients bounds how many per-client limiters are tracked at once.
const DefaultMaxClients = 4096

// RateLimiter limits requests per client IP with a token bucket per client.
// Least recently seen clients are evicted once maxClients is reached.
type RateLimiter struct {
	clients *lru.Cache[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
}

// NewRateLimiter allows requests per window for each client, with bursts up to requests.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests <= 0 || window <= 0 {
		panic("middleware: rate limiter needs a positive request count and window")
	}

	clients, err := lru.New[string, *rate.Limiter](DefaultMaxClients)
	if err != nil {
		panic(err)
	}

	return &RateLimiter{
		clients: clients,
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   requests,
	}
}

// Middleware returns a rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(getClientIP(r)) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	limiter, ok := rl.clients.Get(clientID)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.clients.Add(clientID, limiter)
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Behind a proxy the first X-Forwarded-For entry is the original client
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
