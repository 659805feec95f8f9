package releases

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnrecognizedURL indicates the URL is not a github.com/owner/repo URL
	ErrUnrecognizedURL = errors.New("unrecognized repository URL")

	// ErrCircuitOpen indicates the GitHub API is being skipped after repeated failures
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRateLimited indicates no outbound request budget became available before the fetch deadline
	ErrRateLimited = errors.New("outbound rate limit exceeded")

	// ErrNoRelease indicates the API answered but carried no usable tag
	ErrNoRelease = errors.New("release has no tag")

	// ErrMalformedResponse indicates the API response body could not be decoded
	ErrMalformedResponse = errors.New("malformed release response")
)

// APIError is returned for non-200 responses from the GitHub API.
type APIError struct {
	Path       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API HTTP %d for %s", e.StatusCode, e.Path)
}

// isProviderFailure reports whether err says something about GitHub as a whole
// (unreachable, overloaded, throttling us) rather than about one repository.
func isProviderFailure(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode >= http.StatusInternalServerError,
			apiErr.StatusCode == http.StatusForbidden,
			apiErr.StatusCode == http.StatusTooManyRequests:
			return true
		default:
			return false
		}
	}
	if errors.Is(err, ErrNoRelease) || errors.Is(err, ErrMalformedResponse) {
		return false
	}
	// Transport, TLS and timeout failures
	return true
}
