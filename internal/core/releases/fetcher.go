package releases

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultAPIBaseURL is the public GitHub REST API
	DefaultAPIBaseURL = "https://api.github.com"

	// DefaultFetchTimeout bounds connect, TLS handshake and the whole request
	DefaultFetchTimeout = 5 * time.Second

	// DefaultUserAgent identifies this client to the GitHub API
	DefaultUserAgent = "UpdateCheck/0.1"

	githubAcceptHeader = "application/vnd.github.v3+json"
	maxRedirects       = 3
	maxResponseBytes   = 1 << 20
)

// newHTTPClient builds a client whose every phase is bounded by timeout.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: timeout}).DialContext
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// latestReleaseURL returns {base}/repos/{owner}/{repo}/releases/latest
func latestReleaseURL(baseURL string, ref RepositoryRef) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(ref.Owner),
		url.PathEscape(ref.Repo),
	)
}

// fetchLatestRelease performs one GET against the latest-release endpoint.
// The token, when set, is sent as a bearer credential and never logged.
func fetchLatestRelease(ctx context.Context, client *http.Client, endpoint, userAgent, token string) (*ReleaseInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", githubAcceptHeader)
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, &APIError{StatusCode: resp.StatusCode, Path: req.URL.Path}
	}

	var release githubRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&release); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	tag := strings.TrimSpace(release.TagName)
	if tag == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoRelease, req.URL.Path)
	}

	return &ReleaseInfo{
		TagName: tag,
		HTMLURL: strings.TrimSpace(release.HTMLURL),
	}, nil
}
