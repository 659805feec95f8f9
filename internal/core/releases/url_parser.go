package releases

import (
	"fmt"
	"regexp"
	"strings"
)

// githubHost is the only repository host we resolve releases for
const githubHost = "github.com"

// segmentPattern matches characters GitHub allows in owner and repository names
var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ParseRepositoryURL extracts owner and repo from a GitHub repository URL.
//
// Accepted: [http(s)://][www.]github.com/{owner}/{repo}[.git][/]
// Rejected: other hosts or schemes, fewer or more than two path segments
// (e.g. /owner/repo/tree/main), and empty or dot segments.
// Query strings and fragments are ignored.
func ParseRepositoryURL(rawURL string) (RepositoryRef, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return RepositoryRef{}, fmt.Errorf("%w: empty URL", ErrUnrecognizedURL)
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "https://"):
		s = s[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		s = s[len("http://"):]
	case strings.Contains(s, "://"):
		return RepositoryRef{}, fmt.Errorf("%w: unsupported scheme in %q", ErrUnrecognizedURL, rawURL)
	}

	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}

	host, path, ok := strings.Cut(s, "/")
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if !ok || host != githubHost {
		return RepositoryRef{}, fmt.Errorf("%w: %q is not a %s URL", ErrUnrecognizedURL, rawURL, githubHost)
	}

	path = strings.TrimSuffix(path, "/")
	segments := strings.Split(path, "/")
	if len(segments) != 2 {
		return RepositoryRef{}, fmt.Errorf("%w: expected %s/{owner}/{repo}, got %q", ErrUnrecognizedURL, githubHost, rawURL)
	}

	owner := segments[0]
	repo := segments[1]
	if len(repo) >= len(".git") && strings.EqualFold(repo[len(repo)-len(".git"):], ".git") {
		repo = repo[:len(repo)-len(".git")]
	}

	if err := validateSegment(owner); err != nil {
		return RepositoryRef{}, fmt.Errorf("%w: owner %v", ErrUnrecognizedURL, err)
	}
	if err := validateSegment(repo); err != nil {
		return RepositoryRef{}, fmt.Errorf("%w: repo %v", ErrUnrecognizedURL, err)
	}

	return RepositoryRef{Owner: owner, Repo: repo}, nil
}

// IsRecognizedURL reports whether ParseRepositoryURL accepts rawURL.
func IsRecognizedURL(rawURL string) bool {
	_, err := ParseRepositoryURL(rawURL)
	return err == nil
}

func validateSegment(s string) error {
	switch {
	case s == "":
		return fmt.Errorf("is empty")
	case s == "." || s == "..":
		return fmt.Errorf("%q is not a name", s)
	case !segmentPattern.MatchString(s):
		return fmt.Errorf("%q contains invalid characters", s)
	}
	return nil
}
