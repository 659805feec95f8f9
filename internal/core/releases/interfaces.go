package releases

import "context"

// Service resolves repository URLs to their latest GitHub release.
// No method returns an error to the caller: every failure collapses into "no release".
type Service interface {
	// ParseRepositoryURL extracts owner/repo from a github.com repository URL.
	ParseRepositoryURL(url string) (RepositoryRef, error)

	// IsRecognizedURL reports whether url is a resolvable github.com repository URL.
	IsRecognizedURL(url string) bool

	// LatestRelease returns the latest release for the repository at url, or nil.
	// It reads the cache first and only calls the GitHub API on a miss; both successful
	// and failed lookups are cached (failures for a shorter, fixed period).
	LatestRelease(ctx context.Context, url string) *ReleaseInfo

	// HasUpdate reports whether latest is strictly newer than current.
	HasUpdate(current, latest string) bool
}
