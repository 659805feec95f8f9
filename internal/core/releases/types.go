package releases

import (
	"fmt"
	"strings"
)

// cacheKeyPrefix namespaces release lookups inside the shared cache
const cacheKeyPrefix = "github_release_"

// RepositoryRef identifies a repository on GitHub.
// Both fields are non-empty and never "." or "..".
type RepositoryRef struct {
	Owner string
	Repo  string
}

// String returns "owner/repo"
func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Repo
}

// CacheKey returns the cache key for this repository's latest release.
// GitHub names are case-insensitive, so the key is lower-cased.
func (r RepositoryRef) CacheKey() string {
	return fmt.Sprintf("%s%s_%s", cacheKeyPrefix, strings.ToLower(r.Owner), strings.ToLower(r.Repo))
}

// ReleaseInfo is the latest published release of a repository.
// The JSON shape is also the cached representation.
type ReleaseInfo struct {
	// TagName is the release tag, possibly with a leading "v" (e.g. "v1.2.0")
	TagName string `json:"tag_name"`

	// HTMLURL links to the release page on github.com
	HTMLURL string `json:"html_url"`
}

// githubRelease is the subset of the GitHub "latest release" payload we read.
type githubRelease struct {
	TagName    string `json:"tag_name"`
	HTMLURL    string `json:"html_url"`
	Name       string `json:"name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}
