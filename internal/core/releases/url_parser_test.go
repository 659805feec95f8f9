package releases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepositoryURL_Valid(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected RepositoryRef
	}{
		{
			name:     "https",
			url:      "https://github.com/acme/api-endpoints",
			expected: RepositoryRef{Owner: "acme", Repo: "api-endpoints"},
		},
		{
			name:     "http",
			url:      "http://github.com/user/repo",
			expected: RepositoryRef{Owner: "user", Repo: "repo"},
		},
		{
			name:     "git suffix",
			url:      "https://github.com/user/repo.git",
			expected: RepositoryRef{Owner: "user", Repo: "repo"},
		},
		{
			name:     "trailing slash",
			url:      "https://github.com/user/repo/",
			expected: RepositoryRef{Owner: "user", Repo: "repo"},
		},
		{
			name:     "no scheme",
			url:      "github.com/user/repo",
			expected: RepositoryRef{Owner: "user", Repo: "repo"},
		},
		{
			name:     "www host",
			url:      "https://www.github.com/user/repo",
			expected: RepositoryRef{Owner: "user", Repo: "repo"},
		},
		{
			name:     "www host without scheme",
			url:      "WWW.GitHub.com/user/repo",
			expected: RepositoryRef{Owner: "user", Repo: "repo"},
		},
		{
			name:     "mixed case host and scheme",
			url:      "HTTPS://GitHub.com/User/Repo",
			expected: RepositoryRef{Owner: "User", Repo: "Repo"},
		},
		{
			name:     "dotted repo name",
			url:      "https://github.com/user/repo.js",
			expected: RepositoryRef{Owner: "user", Repo: "repo.js"},
		},
		{
			name:     "query and fragment ignored",
			url:      "https://github.com/user/repo?tab=readme#install",
			expected: RepositoryRef{Owner: "user", Repo: "repo"},
		},
		{
			name:     "surrounding whitespace",
			url:      "  https://github.com/user/repo  ",
			expected: RepositoryRef{Owner: "user", Repo: "repo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseRepositoryURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ref)
		})
	}
}

func TestParseRepositoryURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "other host", url: "https://gitlab.com/user/repo"},
		{name: "host only", url: "https://github.com/"},
		{name: "host without slash", url: "https://github.com"},
		{name: "owner only", url: "https://github.com/only-owner"},
		{name: "sub path", url: "https://github.com/user/repo/tree/main"},
		{name: "releases path", url: "https://github.com/user/repo/releases"},
		{name: "dot owner", url: "https://github.com/./repo"},
		{name: "dot repo", url: "https://github.com/user/."},
		{name: "dot dot repo", url: "https://github.com/user/.."},
		{name: "only git suffix", url: "https://github.com/user/.git"},
		{name: "empty owner", url: "https://github.com//repo"},
		{name: "double trailing slash", url: "https://github.com/user/repo//"},
		{name: "unsupported scheme", url: "ssh://github.com/user/repo"},
		{name: "lookalike host", url: "https://github.com.evil.example/user/repo"},
		{name: "repeated www", url: "https://www.www.github.com/user/repo"},
		{name: "other subdomain", url: "https://gist.github.com/user/repo"},
		{name: "host in path", url: "https://evil.example/github.com/user/repo"},
		{name: "userinfo", url: "https://someone@github.com/user/repo"},
		{name: "port", url: "https://github.com:8443/user/repo"},
		{name: "invalid characters", url: "https://github.com/user/re%2Fpo"},
		{name: "plain text", url: "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRepositoryURL(tt.url)
			assert.ErrorIs(t, err, ErrUnrecognizedURL)
		})
	}
}

func TestIsRecognizedURL(t *testing.T) {
	assert.True(t, IsRecognizedURL("https://github.com/user/repo"))
	assert.False(t, IsRecognizedURL("https://example.com"))
	assert.False(t, IsRecognizedURL(""))
}

func TestRepositoryRef_CacheKey(t *testing.T) {
	ref := RepositoryRef{Owner: "Acme-Labs", Repo: "Some.Repo"}
	assert.Equal(t, "github_release_acme-labs_some.repo", ref.CacheKey())
	assert.Equal(t, "Acme-Labs/Some.Repo", ref.String())
}
