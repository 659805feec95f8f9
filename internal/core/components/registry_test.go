package components

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UpdateCheck/internal/core/updates"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "components.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileRegistry_Components(t *testing.T) {
	path := writeManifest(t, `
components:
  - id: blog
    name: Blog
    version: " 1.2.0 "
    url: https://github.com/acme/blog
  - id: "42"
    version: v0.9.1
    url: ""
`)

	got, err := NewFileRegistry(path).Components(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []updates.Component{
		{ID: "blog", Name: "Blog", Version: "1.2.0", URL: "https://github.com/acme/blog"},
		{ID: "42", Version: "v0.9.1"},
	}, got)
}

func TestFileRegistry_MissingFile(t *testing.T) {
	reg := NewFileRegistry(filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := reg.Components(context.Background())
	assert.ErrorIs(t, err, ErrManifestNotFound)
}

func TestFileRegistry_CanceledContext(t *testing.T) {
	path := writeManifest(t, "components: []\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileRegistry(path).Components(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileRegistry_PicksUpEdits(t *testing.T) {
	path := writeManifest(t, "components:\n  - id: a\n    version: 1.0.0\n")
	reg := NewFileRegistry(path)

	first, err := reg.Components(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, os.WriteFile(path, []byte("components:\n  - id: a\n  - id: b\n"), 0o644))

	second, err := reg.Components(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantLen int
	}{
		{name: "empty document", input: "", wantLen: 0},
		{name: "empty list", input: "components: []", wantLen: 0},
		{name: "malformed yaml", input: "components: [", wantErr: ErrInvalidManifest},
		{name: "wrong shape", input: "components: 3", wantErr: ErrInvalidManifest},
		{name: "missing id", input: "components:\n  - version: 1.0.0\n", wantErr: ErrMissingID},
		{name: "blank id", input: "components:\n  - id: '  '\n", wantErr: ErrMissingID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest([]byte(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestStaticRegistry_ReturnsCopy(t *testing.T) {
	reg := StaticRegistry{{ID: "a", Version: "1.0.0"}}

	got, err := reg.Components(context.Background())
	require.NoError(t, err)
	got[0].Version = "9.9.9"

	assert.Equal(t, "1.0.0", reg[0].Version)
}

func TestStaticRegistry_SatisfiesRegistry(t *testing.T) {
	var _ updates.Registry = StaticRegistry{}
	var _ updates.Registry = (*FileRegistry)(nil)
}
