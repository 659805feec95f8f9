// Package components provides registries of installed components for the
// update collector.
package components

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"UpdateCheck/internal/core/updates"
)

// manifest is the on-disk layout of a component manifest:
//
//	components:
//	  - id: blog
//	    name: Blog
//	    version: 1.2.0
//	    url: https://github.com/acme/blog
type manifest struct {
	Components []updates.Component `yaml:"components"`
}

// FileRegistry reads installed components from a YAML manifest.
// The manifest is re-read on every call so edits are picked up without a restart.
type FileRegistry struct {
	path string
}

// NewFileRegistry creates a registry backed by the manifest at path.
func NewFileRegistry(path string) *FileRegistry {
	return &FileRegistry{path: path}
}

// Path returns the manifest location.
func (r *FileRegistry) Path() string {
	return r.path
}

// Components parses the manifest and returns its entries in file order.
func (r *FileRegistry) Components(ctx context.Context) ([]updates.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, r.path)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", r.path, err)
	}

	return ParseManifest(raw)
}

// ParseManifest decodes manifest bytes. An empty document yields no components.
func ParseManifest(raw []byte) ([]updates.Component, error) {
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	result := make([]updates.Component, 0, len(m.Components))
	for i, c := range m.Components {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrMissingID, i)
		}
		c.Version = strings.TrimSpace(c.Version)
		c.URL = strings.TrimSpace(c.URL)
		result = append(result, c)
	}

	return result, nil
}

// StaticRegistry serves a fixed list of components.
type StaticRegistry []updates.Component

// Components returns a copy of the list.
func (s StaticRegistry) Components(context.Context) ([]updates.Component, error) {
	out := make([]updates.Component, len(s))
	copy(out, s)
	return out, nil
}
