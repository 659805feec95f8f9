package inject

import (
	"os"
	"path/filepath"

	"UpdateCheck/internal/web/assets"
)

// Assets supplies the inline stylesheet and badge script. Empty strings mean
// "nothing to inline".
type Assets interface {
	Stylesheet() string
	Script() string
}

// EmbeddedAssets serves the files compiled into the binary.
type EmbeddedAssets struct{}

func (EmbeddedAssets) Stylesheet() string { return assets.Read(assets.StylesheetName) }
func (EmbeddedAssets) Script() string     { return assets.Read(assets.ScriptName) }

// DirAssets reads the asset files from a directory on every call, which lets
// operators override the embedded copies. Missing files yield "".
type DirAssets string

func (d DirAssets) Stylesheet() string { return d.read(assets.StylesheetName) }
func (d DirAssets) Script() string     { return d.read(assets.ScriptName) }

func (d DirAssets) read(name string) string {
	b, err := os.ReadFile(filepath.Join(string(d), name))
	if err != nil {
		return ""
	}
	return string(b)
}
