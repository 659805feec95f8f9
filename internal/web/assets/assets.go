// Package assets embeds the browser-side files for the update badges.
package assets

import (
	"embed"
)

const (
	// StylesheetName is the badge stylesheet file name
	StylesheetName = "update-badges.css"
	// ScriptName is the badge script file name
	ScriptName = "update-badges.js"
)

//go:embed update-badges.css update-badges.js
var files embed.FS

// Read returns the embedded file contents, or "" if name is not embedded.
func Read(name string) string {
	b, err := files.ReadFile(name)
	if err != nil {
		return ""
	}
	return string(b)
}
