// Package inject publishes update facts into a rendered HTML page.
package inject

import (
	"encoding/json"
	"log/slog"
	"strings"

	"UpdateCheck/internal/core/updates"
)

const (
	// Marker tags every element the injector emits. Its presence means the page was already processed.
	Marker = `data-plugin="update-check"`

	// DataVariable is the global the badge script reads facts from
	DataVariable = "window.__pluginUpdates"

	headClose = "</head>"
	bodyClose = "</body>"
)

// Injector inserts the badge stylesheet, the facts, and the badge script into HTML documents.
type Injector struct {
	assets Assets
}

// NewInjector creates an Injector. A nil assets source falls back to the embedded files.
func NewInjector(a Assets) *Injector {
	if a == nil {
		a = EmbeddedAssets{}
	}
	return &Injector{assets: a}
}

// Inject returns doc with the update blocks inserted. It is idempotent: a
// document that already carries the marker is returned unchanged, so
// Inject(Inject(d, f), f) == Inject(d, f).
//
// The stylesheet goes before the first </head> (skipped if there is none).
// Data and script go before the last </body>, or at the end if there is none.
// Tag matching ignores ASCII case. facts is never modified.
func (i *Injector) Inject(doc string, facts updates.Facts) string {
	if strings.Contains(doc, Marker) {
		return doc
	}

	data, err := encodeFacts(facts)
	if err != nil {
		slog.Warn("[UPDATE-CHECK] failed to encode update facts", "error", err)
		return doc
	}

	tail := i.scriptBlocks(data)

	if css := i.assets.Stylesheet(); css != "" {
		if at := indexFoldASCII(doc, headClose); at >= 0 {
			doc = doc[:at] + styleBlock(css) + doc[at:]
		}
	}

	if at := lastIndexFoldASCII(doc, bodyClose); at >= 0 {
		return doc[:at] + tail + doc[at:]
	}
	return doc + tail
}

func (i *Injector) scriptBlocks(data string) string {
	var b strings.Builder
	b.WriteString("<script " + Marker + ">")
	b.WriteString(DataVariable + "=" + data + ";")
	b.WriteString("</script>\n")

	if js := i.assets.Script(); js != "" {
		b.WriteString("<script " + Marker + ">")
		b.WriteString(js)
		b.WriteString("</script>\n")
	}
	return b.String()
}

func styleBlock(css string) string {
	return "<style " + Marker + ">" + css + "</style>\n"
}

// encodeFacts produces JSON safe to inline in a <script> element. encoding/json
// already escapes <, > and &; the apostrophe is escaped too so the payload can
// never terminate a single-quoted context.
func encodeFacts(facts updates.Facts) (string, error) {
	if len(facts) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(facts)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(raw), "'", "\\u0027"), nil
}

// indexFoldASCII finds the first occurrence of the lower-case ASCII needle
// in s, ignoring ASCII case. Byte offsets stay valid for s.
func indexFoldASCII(s, needle string) int {
	for i := 0; i+len(needle) <= len(s); i++ {
		if matchFoldASCII(s[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func lastIndexFoldASCII(s, needle string) int {
	for i := len(s) - len(needle); i >= 0; i-- {
		if matchFoldASCII(s[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func matchFoldASCII(s, lowerNeedle string) bool {
	for j := 0; j < len(lowerNeedle); j++ {
		c := s[j]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != lowerNeedle[j] {
			return false
		}
	}
	return true
}
