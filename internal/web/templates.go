// Package web provides the HTML pages of the demo host.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates renders the embedded page templates.
type Templates struct {
	set *template.Template
}

// NewTemplates parses every embedded page template.
func NewTemplates() (*Templates, error) {
	set, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Render executes the named template into a buffer and only then writes it as
// a 200 HTML response with an exact Content-Length. On error nothing has been
// written, so the caller can still send an error page.
func (t *Templates) Render(w http.ResponseWriter, name string, data any) error {
	page, err := t.Execute(name, data)
	if err != nil {
		return err
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(len(page)))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(page)
	return err
}

// Execute renders the named template to bytes.
func (t *Templates) Execute(name string, data any) ([]byte, error) {
	tmpl := t.set.Lookup(name)
	if tmpl == nil {
		return nil, fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}
