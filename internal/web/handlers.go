package web

import (
	"log/slog"
	"net/http"

	"UpdateCheck/internal/core/updates"
)

// Handlers serves the host's admin pages.
type Handlers struct {
	templates *Templates
	registry  updates.Registry
}

// NewHandlers creates a new Handlers instance with the provided dependencies.
func NewHandlers(templates *Templates, registry updates.Registry) *Handlers {
	if templates == nil {
		panic("web: templates cannot be nil")
	}
	if registry == nil {
		panic("web: registry cannot be nil")
	}
	return &Handlers{
		templates: templates,
		registry:  registry,
	}
}

// PluginsPageData holds data for the plugin list template.
type PluginsPageData struct {
	// Title is the page heading
	Title string
	// Action is the form target for bulk actions
	Action string
	// Error is shown above the table when the registry could not be read
	Error string
	// Components are the installed components, one row each
	Components []updates.Component
}

// PluginsHandler renders the installed component list.
// GET /admin/plugins
func (h *Handlers) PluginsHandler(w http.ResponseWriter, r *http.Request) {
	data := PluginsPageData{
		Title:  "Installed Plugins",
		Action: r.URL.Path,
	}

	components, err := h.registry.Components(r.Context())
	if err != nil {
		slog.Warn("[WEB] plugins page: failed to list components", "error", err)
		data.Error = "The component list is currently unavailable."
	}
	data.Components = components

	if err := h.templates.Render(w, "plugins.html", data); err != nil {
		slog.Error("[WEB] failed to render plugins template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
