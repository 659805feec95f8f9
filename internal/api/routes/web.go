package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"UpdateCheck/internal/api/middleware"
	"UpdateCheck/internal/core/updates"
	"UpdateCheck/internal/plugin"
	"UpdateCheck/internal/web"
)

// Plugin page requests fan out to GitHub on cache misses, so they are limited per client.
const (
	adminRequestsPerWindow = 60
	adminWindow            = time.Minute
)

// RegisterWebRoutes registers the admin pages of the demo host. The plugin list
// is wrapped by the update-check middleware.
func RegisterWebRoutes(r chi.Router, registry updates.Registry, p *plugin.Plugin) {
	templates, err := web.NewTemplates()
	if err != nil {
		panic("failed to load web templates: " + err.Error())
	}

	handlers := web.NewHandlers(templates, registry)
	limiter := middleware.NewRateLimiter(adminRequestsPerWindow, adminWindow)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(p.Middleware)
		r.Get(p.PagePath(), handlers.PluginsHandler)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
