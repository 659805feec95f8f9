package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"UpdateCheck/internal/api/routes"
	"UpdateCheck/internal/core/components"
	"UpdateCheck/internal/core/inject"
	"UpdateCheck/internal/plugin"
)

// host adapts the component manifest and environment config to plugin.Host.
type host struct {
	*components.FileRegistry
	config plugin.Config
}

func (h host) Config() plugin.Config { return h.config }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifestPath := os.Getenv("UPDATE_CHECK_COMPONENTS")
	if manifestPath == "" {
		manifestPath = "components.example.yaml"
	}

	cache, closeCache, err := plugin.OpenCache(ctx, plugin.CacheConfigFromEnv())
	if err != nil {
		log.Fatal("Failed to open release cache:", err)
	}
	defer closeCache()

	h := host{
		FileRegistry: components.NewFileRegistry(manifestPath),
		config:       plugin.ConfigFromEnv(),
	}

	opts := []plugin.Option{}
	if dir := os.Getenv("UPDATE_CHECK_ASSETS_DIR"); dir != "" {
		opts = append(opts, plugin.WithAssets(inject.DirAssets(dir)))
	}
	p := plugin.New(h, cache, opts...)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	routes.RegisterWebRoutes(r, h, p)

	port := os.Getenv("UPDATE_CHECK_PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("update-check demo host starting",
		"port", port,
		"manifest", manifestPath,
		"page", p.PagePath(),
		"cache_ttl_hours", h.config.CacheTTLHours,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
