// Package plugin wires the release cache, resolver, collector, and injector
// into a host application.
package plugin

import (
	"context"
	"log/slog"

	"UpdateCheck/internal/core/inject"
	"UpdateCheck/internal/core/releasecache"
	"UpdateCheck/internal/core/releases"
	"UpdateCheck/internal/core/updates"
)

// DefaultPagePath is where the host renders its plugin list.
const DefaultPagePath = "/admin/plugins"

// Plugin publishes update facts into the host's plugin page.
type Plugin struct {
	host      Host
	resolver  releases.Service
	collector *updates.Collector
	injector  *inject.Injector
	pagePath  string
}

type settings struct {
	assets          inject.Assets
	pagePath        string
	resolverOptions []releases.ServiceOption
}

// Option configures a Plugin.
type Option func(*settings)

// WithPagePath sets the request path the middleware acts on.
func WithPagePath(path string) Option {
	return func(s *settings) {
		if path != "" {
			s.pagePath = path
		}
	}
}

// WithAssets overrides the embedded stylesheet and badge script.
func WithAssets(a inject.Assets) Option {
	return func(s *settings) {
		s.assets = a
	}
}

// WithResolverOptions passes extra options to the release resolver. They are
// applied after the ones derived from the host's Config.
func WithResolverOptions(opts ...releases.ServiceOption) Option {
	return func(s *settings) {
		s.resolverOptions = append(s.resolverOptions, opts...)
	}
}

// New builds a Plugin for host, caching releases in cache. The host's Config is
// read once; the resolver keeps its limiter and breaker state across requests.
func New(host Host, cache releasecache.Cache, opts ...Option) *Plugin {
	if host == nil {
		panic("plugin: host cannot be nil")
	}
	if cache == nil {
		panic("plugin: cache cannot be nil")
	}

	s := settings{pagePath: DefaultPagePath}
	for _, opt := range opts {
		opt(&s)
	}

	cfg := host.Config().Normalize()
	serviceOpts := []releases.ServiceOption{
		releases.WithSuccessTTL(cfg.CacheTTL()),
		releases.WithToken(cfg.GitHubToken),
	}
	serviceOpts = append(serviceOpts, s.resolverOptions...)

	resolver := releases.NewService(cache, serviceOpts...)

	return &Plugin{
		host:      host,
		resolver:  resolver,
		collector: updates.NewCollector(resolver),
		injector:  inject.NewInjector(s.assets),
		pagePath:  s.pagePath,
	}
}

// PagePath returns the request path the middleware acts on.
func (p *Plugin) PagePath() string {
	return p.pagePath
}

// Collect returns update facts for the host's components. It never fails: an
// unavailable registry or a panic while collecting yields empty facts.
func (p *Plugin) Collect(ctx context.Context) (facts updates.Facts) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[UPDATE-CHECK] update collection panicked", "panic", r)
			facts = make(updates.Facts)
		}
	}()

	return p.collector.CollectFromRegistry(ctx, p.host)
}

// Inject inserts facts into doc. A panic during injection is logged and doc is
// returned unchanged.
func (p *Plugin) Inject(doc string, facts updates.Facts) (out string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[UPDATE-CHECK] asset injection failed", "panic", r)
			out = doc
		}
	}()

	return p.injector.Inject(doc, facts)
}
