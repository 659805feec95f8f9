package updates

import (
	"context"
	"log/slog"
	"strings"

	"UpdateCheck/internal/core/releases"
)

// Collector maps installed components to update facts.
type Collector struct {
	resolver ReleaseResolver
}

// NewCollector creates a Collector that resolves releases through resolver.
func NewCollector(resolver ReleaseResolver) *Collector {
	if resolver == nil {
		panic("updates: resolver cannot be nil")
	}
	return &Collector{resolver: resolver}
}

// Collect returns a fact for every component with a newer GitHub release.
// Components without a recognizable URL, without a resolvable release, or already
// up to date contribute nothing. The result is never nil.
func (c *Collector) Collect(ctx context.Context, components []Component) Facts {
	facts := make(Facts)

	for _, component := range components {
		fact, ok := c.check(ctx, component)
		if !ok {
			continue
		}
		facts[component.ID] = fact
	}

	return facts
}

// CollectFromRegistry enumerates registry and collects facts for its components.
// An unavailable registry yields empty facts.
func (c *Collector) CollectFromRegistry(ctx context.Context, registry Registry) Facts {
	if registry == nil {
		return make(Facts)
	}

	components, err := registry.Components(ctx)
	if err != nil {
		slog.Warn("[UPDATE-CHECK] component registry unavailable", "error", err)
		return make(Facts)
	}

	return c.Collect(ctx, components)
}

func (c *Collector) check(ctx context.Context, component Component) (UpdateFact, bool) {
	url := strings.TrimSpace(component.URL)
	if url == "" || !c.resolver.IsRecognizedURL(url) {
		return UpdateFact{}, false
	}

	release := c.resolver.LatestRelease(ctx, url)
	if release == nil {
		return UpdateFact{}, false
	}

	if !c.resolver.HasUpdate(component.Version, release.TagName) {
		return UpdateFact{}, false
	}

	return UpdateFact{
		Current: component.Version,
		Latest:  releases.NormalizeVersion(release.TagName),
		URL:     release.HTMLURL,
	}, true
}
