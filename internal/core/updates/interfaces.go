package updates

import (
	"context"

	"UpdateCheck/internal/core/releases"
)

// Registry enumerates installed components.
type Registry interface {
	Components(ctx context.Context) ([]Component, error)
}

// ReleaseResolver is the subset of releases.Service the collector needs.
type ReleaseResolver interface {
	IsRecognizedURL(url string) bool
	LatestRelease(ctx context.Context, url string) *releases.ReleaseInfo
	HasUpdate(current, latest string) bool
}
