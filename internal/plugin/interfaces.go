package plugin

import (
	"context"

	"UpdateCheck/internal/core/updates"
)

// Host is what an embedding application provides: its installed components
// and the operator configuration.
type Host interface {
	Components(ctx context.Context) ([]updates.Component, error)
	Config() Config
}
