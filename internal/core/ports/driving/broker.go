package driving

import (
	"context"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
)

// ServiceBroker hands out the data access service that fits the database
// client architecture, launching a host of the other word size when needed.
type ServiceBroker interface {
	// Acquire returns the cached handle, or resolves and caches a new one.
	Acquire(ctx context.Context) (driven.DataAccessService, error)

	// Terminate releases the cached handle and kills any spawned host.
	// Safe to call repeatedly and when nothing was spawned.
	Terminate(ctx context.Context) error

	// Architecture reports how the cached handle was resolved.
	// The boolean is false when no handle is cached.
	Architecture() (domain.Architecture, bool)
}
