package mcp

import (
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
)

// Ports aggregates the services published by the host.
type Ports struct {
	// Service is the single data access service shared by every client call.
	Service driven.DataAccessService

	// Channel names the endpoint; reported by the status resource.
	Channel string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Service == nil {
		return ErrMissingService
	}
	return nil
}
