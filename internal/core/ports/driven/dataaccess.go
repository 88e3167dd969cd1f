package driven

import (
	"context"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// DataAccessService is a stateful session against the well database.
// The same contract is implemented in-process and by the client stub of a
// remote host, so callers never know which one they hold.
type DataAccessService interface {
	// ProbeArchitectureCompatible reports whether the database client library
	// can be loaded by a process of this service's word size.
	ProbeArchitectureCompatible(ctx context.Context) (bool, error)

	// Configure sets the connection parameters for the next Open.
	Configure(ctx context.Context, cfg domain.SessionConfig) error

	// Open connects to the database.
	Open(ctx context.Context) error

	// Close disconnects. Closing a session that is not open is a no-op.
	Close(ctx context.Context) error

	// Project returns the configured project schema. Valid only while open.
	Project(ctx context.Context) (string, error)

	// ServerVersion returns the database server banner. Valid only while open.
	ServerVersion(ctx context.Context) (string, error)

	// ListWellHeaders returns every well matching the configured filter.
	// Returns domain.ErrNotFound when no well matches.
	ListWellHeaders(ctx context.Context) ([]domain.WellHeader, error)

	// GetDirectionalSurvey returns the preferred survey of a well ordered by depth.
	GetDirectionalSurvey(ctx context.Context, uwi string) ([]domain.TrajectoryPoint, error)

	// GetLogIntervals returns, per requested physical column, the interval rows
	// of a well ordered by ascending top.
	GetLogIntervals(ctx context.Context, uwi string, columns map[string]domain.LogKind) (map[string][]domain.IntervalRow, error)

	// GetLatestWellState returns the most recent state record of each listed well.
	GetLatestWellState(ctx context.Context, uwis []string) ([]domain.WellState, error)

	// GetFormationTops returns the layer ranges of each listed well.
	GetFormationTops(ctx context.Context, uwis []string) ([]domain.FormationTop, error)
}

// RemoteService is a DataAccessService reached through a host process.
type RemoteService interface {
	DataAccessService

	// Release closes the inter-process connection. It does not close the
	// database session on the host; call Close first.
	Release() error
}

// RemoteDialer connects a client stub to a host's published service.
type RemoteDialer interface {
	Dial(ctx context.Context, channel string) (RemoteService, error)
}
