package driving

import (
	"context"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// WellImporter runs batch imports from the well database into the model sink.
type WellImporter interface {
	// Load imports every well matching the session's well filter.
	Load(ctx context.Context, opts domain.ImportOptions) (*domain.ImportReport, error)

	// Update re-imports only the wells already known to the sink.
	Update(ctx context.Context, opts domain.ImportOptions) (*domain.ImportReport, error)

	// ListWells opens a session and returns the matching well headers.
	ListWells(ctx context.Context, session domain.SessionConfig) ([]domain.WellHeader, error)
}
