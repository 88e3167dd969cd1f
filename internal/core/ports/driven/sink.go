package driven

import (
	"context"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// ModelSink receives imported well data.
type ModelSink interface {
	// SaveWell stores or replaces a well header under its display name.
	SaveWell(ctx context.Context, header domain.WellHeader, name string) error

	// SaveTrajectory replaces the trajectory of a well.
	SaveTrajectory(ctx context.Context, uwi string, points []domain.TrajectoryPoint) error

	// SaveLog replaces one resampled log of a well.
	SaveLog(ctx context.Context, uwi string, log domain.LogColumn, series domain.ColumnSeries) error

	// SaveWellState stores the latest state of a well.
	SaveWellState(ctx context.Context, state domain.WellState) error

	// SaveFormationTops stores layer ranges.
	SaveFormationTops(ctx context.Context, tops []domain.FormationTop) error

	// KnownWells lists the identifiers of wells already stored.
	KnownWells(ctx context.Context) ([]string, error)
}

// ImportMetrics records batch import counters.
type ImportMetrics interface {
	// ObserveWell counts one imported well.
	ObserveWell(ok bool)

	// ObserveBatch records the outcome of a whole batch.
	ObserveBatch(report *domain.ImportReport)

	// Export writes the collected metrics to their destination.
	Export() error
}
