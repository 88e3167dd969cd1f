package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

func TestModelSink_SaveWell_ThenDetails(t *testing.T) {
	ctx := context.Background()
	sink := NewModelSink()

	require.NoError(t, sink.SaveWell(ctx, domain.WellHeader{UWI: "W1"}, "Well 1"))
	require.NoError(t, sink.SaveTrajectory(ctx, "W1", []domain.TrajectoryPoint{{MD: 0}, {MD: 10}}))
	log := domain.LogColumn{Name: "SAT", Column: "SAT_CODE", Kind: domain.Discrete}
	series := domain.ColumnSeries{Column: "SAT_CODE", Kind: domain.Discrete, Samples: []domain.DepthSample{{MD: 1, Value: 2, Defined: true}}}
	require.NoError(t, sink.SaveLog(ctx, "W1", log, series))
	require.NoError(t, sink.SaveWellState(ctx, domain.WellState{UWI: "W1", State: 3}))

	w, ok := sink.Well("W1")
	require.True(t, ok)
	assert.Equal(t, "Well 1", w.Name)
	assert.Len(t, w.Trajectory, 2)
	assert.Equal(t, series, w.Logs["SAT"])
	require.NotNil(t, w.State)
	assert.Equal(t, int32(3), w.State.State)
}

func TestModelSink_SaveWell_KeepsDetails(t *testing.T) {
	ctx := context.Background()
	sink := NewModelSink()

	require.NoError(t, sink.SaveWell(ctx, domain.WellHeader{UWI: "W1"}, "old"))
	require.NoError(t, sink.SaveTrajectory(ctx, "W1", []domain.TrajectoryPoint{{MD: 5}}))
	require.NoError(t, sink.SaveWell(ctx, domain.WellHeader{UWI: "W1"}, "new"))

	w, _ := sink.Well("W1")
	assert.Equal(t, "new", w.Name)
	assert.Len(t, w.Trajectory, 1)
}

func TestModelSink_UnknownWell(t *testing.T) {
	ctx := context.Background()
	sink := NewModelSink()

	assert.ErrorIs(t, sink.SaveTrajectory(ctx, "nope", nil), domain.ErrNotFound)
	assert.ErrorIs(t, sink.SaveLog(ctx, "nope", domain.LogColumn{Name: "RT"}, domain.ColumnSeries{}), domain.ErrNotFound)
	assert.ErrorIs(t, sink.SaveWellState(ctx, domain.WellState{UWI: "nope"}), domain.ErrNotFound)
}

func TestModelSink_KnownWells_Sorted(t *testing.T) {
	ctx := context.Background()
	sink := NewModelSink()
	for _, uwi := range []string{"W3", "W1", "W2"} {
		require.NoError(t, sink.SaveWell(ctx, domain.WellHeader{UWI: uwi}, uwi))
	}

	uwis, err := sink.KnownWells(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"W1", "W2", "W3"}, uwis)
}

func TestModelSink_SaveFormationTops_ReplacesPerWell(t *testing.T) {
	ctx := context.Background()
	sink := NewModelSink()

	require.NoError(t, sink.SaveFormationTops(ctx, []domain.FormationTop{
		{UWI: "W1", Layer: "A"}, {UWI: "W1", Layer: "B"}, {UWI: "W2", Layer: "A"},
	}))
	require.NoError(t, sink.SaveFormationTops(ctx, []domain.FormationTop{{UWI: "W1", Layer: "C"}}))

	assert.Equal(t, []domain.FormationTop{{UWI: "W1", Layer: "C"}}, sink.Tops("W1"))
	assert.Len(t, sink.Tops("W2"), 1)
}
