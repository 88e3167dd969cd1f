package sqlite

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func testHeader(uwi string) domain.WellHeader {
	return domain.WellHeader{
		UWI:                uwi,
		Name:               "W-1",
		Cluster:            "12",
		Class:              "PRODUCTION",
		Operator:           "North Ops",
		SurveyTool:         "GYRO",
		NorthReference:     domain.MagneticNorth,
		SpudDate:           time.Date(2019, 3, 4, 0, 0, 0, 0, time.UTC),
		SurveyDate:         time.Date(2019, 4, 1, 12, 30, 0, 0, time.UTC),
		BottomMD:           2450.5,
		BottomTVD:          2301,
		Elevation:          math.NaN(),
		X:                  512000.25,
		Y:                  6801000.75,
		MagneticCorrection: 0.12,
	}
}

// ==================== Store Creation Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "project.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".finderbridge", "data", "project.db"), store.Path())
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.ModelSink().SaveWell(ctx, testHeader("10001234500"), "2345"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	version, err := reopened.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	uwis, err := reopened.ModelSink().KnownWells(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"10001234500"}, uwis)
}

func TestNewStore_MkdirAllError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	store, err := NewStore(filepath.Join(blocker, "data"))

	assert.Error(t, err)
	assert.Nil(t, store)
}

// ==================== Model Sink Tests ====================

func TestModelSink_SaveWell_RoundTrip(t *testing.T) {
	ctx := context.Background()
	sink := setupTestStore(t).ModelSink()
	header := testHeader("10001234500")

	require.NoError(t, sink.SaveWell(ctx, header, "2345_x"))

	got, err := sink.Well(ctx, header.UWI)
	require.NoError(t, err)
	assert.Equal(t, "2345_x", got.Name)
	assert.Equal(t, header.Cluster, got.Header.Cluster)
	assert.Equal(t, header.Operator, got.Header.Operator)
	assert.Equal(t, header.NorthReference, got.Header.NorthReference)
	assert.True(t, header.SpudDate.Equal(got.Header.SpudDate))
	assert.True(t, header.SurveyDate.Equal(got.Header.SurveyDate))
	assert.True(t, got.Header.FinishDate.IsZero())
	assert.InDelta(t, header.BottomMD, got.Header.BottomMD, 1e-9)
	assert.InDelta(t, header.X, got.Header.X, 1e-9)
	assert.True(t, math.IsNaN(got.Header.Elevation))
	assert.Zero(t, got.Points)
	assert.Zero(t, got.Logs)
}

func TestModelSink_Well_NotFound(t *testing.T) {
	_, err := setupTestStore(t).ModelSink().Well(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestModelSink_SaveWell_KeepsDetails(t *testing.T) {
	ctx := context.Background()
	sink := setupTestStore(t).ModelSink()
	header := testHeader("10001234500")
	require.NoError(t, sink.SaveWell(ctx, header, "2345"))
	require.NoError(t, sink.SaveTrajectory(ctx, header.UWI, []domain.TrajectoryPoint{{MD: 0}, {MD: 10}}))

	header.Operator = "South Ops"
	require.NoError(t, sink.SaveWell(ctx, header, "2345"))

	got, err := sink.Well(ctx, header.UWI)
	require.NoError(t, err)
	assert.Equal(t, "South Ops", got.Header.Operator)
	assert.Equal(t, 2, got.Points)
}

func TestModelSink_SaveTrajectory_Replaces(t *testing.T) {
	ctx := context.Background()
	sink := setupTestStore(t).ModelSink()
	require.NoError(t, sink.SaveWell(ctx, testHeader("10001234500"), "2345"))

	first := []domain.TrajectoryPoint{{MD: 0}, {MD: 50, Inclination: 0.1}, {MD: 100, Inclination: 0.2}}
	require.NoError(t, sink.SaveTrajectory(ctx, "10001234500", first))
	second := []domain.TrajectoryPoint{{MD: 0}, {MD: 75, Inclination: 0.05, Azimuth: 1.5}}
	require.NoError(t, sink.SaveTrajectory(ctx, "10001234500", second))

	got, err := sink.Trajectory(ctx, "10001234500")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestModelSink_UnknownWell(t *testing.T) {
	ctx := context.Background()
	sink := setupTestStore(t).ModelSink()

	err := sink.SaveTrajectory(ctx, "missing", []domain.TrajectoryPoint{{MD: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = sink.SaveLog(ctx, "missing", domain.LogColumn{Name: "RT", Column: "RT"}, domain.ColumnSeries{Column: "RT"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = sink.SaveWellState(ctx, domain.WellState{UWI: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestModelSink_SaveLog_UndefinedSamples(t *testing.T) {
	ctx := context.Background()
	sink := setupTestStore(t).ModelSink()
	require.NoError(t, sink.SaveWell(ctx, testHeader("10001234500"), "2345"))

	log := domain.LogColumn{Name: "SAT", Column: "SAT_CODE", Kind: domain.Discrete}
	series := domain.ColumnSeries{
		Column: "SAT_CODE",
		Kind:   domain.Discrete,
		Samples: []domain.DepthSample{
			{MD: 1000, Value: 2, Defined: true},
			{MD: 1000.1},
			{MD: 1000.2, Value: 3, Defined: true},
		},
	}
	require.NoError(t, sink.SaveLog(ctx, "10001234500", log, series))

	got, err := sink.Log(ctx, "10001234500", "SAT")
	require.NoError(t, err)
	assert.Equal(t, series, got)

	well, err := sink.Well(ctx, "10001234500")
	require.NoError(t, err)
	assert.Equal(t, 1, well.Logs)
}

func TestModelSink_SaveLog_Replaces(t *testing.T) {
	ctx := context.Background()
	sink := setupTestStore(t).ModelSink()
	require.NoError(t, sink.SaveWell(ctx, testHeader("10001234500"), "2345"))
	log := domain.LogColumn{Name: "RT", Column: "RT", Kind: domain.Continuous}

	long := domain.ColumnSeries{Column: "RT", Samples: []domain.DepthSample{
		{MD: 1, Value: 1, Defined: true}, {MD: 1.1, Value: 2, Defined: true}, {MD: 1.2, Value: 3, Defined: true},
	}}
	require.NoError(t, sink.SaveLog(ctx, "10001234500", log, long))
	short := domain.ColumnSeries{Column: "RT", Samples: []domain.DepthSample{{MD: 5, Value: 9, Defined: true}}}
	require.NoError(t, sink.SaveLog(ctx, "10001234500", log, short))

	got, err := sink.Log(ctx, "10001234500", "RT")
	require.NoError(t, err)
	assert.Equal(t, short, got)
}

func TestModelSink_Log_NotFound(t *testing.T) {
	_, err := setupTestStore(t).ModelSink().Log(context.Background(), "10001234500", "RT")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestModelSink_SaveWellState(t *testing.T) {
	ctx := context.Background()
	sink := setupTestStore(t).ModelSink()
	require.NoError(t, sink.SaveWell(ctx, testHeader("10001234500"), "2345"))

	state := domain.WellState{
		UWI:               "10001234500",
		Timestamp:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Type:              domain.WellTypeProduction,
		State:             3,
		Method:            7,
		TypeDescription:   "Producer",
		StateDescription:  "Active",
		MethodDescription: "ESP",
	}
	require.NoError(t, sink.SaveWellState(ctx, state))
	state.State = 4
	state.StateDescription = "Shut in"
	require.NoError(t, sink.SaveWellState(ctx, state))

	got, err := sink.WellState(ctx, "10001234500")
	require.NoError(t, err)
	assert.True(t, state.Timestamp.Equal(got.Timestamp))
	got.Timestamp = state.Timestamp
	assert.Equal(t, state, *got)

	_, err = sink.WellState(ctx, "10001235600")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestModelSink_SaveFormationTops_ReplacesPerWell(t *testing.T) {
	ctx := context.Background()
	sink := setupTestStore(t).ModelSink()

	require.NoError(t, sink.SaveFormationTops(ctx, []domain.FormationTop{
		{UWI: "A", Layer: "AS1", Top: 100, Base: 110},
		{UWI: "A", Layer: "AS2", Top: 110, Base: 130},
		{UWI: "B", Layer: "AS1", Top: 200, Base: 205},
	}))
	require.NoError(t, sink.SaveFormationTops(ctx, []domain.FormationTop{
		{UWI: "A", Layer: "BV8", Top: 300, Base: 320},
	}))

	a, err := sink.FormationTops(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []domain.FormationTop{{UWI: "A", Layer: "BV8", Top: 300, Base: 320}}, a)

	b, err := sink.FormationTops(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, []domain.FormationTop{{UWI: "B", Layer: "AS1", Top: 200, Base: 205}}, b)

	none, err := sink.FormationTops(ctx, "C")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestModelSink_KnownWellsAndWells(t *testing.T) {
	ctx := context.Background()
	sink := setupTestStore(t).ModelSink()

	empty, err := sink.KnownWells(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, sink.SaveWell(ctx, testHeader("10001235600"), "2356"))
	require.NoError(t, sink.SaveWell(ctx, testHeader("10001234500"), "2345"))

	uwis, err := sink.KnownWells(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"10001234500", "10001235600"}, uwis)

	wells, err := sink.Wells(ctx)
	require.NoError(t, err)
	require.Len(t, wells, 2)
	assert.Equal(t, "2345", wells[0].Name)
	assert.Equal(t, "2356", wells[1].Name)
}
