package finder

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

func TestService_Configure_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*domain.SessionConfig)
	}{
		{name: "missing data source", mutate: func(c *domain.SessionConfig) { c.Connection.DataSource = "" }},
		{name: "bad project", mutate: func(c *domain.SessionConfig) { c.Connection.Project = "main; DROP TABLE x" }},
		{name: "bad log table", mutate: func(c *domain.SessionConfig) { c.LogTable = "LOGS--" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fixtureSession("finder.db")
			tt.mutate(&cfg)
			err := NewService(domain.ClientSettings{}).Configure(ctx, cfg)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestService_Configure_Defaults(t *testing.T) {
	svc := NewService(domain.ClientSettings{})
	require.NoError(t, svc.Configure(context.Background(), domain.SessionConfig{
		Connection: domain.ConnectionParams{DataSource: "finder.db"},
	}))
	assert.Equal(t, domain.DefaultDriver, svc.cfg.Connection.Driver)
	assert.Equal(t, domain.DefaultProject, svc.cfg.Connection.Project)
	assert.Equal(t, domain.DefaultLogTable, svc.cfg.LogTable)
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(domain.ClientSettings{})

	assert.ErrorIs(t, svc.Open(ctx), domain.ErrNotConfigured)
	assert.NoError(t, svc.Close(ctx))

	_, err := svc.ListWellHeaders(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)
	_, err = svc.Project(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)

	require.NoError(t, svc.Configure(ctx, fixtureSession(newFixtureDB(t))))
	require.NoError(t, svc.Open(ctx))

	project, err := svc.Project(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", project)

	version, err := svc.ServerVersion(ctx)
	require.NoError(t, err)
	assert.Contains(t, version, "SQLite 3.")

	require.NoError(t, svc.Close(ctx))
	require.NoError(t, svc.Close(ctx))
	_, err = svc.GetDirectionalSurvey(ctx, "10001040100")
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)
}

func TestService_ListWellHeaders(t *testing.T) {
	svc := openFixture(t)

	headers, err := svc.ListWellHeaders(context.Background())
	require.NoError(t, err)
	require.Len(t, headers, 2, "wells without a preferred survey are skipped")

	h := headers[0]
	assert.Equal(t, "10001040100", h.UWI)
	assert.Equal(t, "Well 401", h.Name)
	assert.Equal(t, "C1", h.Cluster)
	assert.True(t, h.IsExploratory())
	assert.Equal(t, "ACME", h.Operator)
	assert.Equal(t, 2020, h.SpudDate.Year())
	assert.Equal(t, time.January, h.SpudDate.Month())
	assert.Equal(t, 15, h.SpudDate.Day())
	assert.InDelta(t, 2500.0, h.BottomMD, 1e-9)
	assert.InDelta(t, 1000.5, h.X, 1e-9)
	assert.Equal(t, "Gyro tool", h.SurveyTool)
	assert.Equal(t, domain.MagneticNorth, h.NorthReference)
	assert.InDelta(t, 10*math.Pi/180, h.MagneticCorrection, 1e-12)

	n := headers[1]
	assert.Equal(t, "10001040202", n.UWI)
	assert.Empty(t, n.Operator)
	assert.True(t, n.SpudDate.IsZero())
	assert.True(t, math.IsNaN(n.BottomMD))
	assert.Zero(t, n.MagneticCorrection)
}

func TestService_ListWellHeaders_Filter(t *testing.T) {
	ctx := context.Background()
	svc := NewService(domain.ClientSettings{})
	cfg := fixtureSession(newFixtureDB(t))

	cfg.WellFilter = "1000104020%"
	require.NoError(t, svc.Configure(ctx, cfg))
	require.NoError(t, svc.Open(ctx))
	defer svc.Close(ctx)

	headers, err := svc.ListWellHeaders(ctx)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, "10001040202", headers[0].UWI)

	cfg.WellFilter = "99%"
	require.NoError(t, svc.Configure(ctx, cfg))
	_, err = svc.ListWellHeaders(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_GetDirectionalSurvey(t *testing.T) {
	svc := openFixture(t)

	points, err := svc.GetDirectionalSurvey(context.Background(), "10001040100")
	require.NoError(t, err)
	require.Len(t, points, 2, "only the preferred survey is returned")

	assert.InDelta(t, 0.0, points[0].MD, 1e-9)
	assert.InDelta(t, 100.0, points[1].MD, 1e-9)
	assert.InDelta(t, 10*math.Pi/180, points[1].Inclination, 1e-12)
	assert.InDelta(t, math.Pi/2, points[1].Azimuth, 1e-12)
}

func TestService_GetDirectionalSurvey_OutOfRange(t *testing.T) {
	svc := openFixture(t)

	_, err := svc.GetDirectionalSurvey(context.Background(), "10001040202")
	assert.ErrorIs(t, err, domain.ErrSurveyOutOfRange)
}

func TestService_GetDirectionalSurvey_Empty(t *testing.T) {
	svc := openFixture(t)

	points, err := svc.GetDirectionalSurvey(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestService_GetLogIntervals(t *testing.T) {
	svc := openFixture(t)

	got, err := svc.GetLogIntervals(context.Background(), "10001040100", map[string]domain.LogKind{
		"RT":       domain.Continuous,
		"SAT_CODE": domain.Discrete,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	rt := got["RT"]
	require.Len(t, rt, 5)
	assert.InDelta(t, 1000.0, rt[0].Top, 1e-9, "rows are ordered by top")
	assert.True(t, math.IsNaN(rt[0].Float))
	assert.InDelta(t, 2.0, rt[1].Float, 1e-9)

	sat := got["SAT_CODE"]
	require.Len(t, sat, 5)
	assert.Equal(t, domain.NullDiscrete, sat[0].Int)
	assert.Equal(t, int32(3), sat[1].Int)
}

func TestService_GetLogIntervals_RejectsBadColumn(t *testing.T) {
	svc := openFixture(t)

	_, err := svc.GetLogIntervals(context.Background(), "10001040100", map[string]domain.LogKind{
		"RT, (SELECT 1)": domain.Continuous,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_GetLogIntervals_UnknownWell(t *testing.T) {
	svc := openFixture(t)

	got, err := svc.GetLogIntervals(context.Background(), "missing", domain.DefaultLogColumns().Spec())
	require.NoError(t, err)
	assert.Len(t, got, domain.DefaultLogColumns().Len())
	for _, rows := range got {
		assert.Empty(t, rows)
	}
}

func TestService_GetLatestWellState(t *testing.T) {
	svc := openFixture(t)

	states, err := svc.GetLatestWellState(context.Background(), []string{"10001040100", "10001040202"})
	require.NoError(t, err)
	require.Len(t, states, 2)

	s := states[0]
	assert.Equal(t, "10001040100", s.UWI)
	assert.Equal(t, 2022, s.Timestamp.Year())
	assert.Equal(t, domain.WellTypeInjection, s.Type)
	assert.Equal(t, "Injection", s.TypeDescription)
	assert.Equal(t, int32(2), s.State)
	assert.Equal(t, "Idle", s.StateDescription)
	assert.Equal(t, "Pump", s.MethodDescription)
}

func TestService_GetLatestWellState_FiltersToRequested(t *testing.T) {
	svc := openFixture(t)

	states, err := svc.GetLatestWellState(context.Background(), []string{"10001040202"})
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "10001040202", states[0].UWI)
}

func TestService_GetFormationTops(t *testing.T) {
	svc := openFixture(t)

	tops, err := svc.GetFormationTops(context.Background(), []string{"10001040100"})
	require.NoError(t, err)
	require.Len(t, tops, 2)

	assert.Equal(t, "K1", tops[0].Layer)
	assert.InDelta(t, 1000.0, tops[0].Top, 1e-9)
	assert.InDelta(t, 1000.5, tops[0].Base, 1e-9)
	assert.Equal(t, "J2", tops[1].Layer)
}
