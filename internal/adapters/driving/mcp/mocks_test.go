package mcp

import (
	"context"
	"math"
	"time"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// mockDataAccess is a mock implementation of driven.DataAccessService.
type mockDataAccess struct {
	compatible bool
	configured domain.SessionConfig
	columns    map[string]domain.LogKind
	uwis       []string
	err        error
}

func (m *mockDataAccess) ProbeArchitectureCompatible(context.Context) (bool, error) {
	return m.compatible, m.err
}

func (m *mockDataAccess) Configure(_ context.Context, cfg domain.SessionConfig) error {
	m.configured = cfg
	return m.err
}

func (m *mockDataAccess) Open(context.Context) error  { return m.err }
func (m *mockDataAccess) Close(context.Context) error { return m.err }

func (m *mockDataAccess) Project(context.Context) (string, error) {
	return m.configured.Connection.Project, m.err
}

func (m *mockDataAccess) ServerVersion(context.Context) (string, error) {
	return "SQLite 3.46.0", m.err
}

func (m *mockDataAccess) ListWellHeaders(context.Context) ([]domain.WellHeader, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.WellHeader{{
		UWI:                "10001040100",
		Name:               "Well 401",
		SpudDate:           time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		BottomMD:           2500,
		BottomTVD:          math.NaN(),
		MagneticCorrection: 0.1,
	}}, nil
}

func (m *mockDataAccess) GetDirectionalSurvey(_ context.Context, uwi string) ([]domain.TrajectoryPoint, error) {
	m.uwis = []string{uwi}
	return []domain.TrajectoryPoint{{MD: 0}, {MD: 10, Inclination: 0.1, Azimuth: 1.5}}, m.err
}

func (m *mockDataAccess) GetLogIntervals(_ context.Context, uwi string, columns map[string]domain.LogKind) (map[string][]domain.IntervalRow, error) {
	m.uwis = []string{uwi}
	m.columns = columns
	if m.err != nil {
		return nil, m.err
	}
	return map[string][]domain.IntervalRow{
		"RT":       {{Top: 100, Base: 100.3, Float: math.NaN(), Int: domain.NullDiscrete}},
		"SAT_CODE": {{Top: 100, Base: 100.3, Float: math.NaN(), Int: 3}},
	}, nil
}

func (m *mockDataAccess) GetLatestWellState(_ context.Context, uwis []string) ([]domain.WellState, error) {
	m.uwis = uwis
	return []domain.WellState{{UWI: "10001040100", Type: 20, State: domain.NullDiscrete, StateDescription: "Idle"}}, m.err
}

func (m *mockDataAccess) GetFormationTops(_ context.Context, uwis []string) ([]domain.FormationTop, error) {
	m.uwis = uwis
	return []domain.FormationTop{{UWI: "10001040100", Layer: "K1", Top: 90, Base: 120}}, m.err
}
