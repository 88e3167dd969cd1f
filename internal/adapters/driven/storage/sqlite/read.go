package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// StoredWell summarises one imported well.
type StoredWell struct {
	Header domain.WellHeader
	Name   string

	// Points and Logs count the stored trajectory stations and log series.
	Points int
	Logs   int
}

// Well returns one stored well.
func (s *ModelSink) Well(ctx context.Context, uwi string) (*StoredWell, error) {
	row := s.store.db.QueryRowContext(ctx, wellSelect+" WHERE w.uwi = ?", uwi)
	w, err := scanWell(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("well %s: %w", uwi, domain.ErrNotFound)
	}
	return w, err
}

// Wells returns every stored well ordered by name.
func (s *ModelSink) Wells(ctx context.Context) ([]StoredWell, error) {
	rows, err := s.store.db.QueryContext(ctx, wellSelect+" ORDER BY w.name, w.uwi")
	if err != nil {
		return nil, fmt.Errorf("querying wells: %w", err)
	}
	defer rows.Close()

	var wells []StoredWell //nolint:prealloc // size unknown from query
	for rows.Next() {
		w, err := scanWell(rows)
		if err != nil {
			return nil, err
		}
		wells = append(wells, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wells: %w", err)
	}
	return wells, nil
}

// Trajectory returns the stored trajectory of a well.
func (s *ModelSink) Trajectory(ctx context.Context, uwi string) ([]domain.TrajectoryPoint, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT md, inclination, azimuth FROM trajectory_points
		WHERE uwi = ? ORDER BY seq
	`, uwi)
	if err != nil {
		return nil, fmt.Errorf("querying trajectory: %w", err)
	}
	defer rows.Close()

	points := []domain.TrajectoryPoint{}
	for rows.Next() {
		var p domain.TrajectoryPoint
		if err := rows.Scan(&p.MD, &p.Inclination, &p.Azimuth); err != nil {
			return nil, fmt.Errorf("scanning trajectory point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trajectory: %w", err)
	}
	return points, nil
}

// Log returns one stored log series of a well.
func (s *ModelSink) Log(ctx context.Context, uwi, name string) (domain.ColumnSeries, error) {
	var series domain.ColumnSeries
	var kind string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT column_name, kind FROM well_logs WHERE uwi = ? AND log_name = ?", uwi, name,
	).Scan(&series.Column, &kind)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ColumnSeries{}, fmt.Errorf("log %s of %s: %w", name, uwi, domain.ErrNotFound)
	}
	if err != nil {
		return domain.ColumnSeries{}, fmt.Errorf("querying log: %w", err)
	}
	if series.Kind, err = domain.ParseLogKind(kind); err != nil {
		return domain.ColumnSeries{}, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT md, value FROM log_samples
		WHERE uwi = ? AND log_name = ? ORDER BY seq
	`, uwi, name)
	if err != nil {
		return domain.ColumnSeries{}, fmt.Errorf("querying log samples: %w", err)
	}
	defer rows.Close()

	series.Samples = []domain.DepthSample{}
	for rows.Next() {
		var md float64
		var value sql.NullFloat64
		if err := rows.Scan(&md, &value); err != nil {
			return domain.ColumnSeries{}, fmt.Errorf("scanning log sample: %w", err)
		}
		series.Samples = append(series.Samples, domain.DepthSample{
			MD: md, Value: value.Float64, Defined: value.Valid,
		})
	}
	if err := rows.Err(); err != nil {
		return domain.ColumnSeries{}, fmt.Errorf("iterating log samples: %w", err)
	}
	return series, nil
}

// WellState returns the stored state of a well.
func (s *ModelSink) WellState(ctx context.Context, uwi string) (*domain.WellState, error) {
	state := domain.WellState{UWI: uwi}
	var recordedAt sql.NullString
	err := s.store.db.QueryRowContext(ctx, `
		SELECT recorded_at, type, state, method,
			type_description, state_description, method_description
		FROM well_states WHERE uwi = ?
	`, uwi).Scan(&recordedAt, &state.Type, &state.State, &state.Method,
		&state.TypeDescription, &state.StateDescription, &state.MethodDescription)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("state of %s: %w", uwi, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying state: %w", err)
	}
	if state.Timestamp, err = timeOrZero(recordedAt); err != nil {
		return nil, err
	}
	return &state, nil
}

// FormationTops returns the stored tops of a well in saved order.
func (s *ModelSink) FormationTops(ctx context.Context, uwi string) ([]domain.FormationTop, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT layer, top, base FROM formation_tops
		WHERE uwi = ? ORDER BY seq
	`, uwi)
	if err != nil {
		return nil, fmt.Errorf("querying tops: %w", err)
	}
	defer rows.Close()

	tops := []domain.FormationTop{}
	for rows.Next() {
		top := domain.FormationTop{UWI: uwi}
		if err := rows.Scan(&top.Layer, &top.Top, &top.Base); err != nil {
			return nil, fmt.Errorf("scanning top: %w", err)
		}
		tops = append(tops, top)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tops: %w", err)
	}
	return tops, nil
}

const wellSelect = `
	SELECT w.uwi, w.name, w.cluster, w.class, w.operator, w.survey_tool, w.north_reference,
		w.spud_date, w.finish_date, w.survey_date, w.bottom_md, w.bottom_tvd, w.elevation,
		w.x, w.y, w.magnetic_correction,
		(SELECT COUNT(*) FROM trajectory_points t WHERE t.uwi = w.uwi),
		(SELECT COUNT(*) FROM well_logs l WHERE l.uwi = w.uwi)
	FROM wells w`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWell(row rowScanner) (*StoredWell, error) {
	var w StoredWell
	h := &w.Header
	var spud, finish, survey sql.NullString
	var bottomMD, bottomTVD, elevation, x, y, magnetic sql.NullFloat64
	if err := row.Scan(&h.UWI, &w.Name, &h.Cluster, &h.Class, &h.Operator, &h.SurveyTool,
		&h.NorthReference, &spud, &finish, &survey, &bottomMD, &bottomTVD, &elevation,
		&x, &y, &magnetic, &w.Points, &w.Logs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning well: %w", err)
	}

	var err error
	if h.SpudDate, err = timeOrZero(spud); err != nil {
		return nil, err
	}
	if h.FinishDate, err = timeOrZero(finish); err != nil {
		return nil, err
	}
	if h.SurveyDate, err = timeOrZero(survey); err != nil {
		return nil, err
	}
	h.BottomMD = floatOrNaN(bottomMD)
	h.BottomTVD = floatOrNaN(bottomTVD)
	h.Elevation = floatOrNaN(elevation)
	h.X = floatOrNaN(x)
	h.Y = floatOrNaN(y)
	h.MagneticCorrection = floatOrNaN(magnetic)
	return &w, nil
}
