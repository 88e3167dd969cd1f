package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
)

// ModelSink implements driven.ModelSink on the project database.
type ModelSink struct {
	store *Store
}

var _ driven.ModelSink = (*ModelSink)(nil)

// SaveWell stores or replaces a well header.
// Previously imported trajectory, logs and state are kept.
func (s *ModelSink) SaveWell(ctx context.Context, h domain.WellHeader, name string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO wells (uwi, name, cluster, class, operator, survey_tool, north_reference,
			spud_date, finish_date, survey_date, bottom_md, bottom_tvd, elevation, x, y,
			magnetic_correction, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uwi) DO UPDATE SET
			name = excluded.name,
			cluster = excluded.cluster,
			class = excluded.class,
			operator = excluded.operator,
			survey_tool = excluded.survey_tool,
			north_reference = excluded.north_reference,
			spud_date = excluded.spud_date,
			finish_date = excluded.finish_date,
			survey_date = excluded.survey_date,
			bottom_md = excluded.bottom_md,
			bottom_tvd = excluded.bottom_tvd,
			elevation = excluded.elevation,
			x = excluded.x,
			y = excluded.y,
			magnetic_correction = excluded.magnetic_correction,
			updated_at = excluded.updated_at
	`, h.UWI, name, h.Cluster, h.Class, h.Operator, h.SurveyTool, h.NorthReference,
		nullTime(h.SpudDate), nullTime(h.FinishDate), nullTime(h.SurveyDate),
		nullFloat(h.BottomMD), nullFloat(h.BottomTVD), nullFloat(h.Elevation),
		nullFloat(h.X), nullFloat(h.Y), nullFloat(h.MagneticCorrection),
		s.store.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving well %s: %w", h.UWI, err)
	}
	return nil
}

// SaveTrajectory replaces the trajectory of a stored well.
func (s *ModelSink) SaveTrajectory(ctx context.Context, uwi string, points []domain.TrajectoryPoint) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireWell(ctx, tx, uwi); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM trajectory_points WHERE uwi = ?", uwi); err != nil {
			return fmt.Errorf("clearing trajectory: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO trajectory_points (uwi, seq, md, inclination, azimuth)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing trajectory insert: %w", err)
		}
		defer stmt.Close()

		for i, p := range points {
			if _, err := stmt.ExecContext(ctx, uwi, i, p.MD, p.Inclination, p.Azimuth); err != nil {
				return fmt.Errorf("saving trajectory point %d: %w", i, err)
			}
		}
		return nil
	})
}

// SaveLog replaces one log of a stored well.
func (s *ModelSink) SaveLog(ctx context.Context, uwi string, log domain.LogColumn, series domain.ColumnSeries) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireWell(ctx, tx, uwi); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM log_samples WHERE uwi = ? AND log_name = ?", uwi, log.Name); err != nil {
			return fmt.Errorf("clearing log samples: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO well_logs (uwi, log_name, column_name, kind)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(uwi, log_name) DO UPDATE SET
				column_name = excluded.column_name,
				kind = excluded.kind
		`, uwi, log.Name, log.Column, series.Kind.String()); err != nil {
			return fmt.Errorf("saving log %s: %w", log.Name, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO log_samples (uwi, log_name, seq, md, value)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing sample insert: %w", err)
		}
		defer stmt.Close()

		for i, sample := range series.Samples {
			value := sql.NullFloat64{Float64: sample.Value, Valid: sample.Defined}
			if _, err := stmt.ExecContext(ctx, uwi, log.Name, i, sample.MD, value); err != nil {
				return fmt.Errorf("saving sample %d of %s: %w", i, log.Name, err)
			}
		}
		return nil
	})
}

// SaveWellState stores the latest state of a stored well.
func (s *ModelSink) SaveWellState(ctx context.Context, state domain.WellState) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireWell(ctx, tx, state.UWI); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO well_states (uwi, recorded_at, type, state, method,
				type_description, state_description, method_description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(uwi) DO UPDATE SET
				recorded_at = excluded.recorded_at,
				type = excluded.type,
				state = excluded.state,
				method = excluded.method,
				type_description = excluded.type_description,
				state_description = excluded.state_description,
				method_description = excluded.method_description
		`, state.UWI, nullTime(state.Timestamp), state.Type, state.State, state.Method,
			state.TypeDescription, state.StateDescription, state.MethodDescription)
		if err != nil {
			return fmt.Errorf("saving state of %s: %w", state.UWI, err)
		}
		return nil
	})
}

// SaveFormationTops replaces the tops of every well present in tops.
func (s *ModelSink) SaveFormationTops(ctx context.Context, tops []domain.FormationTop) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		seq := make(map[string]int)
		for _, top := range tops {
			if _, seen := seq[top.UWI]; !seen {
				if _, err := tx.ExecContext(ctx, "DELETE FROM formation_tops WHERE uwi = ?", top.UWI); err != nil {
					return fmt.Errorf("clearing tops of %s: %w", top.UWI, err)
				}
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO formation_tops (uwi, seq, layer, top, base)
				VALUES (?, ?, ?, ?, ?)
			`, top.UWI, seq[top.UWI], top.Layer, top.Top, top.Base); err != nil {
				return fmt.Errorf("saving top %s of %s: %w", top.Layer, top.UWI, err)
			}
			seq[top.UWI]++
		}
		return nil
	})
}

// KnownWells lists stored well identifiers in sorted order.
func (s *ModelSink) KnownWells(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT uwi FROM wells ORDER BY uwi")
	if err != nil {
		return nil, fmt.Errorf("querying wells: %w", err)
	}
	defer rows.Close()

	uwis := []string{}
	for rows.Next() {
		var uwi string
		if err := rows.Scan(&uwi); err != nil {
			return nil, fmt.Errorf("scanning well: %w", err)
		}
		uwis = append(uwis, uwi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wells: %w", err)
	}
	return uwis, nil
}

// requireWell returns domain.ErrNotFound when uwi has no header row.
func requireWell(ctx context.Context, tx *sql.Tx, uwi string) error {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM wells WHERE uwi = ?", uwi).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("well %s: %w", uwi, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("looking up well %s: %w", uwi, err)
	}
	return nil
}

// nullFloat stores NaN as NULL.
func nullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// nullTime stores the zero time as NULL and everything else as RFC 3339 text.
func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}

func timeOrZero(v sql.NullString) (time.Time, error) {
	if !v.Valid {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", v.String, err)
	}
	return t, nil
}
