package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// Resampler turns piecewise-constant interval rows into fixed-step depth
// series. Unsampled depth between two intervals is filled with undefined
// samples; nothing is emitted before the first interval or after the last.
type Resampler struct {
	step      float64
	tolerance float64
}

// NewResampler creates a resampler with the given step.
// A non-positive step selects domain.DefaultLogStep.
func NewResampler(step float64) *Resampler {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		step = domain.DefaultLogStep
	}
	return &Resampler{
		step:      step,
		tolerance: domain.DepthTolerance,
	}
}

// Step returns the sampling interval.
func (r *Resampler) Step() float64 {
	return r.step
}

// Resample resamples the interval rows of one column.
//
// Rows must be sorted by ascending top. A row whose top lies below the
// previous row's top fails with domain.ErrIntervalOrder, and a row with a
// NaN or infinite top or base fails with domain.ErrInvalidInput. Overlapping
// rows are not merged: sampling simply resumes from the depth already reached.
// Every sample lies on the grid first top + n*step.
func (r *Resampler) Resample(column string, kind domain.LogKind, rows []domain.IntervalRow) (domain.ColumnSeries, error) {
	series := domain.ColumnSeries{
		Column:  column,
		Kind:    kind,
		Samples: []domain.DepthSample{},
	}

	var origin float64
	n := 0
	prevTop := math.Inf(-1)

	for i, row := range rows {
		if !isFinite(row.Top) || !isFinite(row.Base) {
			return domain.ColumnSeries{}, fmt.Errorf("%w: %s row %d has top %g base %g",
				domain.ErrInvalidInput, column, i, row.Top, row.Base)
		}
		if row.Top < prevTop-r.tolerance {
			return domain.ColumnSeries{}, fmt.Errorf("%w: %s row %d top %g follows top %g",
				domain.ErrIntervalOrder, column, i, row.Top, prevTop)
		}
		prevTop = row.Top
		value, defined := rowValue(kind, row)

		if i == 0 {
			origin = row.Top
		} else {
			for ; r.depth(origin, n) < row.Top-r.tolerance; n++ {
				series.Samples = append(series.Samples, domain.DepthSample{MD: r.depth(origin, n)})
			}
		}

		for ; r.depth(origin, n) < row.Base-r.tolerance; n++ {
			series.Samples = append(series.Samples, domain.DepthSample{MD: r.depth(origin, n), Value: value, Defined: defined})
		}
	}

	return series, nil
}

// depth is the n-th grid depth below origin.
func (r *Resampler) depth(origin float64, n int) float64 {
	return origin + float64(n)*r.step
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ResampleAll resamples every column of the table.
// Columns absent from intervals produce an empty series.
func (r *Resampler) ResampleAll(table domain.LogColumnTable, intervals map[string][]domain.IntervalRow) (map[string]domain.ColumnSeries, error) {
	result := make(map[string]domain.ColumnSeries, table.Len())
	for _, col := range table.Columns() {
		series, err := r.Resample(col.Column, col.Kind, intervals[col.Column])
		if err != nil {
			return nil, err
		}
		result[col.Column] = series
	}
	return result, nil
}

// rowValue reads the typed value of a row.
// Null continuous values (NaN) and the discrete null sentinel are undefined.
func rowValue(kind domain.LogKind, row domain.IntervalRow) (float64, bool) {
	if kind == domain.Discrete {
		if row.Int == domain.NullDiscrete {
			return 0, false
		}
		return float64(row.Int), true
	}
	if math.IsNaN(row.Float) {
		return 0, false
	}
	return row.Float, true
}
