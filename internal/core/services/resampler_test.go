package services

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

var approxDepth = cmpopts.EquateApprox(0, 1e-9)

func defined(md, v float64) domain.DepthSample {
	return domain.DepthSample{MD: md, Value: v, Defined: true}
}

func undefined(md float64) domain.DepthSample {
	return domain.DepthSample{MD: md}
}

func TestNewResampler_DefaultStep(t *testing.T) {
	assert.InDelta(t, domain.DefaultLogStep, NewResampler(0).Step(), 1e-12)
	assert.InDelta(t, domain.DefaultLogStep, NewResampler(-1).Step(), 1e-12)
	assert.InDelta(t, domain.DefaultLogStep, NewResampler(math.NaN()).Step(), 1e-12)
	assert.InDelta(t, 0.5, NewResampler(0.5).Step(), 1e-12)
}

func TestResample(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name string
		kind domain.LogKind
		rows []domain.IntervalRow
		want []domain.DepthSample
	}{
		{
			name: "empty input",
			kind: domain.Continuous,
			want: []domain.DepthSample{},
		},
		{
			name: "single interval",
			kind: domain.Continuous,
			rows: []domain.IntervalRow{{Top: 100.0, Base: 100.3, Float: 5}},
			want: []domain.DepthSample{defined(100.0, 5), defined(100.1, 5), defined(100.2, 5)},
		},
		{
			name: "gap between intervals is filled with undefined samples",
			kind: domain.Continuous,
			rows: []domain.IntervalRow{
				{Top: 100.0, Base: 100.2, Float: 1},
				{Top: 100.5, Base: 100.7, Float: 2},
			},
			want: []domain.DepthSample{
				defined(100.0, 1), defined(100.1, 1),
				undefined(100.2), undefined(100.3), undefined(100.4),
				defined(100.5, 2), defined(100.6, 2),
			},
		},
		{
			name: "adjacent intervals",
			kind: domain.Continuous,
			rows: []domain.IntervalRow{
				{Top: 10.0, Base: 10.2, Float: 1},
				{Top: 10.2, Base: 10.4, Float: 2},
			},
			want: []domain.DepthSample{defined(10.0, 1), defined(10.1, 1), defined(10.2, 2), defined(10.3, 2)},
		},
		{
			name: "null continuous value",
			kind: domain.Continuous,
			rows: []domain.IntervalRow{{Top: 1.0, Base: 1.2, Float: nan}},
			want: []domain.DepthSample{undefined(1.0), undefined(1.1)},
		},
		{
			name: "discrete codes",
			kind: domain.Discrete,
			rows: []domain.IntervalRow{
				{Top: 50.0, Base: 50.2, Int: 3},
				{Top: 50.2, Base: 50.3, Int: domain.NullDiscrete},
			},
			want: []domain.DepthSample{defined(50.0, 3), defined(50.1, 3), undefined(50.2)},
		},
		{
			name: "interval shorter than a step",
			kind: domain.Continuous,
			rows: []domain.IntervalRow{{Top: 7.0, Base: 7.05, Float: 9}},
			want: []domain.DepthSample{defined(7.0, 9)},
		},
		{
			name: "zero thickness interval",
			kind: domain.Continuous,
			rows: []domain.IntervalRow{{Top: 7.0, Base: 7.0, Float: 9}},
			want: []domain.DepthSample{},
		},
		{
			name: "overlap resumes from reached depth",
			kind: domain.Continuous,
			rows: []domain.IntervalRow{
				{Top: 0.0, Base: 0.3, Float: 1},
				{Top: 0.1, Base: 0.5, Float: 2},
			},
			want: []domain.DepthSample{
				defined(0.0, 1), defined(0.1, 1), defined(0.2, 1),
				defined(0.3, 2), defined(0.4, 2),
			},
		},
	}

	r := NewResampler(domain.DefaultLogStep)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := r.Resample("COL", tt.kind, tt.rows)
			require.NoError(t, err)
			assert.Equal(t, "COL", series.Column)
			assert.Equal(t, tt.kind, series.Kind)
			require.NotNil(t, series.Samples)
			if diff := cmp.Diff(tt.want, series.Samples, approxDepth); diff != "" {
				t.Errorf("samples mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResample_OutOfOrder(t *testing.T) {
	r := NewResampler(domain.DefaultLogStep)

	_, err := r.Resample("RT", domain.Continuous, []domain.IntervalRow{
		{Top: 10, Base: 11, Float: 1},
		{Top: 5, Base: 6, Float: 2},
	})
	assert.ErrorIs(t, err, domain.ErrIntervalOrder)
}

func TestResample_EqualTopsWithinTolerance(t *testing.T) {
	r := NewResampler(domain.DefaultLogStep)

	_, err := r.Resample("RT", domain.Continuous, []domain.IntervalRow{
		{Top: 10, Base: 10.1, Float: 1},
		{Top: 10 - 1e-9, Base: 10.2, Float: 2},
	})
	assert.NoError(t, err)
}

func TestResample_MonotonicAndStepSpaced(t *testing.T) {
	r := NewResampler(domain.DefaultLogStep)
	rows := []domain.IntervalRow{
		{Top: 1000.0, Base: 1003.7, Float: 1},
		{Top: 1005.2, Base: 1010.0, Float: 2},
		{Top: 1012.0, Base: 1012.9, Float: 3},
	}

	series, err := r.Resample("PHIE", domain.Continuous, rows)
	require.NoError(t, err)
	require.NotEmpty(t, series.Samples)

	assert.InDelta(t, 1000.0, series.Samples[0].MD, 1e-9)
	for i := 1; i < len(series.Samples); i++ {
		gap := series.Samples[i].MD - series.Samples[i-1].MD
		assert.Greater(t, gap, 0.0)
		assert.InDelta(t, domain.DefaultLogStep, gap, 1e-6)
	}
	last := series.Samples[len(series.Samples)-1]
	assert.Less(t, last.MD, 1012.9)
	assert.True(t, last.Defined)
}

func TestResample_LongIntervalStaysOnGrid(t *testing.T) {
	r := NewResampler(domain.DefaultLogStep)

	for _, origin := range []float64{0, 2500} {
		series, err := r.Resample("RT", domain.Continuous, []domain.IntervalRow{
			{Top: origin, Base: origin + 100, Float: 1},
		})
		require.NoError(t, err)
		require.Len(t, series.Samples, 1000)
		for i, s := range series.Samples {
			if s.MD != origin+float64(i)*domain.DefaultLogStep {
				t.Fatalf("origin %g: sample %d at %v, want %v", origin, i, s.MD, origin+float64(i)*domain.DefaultLogStep)
			}
		}
	}
}

func TestResample_GapFillStaysOnGrid(t *testing.T) {
	r := NewResampler(domain.DefaultLogStep)

	series, err := r.Resample("RT", domain.Continuous, []domain.IntervalRow{
		{Top: 1000, Base: 1050, Float: 1},
		{Top: 1080, Base: 1100, Float: 2},
	})
	require.NoError(t, err)
	require.Len(t, series.Samples, 1000)

	for i, s := range series.Samples {
		assert.Equal(t, 1000+float64(i)*domain.DefaultLogStep, s.MD)
	}
	assert.False(t, series.Samples[500].Defined)
	assert.True(t, series.Samples[800].Defined)
	assert.Equal(t, 2.0, series.Samples[800].Value)
}

func TestResample_NonFiniteDepth(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)

	tests := []struct {
		name string
		rows []domain.IntervalRow
	}{
		{"NaN top", []domain.IntervalRow{{Top: nan, Base: 10, Float: 1}}},
		{"NaN base", []domain.IntervalRow{{Top: 10, Base: nan, Float: 1}}},
		{"infinite base", []domain.IntervalRow{{Top: 10, Base: inf, Float: 1}}},
		{"negative infinite top", []domain.IntervalRow{{Top: -inf, Base: 10, Float: 1}}},
		{"NaN top after valid row", []domain.IntervalRow{
			{Top: 10, Base: 10.2, Float: 1},
			{Top: nan, Base: 10.4, Float: 2},
		}},
	}

	r := NewResampler(domain.DefaultLogStep)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := r.Resample("RT", domain.Continuous, tt.rows)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.NotErrorIs(t, err, domain.ErrIntervalOrder)
			assert.Empty(t, series.Samples)
		})
	}
}

func TestResampleAll(t *testing.T) {
	table, err := domain.NewLogColumnTable(
		domain.LogColumn{Name: "RT", Column: "RT", Kind: domain.Continuous},
		domain.LogColumn{Name: "SAT", Column: "SAT_CODE", Kind: domain.Discrete},
	)
	require.NoError(t, err)

	r := NewResampler(domain.DefaultLogStep)
	out, err := r.ResampleAll(table, map[string][]domain.IntervalRow{
		"SAT_CODE": {{Top: 2.0, Base: 2.2, Int: 4}},
	})
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.True(t, out["RT"].Empty())
	assert.Equal(t, domain.Continuous, out["RT"].Kind)
	assert.Len(t, out["SAT_CODE"].Samples, 2)
	assert.Equal(t, domain.Discrete, out["SAT_CODE"].Kind)
}

func TestResampleAll_PropagatesOrderError(t *testing.T) {
	r := NewResampler(domain.DefaultLogStep)
	_, err := r.ResampleAll(domain.DefaultLogColumns(), map[string][]domain.IntervalRow{
		"RT": {{Top: 2, Base: 3}, {Top: 1, Base: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrIntervalOrder)
}
