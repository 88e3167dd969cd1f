package domain

import (
	"fmt"
	"math"
)

// LogKind distinguishes measured log curves from categorical code logs.
type LogKind int

const (
	// Continuous columns carry floating-point measurements.
	Continuous LogKind = iota
	// Discrete columns carry integer category codes.
	Discrete
)

// String returns the string representation.
func (k LogKind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	default:
		return fmt.Sprintf("LogKind(%d)", int(k))
	}
}

// ParseLogKind parses the string form produced by String.
func ParseLogKind(s string) (LogKind, error) {
	switch s {
	case "continuous":
		return Continuous, nil
	case "discrete":
		return Discrete, nil
	default:
		return 0, fmt.Errorf("%w: log kind %q", ErrInvalidInput, s)
	}
}

// NullDiscrete is how the data source encodes a missing discrete value.
const NullDiscrete int32 = math.MinInt32

// IntervalRow is one constant log value over the depth range [Top, Base).
// Only the field matching the column kind is meaningful.
type IntervalRow struct {
	Top  float64
	Base float64

	// Float holds continuous values; NaN when the source value is null.
	Float float64

	// Int holds discrete codes; NullDiscrete when the source value is null.
	Int int32
}

// DepthSample is one point of a resampled series.
// Value is meaningful only when Defined is true.
type DepthSample struct {
	MD      float64
	Value   float64
	Defined bool
}

// ColumnSeries is the fixed-step depth series produced for one log column.
// An empty Samples slice means the column had no interval rows at all,
// which is different from a series made only of undefined samples.
type ColumnSeries struct {
	Column  string
	Kind    LogKind
	Samples []DepthSample
}

// Empty reports whether the series carries no samples.
func (s ColumnSeries) Empty() bool {
	return len(s.Samples) == 0
}

// LogColumn maps a logical log name to its physical column in the log result table.
type LogColumn struct {
	Name   string
	Column string
	Kind   LogKind
}

// LogColumnTable is an immutable set of log column mappings.
type LogColumnTable struct {
	columns []LogColumn
}

// NewLogColumnTable builds a table, rejecting duplicate logical or physical names.
func NewLogColumnTable(columns ...LogColumn) (LogColumnTable, error) {
	names := make(map[string]struct{}, len(columns))
	physical := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if c.Name == "" || c.Column == "" {
			return LogColumnTable{}, fmt.Errorf("%w: log column needs a name and a column", ErrInvalidInput)
		}
		if _, dup := names[c.Name]; dup {
			return LogColumnTable{}, fmt.Errorf("%w: duplicate log %q", ErrInvalidInput, c.Name)
		}
		if _, dup := physical[c.Column]; dup {
			return LogColumnTable{}, fmt.Errorf("%w: duplicate column %q", ErrInvalidInput, c.Column)
		}
		names[c.Name] = struct{}{}
		physical[c.Column] = struct{}{}
	}
	cp := make([]LogColumn, len(columns))
	copy(cp, columns)
	return LogColumnTable{columns: cp}, nil
}

// DefaultLogColumns returns the standard log result layout.
func DefaultLogColumns() LogColumnTable {
	t, _ := NewLogColumnTable(
		LogColumn{Name: "SPI", Column: "SPI", Kind: Continuous},
		LogColumn{Name: "RT", Column: "RT", Kind: Continuous},
		LogColumn{Name: "PHIE", Column: "PHIE", Kind: Continuous},
		LogColumn{Name: "KINT", Column: "KINT", Kind: Continuous},
		LogColumn{Name: "SW", Column: "SW", Kind: Continuous},
		LogColumn{Name: "VCL", Column: "VCL", Kind: Continuous},
		LogColumn{Name: "SAT", Column: "SAT_CODE", Kind: Discrete},
		LogColumn{Name: "TIP", Column: "TIP", Kind: Discrete},
	)
	return t
}

// Columns returns a copy of the mappings in declaration order.
func (t LogColumnTable) Columns() []LogColumn {
	cp := make([]LogColumn, len(t.columns))
	copy(cp, t.columns)
	return cp
}

// Len returns the number of mappings.
func (t LogColumnTable) Len() int {
	return len(t.columns)
}

// Spec returns the physical column -> kind mapping used by log queries.
func (t LogColumnTable) Spec() map[string]LogKind {
	spec := make(map[string]LogKind, len(t.columns))
	for _, c := range t.columns {
		spec[c.Column] = c.Kind
	}
	return spec
}

// ByColumn looks up a mapping by its physical column name.
func (t LogColumnTable) ByColumn(column string) (LogColumn, bool) {
	for _, c := range t.columns {
		if c.Column == column {
			return c, true
		}
	}
	return LogColumn{}, false
}
