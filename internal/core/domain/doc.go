// Package domain defines the core business entities for finderbridge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - WellHeader: Identity and location of a well
//   - TrajectoryPoint: One directional survey station
//   - IntervalRow: A constant log value over a depth range [top, base)
//   - ColumnSeries: A fixed-step, gap-aware depth series for one log column
//   - WellState, FormationTop: Per-well status and zonation records
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
