// Package sqlite provides a SQLite-based implementation of driven.ModelSink.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Imported wells are kept in a single
// project database:
//
//   - wells: headers under their display name
//   - trajectory_points: corrected directional surveys
//   - well_logs / log_samples: resampled log series, NULL for undefined samples
//   - well_states: latest production state per well
//   - formation_tops: layer depth ranges
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.finderbridge/data/project.db
//
// # Thread Safety
//
// All operations are thread-safe. Replacing a well's trajectory or log runs in a
// single transaction, so readers never see a half-written series.
package sqlite
