// Package finder implements driven.DataAccessService over database/sql.
//
// The well database keeps its tables in a project schema: well headers,
// directional surveys, interval log results with layer names, and well
// state history. Identifiers that end up inside SQL text (the project
// schema, the log table, log columns) are validated; every value is bound
// as a parameter.
//
// Null database values are mapped the same way everywhere: integers to
// math.MinInt32, floats to NaN, strings to "" and times to the zero time.
package finder
