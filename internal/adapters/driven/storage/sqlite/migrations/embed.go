// Package migrations embeds the project store schema.
// Files are named NNN_name.up.sql / NNN_name.down.sql and applied in order.
package migrations

import "embed"

// FS holds the migration files.
//
//go:embed *.sql
var FS embed.FS
