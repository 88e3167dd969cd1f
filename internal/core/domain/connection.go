package domain

// ConnectionParams identifies the external well database.
type ConnectionParams struct {
	// Driver is the database/sql driver name.
	Driver string

	// DataSource is the driver-specific data source name.
	DataSource string

	User     string
	Password string

	// Project is the schema that holds the well tables.
	Project string
}

// SessionConfig is everything Configure needs before a session can be opened.
type SessionConfig struct {
	Connection ConnectionParams

	// LogTable is the interval log result table inside the project schema.
	LogTable string

	// WellFilter is an SQL LIKE pattern applied to well identifiers.
	// Empty or "%" selects every well.
	WellFilter string
}
