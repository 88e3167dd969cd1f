package domain

import "time"

// ImportOptions selects what one batch import loads.
type ImportOptions struct {
	Session     SessionConfig
	Columns     LogColumnTable
	LoadSurvey  bool
	LoadLogs    bool
	NameFromUWI bool
	Suffix      string
}

// WellResult records the outcome of importing one well.
type WellResult struct {
	UWI    string
	Name   string
	Errors []error
}

// OK reports whether the well imported without errors.
func (r WellResult) OK() bool {
	return len(r.Errors) == 0
}

// ImportReport summarises a batch import.
// Per-well failures are recorded here; they never abort the batch.
type ImportReport struct {
	ServerVersion string
	Wells         []WellResult

	// StateErr and TopsErr record failures of the batch-level queries.
	StateErr error
	TopsErr  error

	StartedAt  time.Time
	FinishedAt time.Time
}

// Loaded returns the number of wells imported without errors.
func (r *ImportReport) Loaded() int {
	n := 0
	for _, w := range r.Wells {
		if w.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of wells imported with at least one error.
func (r *ImportReport) Failed() int {
	return len(r.Wells) - r.Loaded()
}

// Duration returns how long the batch ran.
func (r *ImportReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
