package domain

import "time"

// Default settings values.
const (
	DefaultDriver       = "sqlite"
	DefaultProject      = "main"
	DefaultLogTable     = "WELL_LOG_RESULT_LAYER"
	DefaultWellFilter   = "%"
	DefaultReadyTimeout = 5 * time.Second

	// DefaultLogStep is the sampling interval of resampled log series.
	DefaultLogStep = 0.1

	// DepthTolerance absorbs accumulated rounding error in depth comparisons.
	DepthTolerance = 1e-6
)

// Settings is the complete application configuration.
type Settings struct {
	Session  SessionConfig
	Broker   BrokerSettings
	Client   ClientSettings
	Resample ResampleSettings
	Import   ImportSettings
	Sink     SinkSettings
}

// BrokerSettings configures how the host process is located and awaited.
type BrokerSettings struct {
	// HostDir is the directory holding the host executables.
	// Empty means the directory of the running executable.
	HostDir string

	// ReadyTimeout bounds the wait for a launched host to report ready.
	ReadyTimeout time.Duration
}

// ClientSettings describes the database client library for the architecture probe.
type ClientSettings struct {
	// Arch pins the client word size ("x32", "x64"). Empty means probe.
	Arch string

	// ProbeCommand prints the client banner containing "32-bit" or "64-bit".
	// Empty means the driver is linked into this binary and always native.
	ProbeCommand string
}

// ResampleSettings configures the well log resampler.
type ResampleSettings struct {
	Step float64
}

// ImportSettings selects what a batch import loads.
type ImportSettings struct {
	LoadSurvey  bool
	LoadLogs    bool
	NameFromUWI bool
	Suffix      string

	// MaxQueriesPerSecond paces per-well queries. Zero disables pacing.
	MaxQueriesPerSecond float64

	// MetricsFile receives batch metrics in text exposition format when set.
	MetricsFile string
}

// SinkSettings configures where imported wells are stored.
type SinkSettings struct {
	Dir string
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		Session: SessionConfig{
			Connection: ConnectionParams{
				Driver:  DefaultDriver,
				Project: DefaultProject,
			},
			LogTable:   DefaultLogTable,
			WellFilter: DefaultWellFilter,
		},
		Broker: BrokerSettings{
			ReadyTimeout: DefaultReadyTimeout,
		},
		Resample: ResampleSettings{
			Step: DefaultLogStep,
		},
		Import: ImportSettings{
			LoadSurvey:  true,
			LoadLogs:    true,
			NameFromUWI: true,
		},
	}
}
