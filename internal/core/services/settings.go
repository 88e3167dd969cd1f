package services

import (
	"time"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyDriver         = "connection.driver"
	KeyDataSource     = "connection.data_source"
	KeyUser           = "connection.user"
	KeyPassword       = "connection.password"
	KeyProject        = "connection.project"
	KeyLogTable       = "connection.log_table"
	KeyWellFilter     = "connection.well_filter"
	KeyHostDir        = "broker.host_dir"
	KeyReadyTimeoutMS = "broker.ready_timeout_ms"
	KeyClientArch     = "client.arch"
	KeyProbeCommand   = "client.probe_command"
	KeyResampleStep   = "resample.step"
	KeyLoadSurvey     = "import.load_survey"
	KeyLoadLogs       = "import.load_logs"
	KeyNameFromUWI    = "import.name_from_uwi"
	KeySuffix         = "import.suffix"
	KeyMaxQPS         = "import.max_queries_per_second"
	KeyMetricsFile    = "import.metrics_file"
	KeySinkDir        = "sink.dir"
)

// LoadSettings reads settings from the config store, applying defaults
// for every key that is absent.
func LoadSettings(store driven.ConfigStore) domain.Settings {
	s := domain.DefaultSettings()
	r := settingsReader{store: store}

	conn := &s.Session.Connection
	conn.Driver = r.getString(KeyDriver, conn.Driver)
	conn.DataSource = r.getString(KeyDataSource, conn.DataSource)
	conn.User = r.getString(KeyUser, conn.User)
	conn.Password = r.getString(KeyPassword, conn.Password)
	conn.Project = r.getString(KeyProject, conn.Project)
	s.Session.LogTable = r.getString(KeyLogTable, s.Session.LogTable)
	s.Session.WellFilter = r.getString(KeyWellFilter, s.Session.WellFilter)

	s.Broker.HostDir = r.getString(KeyHostDir, s.Broker.HostDir)
	if ms := store.GetInt(KeyReadyTimeoutMS); ms > 0 {
		s.Broker.ReadyTimeout = time.Duration(ms) * time.Millisecond
	}

	s.Client.Arch = r.getString(KeyClientArch, s.Client.Arch)
	s.Client.ProbeCommand = r.getString(KeyProbeCommand, s.Client.ProbeCommand)

	if step := store.GetFloat(KeyResampleStep); step > 0 {
		s.Resample.Step = step
	}

	s.Import.LoadSurvey = r.getBool(KeyLoadSurvey, s.Import.LoadSurvey)
	s.Import.LoadLogs = r.getBool(KeyLoadLogs, s.Import.LoadLogs)
	s.Import.NameFromUWI = r.getBool(KeyNameFromUWI, s.Import.NameFromUWI)
	s.Import.Suffix = r.getString(KeySuffix, s.Import.Suffix)
	if qps := store.GetFloat(KeyMaxQPS); qps > 0 {
		s.Import.MaxQueriesPerSecond = qps
	}
	s.Import.MetricsFile = r.getString(KeyMetricsFile, s.Import.MetricsFile)

	s.Sink.Dir = r.getString(KeySinkDir, s.Sink.Dir)
	return s
}

type settingsReader struct {
	store driven.ConfigStore
}

func (r settingsReader) getString(key, defaultVal string) string {
	if v := r.store.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

func (r settingsReader) getBool(key string, defaultVal bool) bool {
	if _, ok := r.store.Get(key); !ok {
		return defaultVal
	}
	return r.store.GetBool(key)
}
