package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
)

// SettingKind is the type a config key is stored as.
type SettingKind int

const (
	StringSetting SettingKind = iota
	IntSetting
	FloatSetting
	BoolSetting
)

// SettingKey documents one config key.
type SettingKey struct {
	Key         string
	Kind        SettingKind
	Secret      bool
	Description string
}

var settingKeys = []SettingKey{
	{Key: KeyDriver, Description: "database driver"},
	{Key: KeyDataSource, Description: "driver data source name"},
	{Key: KeyUser, Description: "database user"},
	{Key: KeyPassword, Secret: true, Description: "database password"},
	{Key: KeyProject, Description: "Finder project schema"},
	{Key: KeyLogTable, Description: "table holding log curves"},
	{Key: KeyWellFilter, Description: "UWI pattern selecting wells"},
	{Key: KeyHostDir, Description: "directory of the host executables"},
	{Key: KeyReadyTimeoutMS, Kind: IntSetting, Description: "host ready timeout in milliseconds"},
	{Key: KeyClientArch, Description: "client library word size (x32, x64), empty to detect"},
	{Key: KeyProbeCommand, Description: "command printing the client banner"},
	{Key: KeyResampleStep, Kind: FloatSetting, Description: "log sampling interval"},
	{Key: KeyLoadSurvey, Kind: BoolSetting, Description: "import directional surveys"},
	{Key: KeyLoadLogs, Kind: BoolSetting, Description: "import well logs"},
	{Key: KeyNameFromUWI, Kind: BoolSetting, Description: "name wells by UWI instead of well name"},
	{Key: KeySuffix, Description: "suffix appended to imported well names"},
	{Key: KeyMaxQPS, Kind: FloatSetting, Description: "per-well query rate limit, 0 for none"},
	{Key: KeyMetricsFile, Description: "file receiving batch metrics"},
	{Key: KeySinkDir, Description: "project store directory"},
}

// SettingKeys returns every documented config key in display order.
func SettingKeys() []SettingKey {
	return append([]SettingKey(nil), settingKeys...)
}

// LookupSettingKey finds a documented config key.
func LookupSettingKey(key string) (SettingKey, bool) {
	for _, k := range settingKeys {
		if k.Key == key {
			return k, true
		}
	}
	return SettingKey{}, false
}

// ParseSetting converts the text form of a value to the type stored for key.
func ParseSetting(key, raw string) (any, error) {
	k, ok := LookupSettingKey(key)
	if !ok {
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	raw = strings.TrimSpace(raw)

	switch k.Kind {
	case IntSetting:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case FloatSetting:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		return f, nil
	case BoolSetting:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return b, nil
	}

	if key == KeyClientArch && raw != "" {
		w, err := domain.ParseWordSize(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return "x" + strconv.Itoa(int(w)), nil
	}
	return raw, nil
}

// SetSetting validates raw against key's type and stores it.
func SetSetting(store driven.ConfigStore, key, raw string) error {
	v, err := ParseSetting(key, raw)
	if err != nil {
		return err
	}
	if err := store.Set(key, v); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// SettingValue is the effective value of one key.
type SettingValue struct {
	SettingKey

	// Value is the effective value as text. Secrets are masked.
	Value string

	// Configured is false when Value is the default.
	Configured bool
}

// DescribeSettings returns the effective value of every documented key.
func DescribeSettings(store driven.ConfigStore) []SettingValue {
	s := LoadSettings(store)
	out := make([]SettingValue, 0, len(settingKeys))
	for _, k := range settingKeys {
		_, configured := store.Get(k.Key)
		v := effectiveValue(s, k.Key)
		if k.Secret {
			v = maskSecret(v)
		}
		out = append(out, SettingValue{SettingKey: k, Value: v, Configured: configured})
	}
	return out
}

func effectiveValue(s domain.Settings, key string) string {
	switch key {
	case KeyDriver:
		return s.Session.Connection.Driver
	case KeyDataSource:
		return s.Session.Connection.DataSource
	case KeyUser:
		return s.Session.Connection.User
	case KeyPassword:
		return s.Session.Connection.Password
	case KeyProject:
		return s.Session.Connection.Project
	case KeyLogTable:
		return s.Session.LogTable
	case KeyWellFilter:
		return s.Session.WellFilter
	case KeyHostDir:
		return s.Broker.HostDir
	case KeyReadyTimeoutMS:
		return strconv.FormatInt(int64(s.Broker.ReadyTimeout/time.Millisecond), 10)
	case KeyClientArch:
		return s.Client.Arch
	case KeyProbeCommand:
		return s.Client.ProbeCommand
	case KeyResampleStep:
		return strconv.FormatFloat(s.Resample.Step, 'g', -1, 64)
	case KeyLoadSurvey:
		return strconv.FormatBool(s.Import.LoadSurvey)
	case KeyLoadLogs:
		return strconv.FormatBool(s.Import.LoadLogs)
	case KeyNameFromUWI:
		return strconv.FormatBool(s.Import.NameFromUWI)
	case KeySuffix:
		return s.Import.Suffix
	case KeyMaxQPS:
		return strconv.FormatFloat(s.Import.MaxQueriesPerSecond, 'g', -1, 64)
	case KeyMetricsFile:
		return s.Import.MetricsFile
	case KeySinkDir:
		return s.Sink.Dir
	default:
		return ""
	}
}

func maskSecret(v string) string {
	if v == "" {
		return ""
	}
	return "********"
}
