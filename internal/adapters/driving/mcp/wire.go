package mcp

import (
	"math"
	"time"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// Wire types avoid NaN and time.Time: JSON has no NaN, and dates travel as
// RFC 3339 text with "" for the zero time. Null numbers are omitted.

// NoInput is the argument of tools that take none.
type NoInput struct{}

// Ack is the result of tools that return nothing.
type Ack struct {
	OK bool `json:"ok"`
}

// ProbeOutput is the result of the probe_architecture tool.
type ProbeOutput struct {
	Compatible bool `json:"compatible"`
}

// TextOutput is the result of tools returning a single string.
type TextOutput struct {
	Value string `json:"value"`
}

// SessionInput is the argument of the configure tool.
type SessionInput struct {
	Driver     string `json:"driver"`
	DataSource string `json:"data_source"`
	User       string `json:"user"`
	Password   string `json:"password"`
	Project    string `json:"project"`
	LogTable   string `json:"log_table"`
	WellFilter string `json:"well_filter"`
}

// UWIInput is the argument of per-well tools.
type UWIInput struct {
	UWI string `json:"uwi" jsonschema:"unique well identifier"`
}

// UWIListInput is the argument of batch tools.
type UWIListInput struct {
	UWIs []string `json:"uwis" jsonschema:"unique well identifiers to keep"`
}

// LogIntervalsInput is the argument of the get_log_intervals tool.
type LogIntervalsInput struct {
	UWI     string            `json:"uwi"`
	Columns map[string]string `json:"columns" jsonschema:"physical column name to kind (continuous or discrete)"`
}

// WellHeader is a well header on the wire.
type WellHeader struct {
	UWI                string   `json:"uwi"`
	Name               string   `json:"name"`
	Cluster            string   `json:"cluster"`
	Class              string   `json:"class"`
	Operator           string   `json:"operator"`
	SurveyTool         string   `json:"survey_tool"`
	NorthReference     string   `json:"north_reference"`
	SpudDate           string   `json:"spud_date"`
	FinishDate         string   `json:"finish_date"`
	SurveyDate         string   `json:"survey_date"`
	BottomMD           *float64 `json:"bottom_md,omitempty"`
	BottomTVD          *float64 `json:"bottom_tvd,omitempty"`
	Elevation          *float64 `json:"elevation,omitempty"`
	X                  *float64 `json:"x,omitempty"`
	Y                  *float64 `json:"y,omitempty"`
	MagneticCorrection *float64 `json:"magnetic_correction,omitempty"`
}

// WellHeadersOutput is the result of the list_well_headers tool.
type WellHeadersOutput struct {
	Wells []WellHeader `json:"wells"`
}

// TrajectoryPoint is a survey station on the wire.
type TrajectoryPoint struct {
	MD          *float64 `json:"md,omitempty"`
	Inclination *float64 `json:"inclination,omitempty"`
	Azimuth     *float64 `json:"azimuth,omitempty"`
}

// SurveyOutput is the result of the get_directional_survey tool.
type SurveyOutput struct {
	Points []TrajectoryPoint `json:"points"`
}

// IntervalRow is one log interval on the wire.
type IntervalRow struct {
	Top   *float64 `json:"top,omitempty"`
	Base  *float64 `json:"base,omitempty"`
	Float *float64 `json:"float,omitempty"`
	Int   *int32   `json:"int,omitempty"`
}

// LogIntervalsOutput is the result of the get_log_intervals tool.
type LogIntervalsOutput struct {
	Columns map[string][]IntervalRow `json:"columns"`
}

// WellState is a well state record on the wire.
type WellState struct {
	UWI               string `json:"uwi"`
	Timestamp         string `json:"timestamp"`
	Type              *int32 `json:"type,omitempty"`
	State             *int32 `json:"state,omitempty"`
	Method            *int32 `json:"method,omitempty"`
	TypeDescription   string `json:"type_description"`
	StateDescription  string `json:"state_description"`
	MethodDescription string `json:"method_description"`
}

// WellStatesOutput is the result of the get_latest_well_state tool.
type WellStatesOutput struct {
	States []WellState `json:"states"`
}

// FormationTop is a layer range on the wire.
type FormationTop struct {
	UWI   string   `json:"uwi"`
	Layer string   `json:"layer"`
	Top   *float64 `json:"top,omitempty"`
	Base  *float64 `json:"base,omitempty"`
}

// FormationTopsOutput is the result of the get_formation_tops tool.
type FormationTopsOutput struct {
	Tops []FormationTop `json:"tops"`
}

func optFloat(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func fromOptFloat(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func optInt(v int32) *int32 {
	if v == domain.NullDiscrete {
		return nil
	}
	return &v
}

func fromOptInt(p *int32) int32 {
	if p == nil {
		return domain.NullDiscrete
	}
	return *p
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// EncodeSession converts a session config to its wire form.
func EncodeSession(cfg domain.SessionConfig) SessionInput {
	c := cfg.Connection
	return SessionInput{
		Driver:     c.Driver,
		DataSource: c.DataSource,
		User:       c.User,
		Password:   c.Password,
		Project:    c.Project,
		LogTable:   cfg.LogTable,
		WellFilter: cfg.WellFilter,
	}
}

// Decode converts the wire form back to a session config.
func (in SessionInput) Decode() domain.SessionConfig {
	return domain.SessionConfig{
		Connection: domain.ConnectionParams{
			Driver:     in.Driver,
			DataSource: in.DataSource,
			User:       in.User,
			Password:   in.Password,
			Project:    in.Project,
		},
		LogTable:   in.LogTable,
		WellFilter: in.WellFilter,
	}
}

// EncodeWellHeaders converts headers to their wire form.
func EncodeWellHeaders(headers []domain.WellHeader) WellHeadersOutput {
	out := WellHeadersOutput{Wells: make([]WellHeader, len(headers))}
	for i, h := range headers {
		out.Wells[i] = WellHeader{
			UWI:                h.UWI,
			Name:               h.Name,
			Cluster:            h.Cluster,
			Class:              h.Class,
			Operator:           h.Operator,
			SurveyTool:         h.SurveyTool,
			NorthReference:     h.NorthReference,
			SpudDate:           formatTime(h.SpudDate),
			FinishDate:         formatTime(h.FinishDate),
			SurveyDate:         formatTime(h.SurveyDate),
			BottomMD:           optFloat(h.BottomMD),
			BottomTVD:          optFloat(h.BottomTVD),
			Elevation:          optFloat(h.Elevation),
			X:                  optFloat(h.X),
			Y:                  optFloat(h.Y),
			MagneticCorrection: optFloat(h.MagneticCorrection),
		}
	}
	return out
}

// Decode converts the wire form back to headers.
func (o WellHeadersOutput) Decode() []domain.WellHeader {
	headers := make([]domain.WellHeader, len(o.Wells))
	for i, w := range o.Wells {
		headers[i] = domain.WellHeader{
			UWI:                w.UWI,
			Name:               w.Name,
			Cluster:            w.Cluster,
			Class:              w.Class,
			Operator:           w.Operator,
			SurveyTool:         w.SurveyTool,
			NorthReference:     w.NorthReference,
			SpudDate:           parseTime(w.SpudDate),
			FinishDate:         parseTime(w.FinishDate),
			SurveyDate:         parseTime(w.SurveyDate),
			BottomMD:           fromOptFloat(w.BottomMD),
			BottomTVD:          fromOptFloat(w.BottomTVD),
			Elevation:          fromOptFloat(w.Elevation),
			X:                  fromOptFloat(w.X),
			Y:                  fromOptFloat(w.Y),
			MagneticCorrection: fromOptFloat(w.MagneticCorrection),
		}
	}
	return headers
}

// EncodeSurvey converts survey stations to their wire form.
func EncodeSurvey(points []domain.TrajectoryPoint) SurveyOutput {
	out := SurveyOutput{Points: make([]TrajectoryPoint, len(points))}
	for i, p := range points {
		out.Points[i] = TrajectoryPoint{
			MD:          optFloat(p.MD),
			Inclination: optFloat(p.Inclination),
			Azimuth:     optFloat(p.Azimuth),
		}
	}
	return out
}

// Decode converts the wire form back to survey stations.
func (o SurveyOutput) Decode() []domain.TrajectoryPoint {
	points := make([]domain.TrajectoryPoint, len(o.Points))
	for i, p := range o.Points {
		points[i] = domain.TrajectoryPoint{
			MD:          fromOptFloat(p.MD),
			Inclination: fromOptFloat(p.Inclination),
			Azimuth:     fromOptFloat(p.Azimuth),
		}
	}
	return points
}

// EncodeColumnSpec converts a column spec to its wire form.
func EncodeColumnSpec(columns map[string]domain.LogKind) map[string]string {
	out := make(map[string]string, len(columns))
	for name, kind := range columns {
		out[name] = kind.String()
	}
	return out
}

// DecodeColumnSpec converts the wire form back to a column spec.
func DecodeColumnSpec(columns map[string]string) (map[string]domain.LogKind, error) {
	out := make(map[string]domain.LogKind, len(columns))
	for name, s := range columns {
		kind, err := domain.ParseLogKind(s)
		if err != nil {
			return nil, err
		}
		out[name] = kind
	}
	return out, nil
}

// EncodeLogIntervals converts interval rows to their wire form.
func EncodeLogIntervals(intervals map[string][]domain.IntervalRow) LogIntervalsOutput {
	out := LogIntervalsOutput{Columns: make(map[string][]IntervalRow, len(intervals))}
	for name, rows := range intervals {
		wire := make([]IntervalRow, len(rows))
		for i, r := range rows {
			wire[i] = IntervalRow{
				Top:   optFloat(r.Top),
				Base:  optFloat(r.Base),
				Float: optFloat(r.Float),
				Int:   optInt(r.Int),
			}
		}
		out.Columns[name] = wire
	}
	return out
}

// Decode converts the wire form back to interval rows.
func (o LogIntervalsOutput) Decode() map[string][]domain.IntervalRow {
	out := make(map[string][]domain.IntervalRow, len(o.Columns))
	for name, wire := range o.Columns {
		rows := make([]domain.IntervalRow, len(wire))
		for i, r := range wire {
			rows[i] = domain.IntervalRow{
				Top:   fromOptFloat(r.Top),
				Base:  fromOptFloat(r.Base),
				Float: fromOptFloat(r.Float),
				Int:   fromOptInt(r.Int),
			}
		}
		out[name] = rows
	}
	return out
}

// EncodeWellStates converts state records to their wire form.
func EncodeWellStates(states []domain.WellState) WellStatesOutput {
	out := WellStatesOutput{States: make([]WellState, len(states))}
	for i, s := range states {
		out.States[i] = WellState{
			UWI:               s.UWI,
			Timestamp:         formatTime(s.Timestamp),
			Type:              optInt(s.Type),
			State:             optInt(s.State),
			Method:            optInt(s.Method),
			TypeDescription:   s.TypeDescription,
			StateDescription:  s.StateDescription,
			MethodDescription: s.MethodDescription,
		}
	}
	return out
}

// Decode converts the wire form back to state records.
func (o WellStatesOutput) Decode() []domain.WellState {
	states := make([]domain.WellState, len(o.States))
	for i, s := range o.States {
		states[i] = domain.WellState{
			UWI:               s.UWI,
			Timestamp:         parseTime(s.Timestamp),
			Type:              fromOptInt(s.Type),
			State:             fromOptInt(s.State),
			Method:            fromOptInt(s.Method),
			TypeDescription:   s.TypeDescription,
			StateDescription:  s.StateDescription,
			MethodDescription: s.MethodDescription,
		}
	}
	return states
}

// EncodeFormationTops converts layer ranges to their wire form.
func EncodeFormationTops(tops []domain.FormationTop) FormationTopsOutput {
	out := FormationTopsOutput{Tops: make([]FormationTop, len(tops))}
	for i, t := range tops {
		out.Tops[i] = FormationTop{
			UWI:   t.UWI,
			Layer: t.Layer,
			Top:   optFloat(t.Top),
			Base:  optFloat(t.Base),
		}
	}
	return out
}

// Decode converts the wire form back to layer ranges.
func (o FormationTopsOutput) Decode() []domain.FormationTop {
	tops := make([]domain.FormationTop, len(o.Tops))
	for i, t := range o.Tops {
		tops[i] = domain.FormationTop{
			UWI:   t.UWI,
			Layer: t.Layer,
			Top:   fromOptFloat(t.Top),
			Base:  fromOptFloat(t.Base),
		}
	}
	return tops
}
