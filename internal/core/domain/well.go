package domain

import (
	"strings"
	"time"
	"unicode"
)

// WellHeader is the identity, location and survey metadata of one well.
type WellHeader struct {
	UWI            string
	Name           string
	Cluster        string
	Class          string
	Operator       string
	SurveyTool     string
	NorthReference string

	SpudDate   time.Time
	FinishDate time.Time
	SurveyDate time.Time

	BottomMD  float64
	BottomTVD float64
	Elevation float64
	X         float64
	Y         float64

	// MagneticCorrection is the declination correction in radians.
	MagneticCorrection float64
}

// MagneticNorth is the NorthReference value of surveys measured against magnetic north.
const MagneticNorth = "M"

// ExploratoryClass is the well class that is grouped outside of clusters.
const ExploratoryClass = "EXPLORATORY"

// IsExploratory reports whether the well belongs to the exploratory class.
func (h WellHeader) IsExploratory() bool {
	return h.Class == ExploratoryClass
}

// TrajectoryPoint is one directional survey station. Angles are in radians.
type TrajectoryPoint struct {
	MD          float64
	Inclination float64
	Azimuth     float64
}

// WellState is the latest production status record of a well.
type WellState struct {
	UWI               string
	Timestamp         time.Time
	Type              int32
	State             int32
	Method            int32
	TypeDescription   string
	StateDescription  string
	MethodDescription string
}

// Well type codes that select a presentation symbol.
const (
	WellTypeProduction  int32 = 11
	WellTypeInjection   int32 = 20
	WellTypeExploration int32 = 42
)

// FormationTop is the depth range of one layer in one well.
type FormationTop struct {
	UWI   string
	Layer string
	Top   float64
	Base  float64
}

// WellNameFromUWI derives the short well name encoded in a UWI.
//
// Characters 5..8 carry the well number (leading zeros dropped) and
// characters 9..10 carry the sidetrack: "0401" + "00" gives "401",
// "0401" + "02" gives "401_2", "0401" + "12" gives "401_12" and
// "0401" + "B2" gives "401B_2".
func WellNameFromUWI(uwi string) (string, bool) {
	if len(uwi) < 11 {
		return "", false
	}
	name := strings.TrimLeft(uwi[5:9], "0")
	b1, b2 := rune(uwi[9]), rune(uwi[10])

	switch {
	case unicode.IsDigit(b1) && unicode.IsDigit(b2):
		if b1 != '0' {
			name += "_" + string(b1) + string(b2)
		} else if b2 != '0' {
			name += "_" + string(b2)
		}
	case unicode.IsDigit(b1):
		name += "_" + string(b1) + string(b2)
	default:
		name += string(b1)
		if !unicode.IsDigit(b2) {
			name += string(b2)
		} else if b2 != '0' {
			name += "_" + string(b2)
		}
	}
	return name, true
}

// DisplayName picks the name a well is created under.
// When fromUWI is set the UWI-derived name wins; an empty result falls back
// to the UWI. The suffix is always appended.
func DisplayName(h WellHeader, fromUWI bool, suffix string) string {
	name := h.Name
	if fromUWI {
		if derived, ok := WellNameFromUWI(h.UWI); ok {
			name = derived
		} else {
			name = h.UWI
		}
	}
	if name == "" {
		name = h.UWI
	}
	return name + suffix
}
