package finder

import (
	"database/sql"
	"math"
	"strings"
	"time"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// timeLayouts are the textual date forms found in the database.
// The SQLite driver hands DATE columns back either as time.Time, which
// database/sql renders as RFC 3339, or as the stored text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func intOrNull(v sql.NullInt32) int32 {
	if !v.Valid {
		return domain.NullDiscrete
	}
	return v.Int32
}

func stringOrEmpty(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func timeOrZero(v sql.NullString) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	s := strings.TrimSpace(v.String)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
