package services

import (
	"math"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// CorrectSurvey applies the header's declination correction to surveys
// measured against magnetic north and folds azimuths back below 2*pi.
func CorrectSurvey(header domain.WellHeader, points []domain.TrajectoryPoint) []domain.TrajectoryPoint {
	out := make([]domain.TrajectoryPoint, len(points))
	magnetic := header.NorthReference == domain.MagneticNorth
	for i, p := range points {
		if magnetic {
			p.Azimuth += header.MagneticCorrection
		}
		if p.Azimuth > 2*math.Pi {
			p.Azimuth -= 2 * math.Pi
		}
		out[i] = p
	}
	return out
}
