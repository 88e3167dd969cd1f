package finder

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// ListWellHeaders returns every well with a preferred directional survey
// that matches the configured well filter, ordered by UWI.
func (s *Service) ListWellHeaders(ctx context.Context) ([]domain.WellHeader, error) {
	db, cfg, err := s.session()
	if err != nil {
		return nil, err
	}

	p := cfg.Connection.Project
	query := fmt.Sprintf(`SELECT WH.UWI, WH.WELL_NAME, WH.WELL_NUMBER, WH.CLASS, WH.OPERATOR,
		WH.SPUD_DATE, WH.FIN_DRILL, WH.DRILLERS_TD, WH.TVD, WH.ELEVATION, N.NODE_X, N.NODE_Y,
		WDSH.SURVEY_DATE, WDSH.REMARKS, WDSH.NORTH_REFERENCE, WDSH.DECLINATION_CORRECTION
		FROM %[1]s.WELL_HDR WH
		JOIN %[1]s.WELL_DIR_SRVY_HDR WDSH ON WH.UWI = WDSH.UWI
		JOIN %[1]s.NODES N ON WH.NODE_ID = N.NODE_ID
		WHERE WDSH.PREFERRED_FLAG = 'Y'`, p)

	var args []any
	if filtersWells(cfg.WellFilter) {
		query += " AND WH.UWI LIKE ?"
		args = append(args, cfg.WellFilter)
	}
	query += " ORDER BY WH.UWI"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying well headers: %w", err)
	}
	defer rows.Close()

	var headers []domain.WellHeader
	for rows.Next() {
		var (
			uwi, name, number, class, operator     sql.NullString
			spud, finish, surveyDate               sql.NullString
			bottomMD, bottomTVD, elevation, nx, ny sql.NullFloat64
			tool, north                            sql.NullString
			correction                             sql.NullFloat64
		)
		if err := rows.Scan(&uwi, &name, &number, &class, &operator,
			&spud, &finish, &bottomMD, &bottomTVD, &elevation, &nx, &ny,
			&surveyDate, &tool, &north, &correction); err != nil {
			return nil, fmt.Errorf("scanning well header: %w", err)
		}

		h := domain.WellHeader{
			UWI:            stringOrEmpty(uwi),
			Name:           stringOrEmpty(name),
			Cluster:        stringOrEmpty(number),
			Class:          stringOrEmpty(class),
			Operator:       stringOrEmpty(operator),
			SpudDate:       timeOrZero(spud),
			FinishDate:     timeOrZero(finish),
			BottomMD:       floatOrNaN(bottomMD),
			BottomTVD:      floatOrNaN(bottomTVD),
			Elevation:      floatOrNaN(elevation),
			X:              floatOrNaN(nx),
			Y:              floatOrNaN(ny),
			SurveyDate:     timeOrZero(surveyDate),
			SurveyTool:     stringOrEmpty(tool),
			NorthReference: stringOrEmpty(north),
		}
		mc := floatOrNaN(correction)
		if math.IsNaN(mc) {
			mc = 0
		}
		h.MagneticCorrection = degreesToRadians(mc)

		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading well headers: %w", err)
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: wells", domain.ErrNotFound)
	}
	return headers, nil
}

// GetDirectionalSurvey returns the preferred survey of a well ordered by MD,
// with angles converted to radians.
func (s *Service) GetDirectionalSurvey(ctx context.Context, uwi string) ([]domain.TrajectoryPoint, error) {
	db, cfg, err := s.session()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT MD, DEVIATION_ANGLE, AZIMUTH
		FROM %[1]s.WELL_DIR_SRVY_PTS
		WHERE UWI = ? AND (UWI, SOURCE, DIR_SRVY_ID) IN
			(SELECT UWI, SOURCE, DIR_SRVY_ID FROM %[1]s.WELL_DIR_SRVY_HDR
			 WHERE UWI = ? AND PREFERRED_FLAG = 'Y')
		ORDER BY MD`, cfg.Connection.Project)

	rows, err := db.QueryContext(ctx, query, uwi, uwi)
	if err != nil {
		return nil, fmt.Errorf("querying directional survey: %w", err)
	}
	defer rows.Close()

	points := []domain.TrajectoryPoint{}
	for rows.Next() {
		var md, incl, azim sql.NullFloat64
		if err := rows.Scan(&md, &incl, &azim); err != nil {
			return nil, fmt.Errorf("scanning survey station: %w", err)
		}

		p := domain.TrajectoryPoint{
			MD:          floatOrNaN(md),
			Inclination: degreesToRadians(floatOrNaN(incl)),
			Azimuth:     degreesToRadians(floatOrNaN(azim)),
		}
		if p.Inclination < 0 || p.Inclination > math.Pi {
			return nil, fmt.Errorf("%w: inclination at MD %g not in range 0...180", domain.ErrSurveyOutOfRange, p.MD)
		}
		if p.Azimuth < -2*math.Pi || p.Azimuth > 2*math.Pi {
			return nil, fmt.Errorf("%w: azimuth at MD %g not in range -360...+360", domain.ErrSurveyOutOfRange, p.MD)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading directional survey: %w", err)
	}
	return points, nil
}

// GetLogIntervals returns the interval rows of a well per requested column,
// ordered by ascending top. Every requested column is present in the result.
func (s *Service) GetLogIntervals(ctx context.Context, uwi string, columns map[string]domain.LogKind) (map[string][]domain.IntervalRow, error) {
	db, cfg, err := s.session()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		if err := validateIdentifier("log column", name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	result := make(map[string][]domain.IntervalRow, len(names))
	for _, name := range names {
		result[name] = []domain.IntervalRow{}
	}
	if len(names) == 0 {
		return result, nil
	}

	query := fmt.Sprintf("SELECT TOP, BASE, %s FROM %s.%s WHERE UWI = ? ORDER BY TOP",
		strings.Join(names, ", "), cfg.Connection.Project, cfg.LogTable)

	rows, err := db.QueryContext(ctx, query, uwi)
	if err != nil {
		return nil, fmt.Errorf("querying well logs: %w", err)
	}
	defer rows.Close()

	floats := make([]sql.NullFloat64, len(names))
	ints := make([]sql.NullInt32, len(names))
	dest := make([]any, 2+len(names))
	for rows.Next() {
		var top, base sql.NullFloat64
		dest[0], dest[1] = &top, &base
		for i, name := range names {
			if columns[name] == domain.Discrete {
				dest[2+i] = &ints[i]
			} else {
				dest[2+i] = &floats[i]
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning log interval: %w", err)
		}

		for i, name := range names {
			row := domain.IntervalRow{
				Top:   floatOrNaN(top),
				Base:  floatOrNaN(base),
				Float: math.NaN(),
				Int:   domain.NullDiscrete,
			}
			if columns[name] == domain.Discrete {
				row.Int = intOrNull(ints[i])
			} else {
				row.Float = floatOrNaN(floats[i])
			}
			result[name] = append(result[name], row)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading well logs: %w", err)
	}
	return result, nil
}

// GetLatestWellState returns the most recent state record of each listed well.
func (s *Service) GetLatestWellState(ctx context.Context, uwis []string) ([]domain.WellState, error) {
	db, cfg, err := s.session()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT WF.UWI, WF.DATE_D, WF.TYPE, TD.NAME, WF.STATE, SD.NAME, WF.METHOD, MD.NAME
		FROM %[1]s.WELL_FOND WF
		JOIN %[1]s.TYPE_DESC TD ON WF.TYPE = TD.TYPE
		JOIN %[1]s.STATE_DESC SD ON WF.STATE = SD.STATE
		JOIN %[1]s.METHOD_DESC MD ON WF.METHOD = MD.METHOD
		WHERE (WF.UWI, WF.DATE_D) IN (SELECT UWI, MAX(DATE_D) FROM %[1]s.WELL_FOND GROUP BY UWI)`,
		cfg.Connection.Project)

	var args []any
	if filtersWells(cfg.WellFilter) {
		query += " AND WF.UWI LIKE ?"
		args = append(args, cfg.WellFilter)
	}
	query += " ORDER BY WF.UWI"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying well states: %w", err)
	}
	defer rows.Close()

	wanted := stringSet(uwis)
	var states []domain.WellState
	for rows.Next() {
		var (
			uwi, date                       sql.NullString
			typ, state, method              sql.NullInt32
			typeDesc, stateDesc, methodDesc sql.NullString
		)
		if err := rows.Scan(&uwi, &date, &typ, &typeDesc, &state, &stateDesc, &method, &methodDesc); err != nil {
			return nil, fmt.Errorf("scanning well state: %w", err)
		}
		if _, ok := wanted[stringOrEmpty(uwi)]; !ok {
			continue
		}
		states = append(states, domain.WellState{
			UWI:               stringOrEmpty(uwi),
			Timestamp:         timeOrZero(date),
			Type:              intOrNull(typ),
			TypeDescription:   stringOrEmpty(typeDesc),
			State:             intOrNull(state),
			StateDescription:  stringOrEmpty(stateDesc),
			Method:            intOrNull(method),
			MethodDescription: stringOrEmpty(methodDesc),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading well states: %w", err)
	}
	return states, nil
}

// GetFormationTops returns the depth range of each named layer of each
// listed well. Gap layers and the UNKNOWN layer are skipped.
func (s *Service) GetFormationTops(ctx context.Context, uwis []string) ([]domain.FormationTop, error) {
	db, cfg, err := s.session()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT UWI, LAYER_NAME, MIN(TOP) AS MIN_TOP, MAX(BASE) AS MAX_BASE
		FROM %s.%s
		WHERE LAYER_NAME NOT LIKE 'GAP%%' AND LAYER_NAME <> 'UNKNOWN'`,
		cfg.Connection.Project, cfg.LogTable)

	var args []any
	if filtersWells(cfg.WellFilter) {
		query += " AND UWI LIKE ?"
		args = append(args, cfg.WellFilter)
	}
	query += " GROUP BY UWI, LAYER_NAME ORDER BY UWI, MIN_TOP"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying well tops: %w", err)
	}
	defer rows.Close()

	wanted := stringSet(uwis)
	var tops []domain.FormationTop
	for rows.Next() {
		var uwi, layer sql.NullString
		var top, base sql.NullFloat64
		if err := rows.Scan(&uwi, &layer, &top, &base); err != nil {
			return nil, fmt.Errorf("scanning well top: %w", err)
		}
		if _, ok := wanted[stringOrEmpty(uwi)]; !ok {
			continue
		}
		tops = append(tops, domain.FormationTop{
			UWI:   stringOrEmpty(uwi),
			Layer: stringOrEmpty(layer),
			Top:   floatOrNaN(top),
			Base:  floatOrNaN(base),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading well tops: %w", err)
	}
	return tops, nil
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
