package finder

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

const fixtureSchema = `
CREATE TABLE NODES (NODE_ID INTEGER PRIMARY KEY, NODE_X REAL, NODE_Y REAL);
CREATE TABLE WELL_HDR (
	UWI TEXT PRIMARY KEY, WELL_NAME TEXT, WELL_NUMBER TEXT, CLASS TEXT, OPERATOR TEXT,
	SPUD_DATE DATE, FIN_DRILL DATE, DRILLERS_TD REAL, TVD REAL, ELEVATION REAL, NODE_ID INTEGER
);
CREATE TABLE WELL_DIR_SRVY_HDR (
	UWI TEXT, SOURCE TEXT, DIR_SRVY_ID INTEGER, PREFERRED_FLAG TEXT,
	SURVEY_DATE DATE, REMARKS TEXT, NORTH_REFERENCE TEXT, DECLINATION_CORRECTION REAL
);
CREATE TABLE WELL_DIR_SRVY_PTS (
	UWI TEXT, SOURCE TEXT, DIR_SRVY_ID INTEGER, MD REAL, DEVIATION_ANGLE REAL, AZIMUTH REAL
);
CREATE TABLE WELL_LOG_RESULT_LAYER (
	UWI TEXT, LAYER_NAME TEXT, TOP REAL, BASE REAL,
	SPI REAL, RT REAL, PHIE REAL, KINT REAL, SW REAL, VCL REAL, SAT_CODE INTEGER, TIP INTEGER
);
CREATE TABLE WELL_FOND (UWI TEXT, DATE_D DATE, TYPE INTEGER, STATE INTEGER, METHOD INTEGER);
CREATE TABLE TYPE_DESC (TYPE INTEGER, NAME TEXT);
CREATE TABLE STATE_DESC (STATE INTEGER, NAME TEXT);
CREATE TABLE METHOD_DESC (METHOD INTEGER, NAME TEXT);

INSERT INTO NODES VALUES (1, 1000.5, 2000.5), (2, 1500.0, 2500.0), (3, 0, 0);

INSERT INTO WELL_HDR VALUES
	('10001040100', 'Well 401', 'C1', 'EXPLORATORY', 'ACME', '2020-01-15', '2020-03-01', 2500, 2400, 120.5, 1),
	('10001040202', 'Well 402', 'C1', 'PRODUCTION', NULL, NULL, NULL, NULL, NULL, NULL, 2),
	('20001050000', 'No survey', 'C2', 'PRODUCTION', 'ACME', NULL, NULL, NULL, NULL, NULL, 3);

INSERT INTO WELL_DIR_SRVY_HDR VALUES
	('10001040100', 'GYRO', 1, 'Y', '2020-03-05', 'Gyro tool', 'M', 10.0),
	('10001040100', 'MWD', 2, 'N', '2020-02-01', 'MWD tool', 'T', 0),
	('10001040202', 'MWD', 1, 'Y', NULL, NULL, 'T', NULL),
	('20001050000', 'MWD', 1, 'N', NULL, NULL, 'T', NULL);

INSERT INTO WELL_DIR_SRVY_PTS VALUES
	('10001040100', 'GYRO', 1, 100, 10, 90),
	('10001040100', 'GYRO', 1, 0, 0, 0),
	('10001040100', 'MWD', 2, 50, 45, 45),
	('10001040202', 'MWD', 1, 0, 0, 0),
	('10001040202', 'MWD', 1, 10, 200, 0);

INSERT INTO WELL_LOG_RESULT_LAYER VALUES
	('10001040100', 'K1', 1000.2, 1000.5, 1, 2, 0.2, 10, 0.5, 0.1, 3, 1),
	('10001040100', 'K1', 1000.0, 1000.2, 1, NULL, 0.2, 10, 0.5, 0.1, NULL, 1),
	('10001040100', 'GAP1', 1000.5, 1001.0, NULL, NULL, NULL, NULL, NULL, NULL, NULL, NULL),
	('10001040100', 'J2', 1001.0, 1002.0, 1, 4, 0.3, 20, 0.4, 0.2, 2, 2),
	('10001040100', 'UNKNOWN', 1002.0, 1003.0, 1, 4, 0.3, 20, 0.4, 0.2, 2, 2),
	('10001040202', 'K1', 900.0, 901.0, 1, 5, 0.1, 5, 0.9, 0.3, 1, 1);

INSERT INTO WELL_FOND VALUES
	('10001040100', '2021-01-01', 11, 1, 1),
	('10001040100', '2022-06-01', 20, 2, 2),
	('10001040202', '2021-05-05', 11, 1, 2),
	('20001050000', '2021-05-05', 11, 1, 1);

INSERT INTO TYPE_DESC VALUES (11, 'Production'), (20, 'Injection');
INSERT INTO STATE_DESC VALUES (1, 'Active'), (2, 'Idle');
INSERT INTO METHOD_DESC VALUES (1, 'Flowing'), (2, 'Pump');
`

// newFixtureDB writes the fixture schema into a temporary SQLite file.
func newFixtureDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "finder.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range strings.Split(fixtureSchema, ";\n") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return path
}

func fixtureSession(path string) domain.SessionConfig {
	s := domain.DefaultSettings().Session
	s.Connection.DataSource = path
	return s
}

// openFixture returns an open service over a fresh fixture database.
func openFixture(t *testing.T) *Service {
	t.Helper()

	ctx := context.Background()
	svc := NewService(domain.ClientSettings{})
	require.NoError(t, svc.Configure(ctx, fixtureSession(newFixtureDB(t))))
	require.NoError(t, svc.Open(ctx))
	t.Cleanup(func() { _ = svc.Close(ctx) })
	return svc
}
