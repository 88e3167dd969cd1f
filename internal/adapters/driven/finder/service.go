package finder

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
	"github.com/custodia-labs/finderbridge/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.DataAccessService = (*Service)(nil)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Service is a stateful session against the well database.
// It is safe for concurrent use; queries are serialised.
type Service struct {
	client domain.ClientSettings
	probe  func(ctx context.Context) (domain.WordSize, error)

	mu         sync.Mutex
	cfg        domain.SessionConfig
	configured bool
	db         *sql.DB
}

// NewService creates an unconfigured service.
// client describes how to find out the database client architecture.
func NewService(client domain.ClientSettings) *Service {
	s := &Service{client: client}
	s.probe = s.probeClient
	return s
}

// Configure validates and stores the session parameters for the next Open.
func (s *Service) Configure(_ context.Context, cfg domain.SessionConfig) error {
	if cfg.Connection.Driver == "" {
		cfg.Connection.Driver = domain.DefaultDriver
	}
	if cfg.Connection.Project == "" {
		cfg.Connection.Project = domain.DefaultProject
	}
	if cfg.LogTable == "" {
		cfg.LogTable = domain.DefaultLogTable
	}
	if cfg.Connection.DataSource == "" {
		return fmt.Errorf("%w: data source is required", domain.ErrInvalidInput)
	}
	if err := validateIdentifier("project", cfg.Connection.Project); err != nil {
		return err
	}
	if err := validateIdentifier("log table", cfg.LogTable); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.configured = true
	return nil
}

// Open connects to the configured database.
// Opening an already open session reconnects.
func (s *Service) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.configured {
		return domain.ErrNotConfigured
	}
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}

	conn := s.cfg.Connection
	db, err := sql.Open(conn.Driver, dataSourceName(conn))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("connecting to database: %w", err)
	}

	s.db = db
	logger.Debug("Opened %s session on project %s", conn.Driver, conn.Project)
	return nil
}

// Close disconnects. Closing a session that is not open is a no-op.
func (s *Service) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Project returns the configured project schema.
func (s *Service) Project(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return "", domain.ErrSessionNotOpen
	}
	return s.cfg.Connection.Project, nil
}

// ServerVersion returns the database server banner.
func (s *Service) ServerVersion(ctx context.Context) (string, error) {
	db, cfg, err := s.session()
	if err != nil {
		return "", err
	}

	query := "SELECT version()"
	prefix := ""
	if cfg.Connection.Driver == domain.DefaultDriver {
		query = "SELECT sqlite_version()"
		prefix = "SQLite "
	}

	var version string
	if err := db.QueryRowContext(ctx, query).Scan(&version); err != nil {
		return "", fmt.Errorf("querying server version: %w", err)
	}
	return prefix + version, nil
}

// session returns the open handle and the configuration it was opened with.
func (s *Service) session() (*sql.DB, domain.SessionConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, domain.SessionConfig{}, domain.ErrSessionNotOpen
	}
	return s.db, s.cfg, nil
}

// dataSourceName adds credentials to drivers that take them in the DSN.
// The SQLite driver uses the data source as a file path or URI as is.
func dataSourceName(conn domain.ConnectionParams) string {
	if conn.Driver == domain.DefaultDriver || conn.User == "" {
		return conn.DataSource
	}
	return fmt.Sprintf("%s:%s@%s", conn.User, conn.Password, conn.DataSource)
}

func validateIdentifier(what, name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %s %q is not a valid identifier", domain.ErrInvalidInput, what, name)
	}
	return nil
}

// filtersWells reports whether a well filter restricts the result.
func filtersWells(pattern string) bool {
	return pattern != "" && pattern != "%"
}
