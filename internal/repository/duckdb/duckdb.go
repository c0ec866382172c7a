package duckdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb/v2"
	"go.uber.org/zap"

	"github.com/crashstats-service/internal/config"
	apperrors "github.com/crashstats-service/internal/pkg/errors"
)

// DB wraps the read-only DuckDB crash dataset. The file is only ever written
// by the offline ETL step, so concurrent read sessions need no locking.
type DB struct {
	*sqlx.DB
	extensionDir string
	logger       *zap.Logger
}

func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := cfg.Path + "?access_mode=read_only"

	db, err := sqlx.Connect("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb database: %w", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping duckdb database: %w", err)
	}

	logger.Info("DuckDB opened",
		zap.String("path", cfg.Path),
		zap.Int("max_conns", cfg.MaxConns),
	)

	return &DB{DB: db, extensionDir: cfg.ExtensionDir, logger: logger}, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing DuckDB database")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest creates a DB instance for testing with provided database and logger
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:     sqlxDB,
		logger: logger,
	}
}

// Session is one scoped unit of work: a single pooled connection with the
// spatial extension guaranteed loaded before any spatial predicate runs.
// The loaded flag lives on the session handle, not in package state.
type Session struct {
	conn          *sqlx.Conn
	extensionDir  string
	spatialLoaded bool
	spatialErr    error
	logger        *zap.Logger
}

// Acquire checks a connection out of the pool. Callers must Close the
// session on every exit path.
func (db *DB) Acquire(ctx context.Context) (*Session, error) {
	conn, err := db.DB.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire duckdb connection: %w", err)
	}
	return &Session{
		conn:         conn,
		extensionDir: db.extensionDir,
		logger:       db.logger,
	}, nil
}

func (s *Session) Close() error {
	return s.conn.Close()
}

// ensureSpatial loads the spatial extension exactly once per session,
// falling back to install-then-load on a fresh environment. A failed load is
// fatal for the session: every later query fails without retrying.
func (s *Session) ensureSpatial(ctx context.Context) error {
	if s.spatialLoaded {
		return nil
	}
	if s.spatialErr != nil {
		return s.spatialErr
	}

	if s.extensionDir != "" {
		// Serverless hosts may mount a read-only home directory; point the
		// extension cache somewhere writable. Operator config, not user data.
		escaped := strings.ReplaceAll(s.extensionDir, "'", "''")
		if _, err := s.conn.ExecContext(ctx, fmt.Sprintf("SET extension_directory='%s'", escaped)); err != nil {
			s.logger.Warn("Failed to set extension directory", zap.Error(err))
		}
	}

	if _, err := s.conn.ExecContext(ctx, "LOAD spatial"); err != nil {
		// First load fails when the extension was never installed.
		if _, installErr := s.conn.ExecContext(ctx, "INSTALL spatial"); installErr != nil {
			return s.failSpatial(installErr)
		}
		if _, loadErr := s.conn.ExecContext(ctx, "LOAD spatial"); loadErr != nil {
			return s.failSpatial(loadErr)
		}
	}

	s.spatialLoaded = true
	return nil
}

func (s *Session) failSpatial(cause error) error {
	s.logger.Error("Spatial extension unavailable", zap.Error(cause))
	s.spatialErr = apperrors.ErrSpatialCapabilityUnavailable
	return s.spatialErr
}

// Select runs a parameterized multi-row query. All data-dependent values are
// bound, never interpolated into the query text.
func (s *Session) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	if err := s.ensureSpatial(ctx); err != nil {
		return err
	}
	return s.conn.SelectContext(ctx, dest, query, args...)
}

// Get runs a parameterized single-row query.
func (s *Session) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	if err := s.ensureSpatial(ctx); err != nil {
		return err
	}
	return s.conn.GetContext(ctx, dest, query, args...)
}
