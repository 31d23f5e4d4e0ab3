package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/sync/semaphore"
	_ "modernc.org/sqlite"
)

// Supported SQL drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLConfig holds the SQL store connection settings.
type SQLConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// MaxConcurrentWrites limits writers in flight. SQLite always uses 1.
	MaxConcurrentWrites int64
}

// DefaultSQLConfig returns pool defaults for driver.
func DefaultSQLConfig(driver, dsn string) SQLConfig {
	return SQLConfig{
		Driver:              driver,
		DSN:                 dsn,
		MaxOpenConns:        25,
		MaxIdleConns:        5,
		ConnMaxLifetime:     5 * time.Minute,
		MaxConcurrentWrites: 10,
	}
}

// SQLDB is a SQL connection pool with a write limiter.
type SQLDB struct {
	*sqlx.DB
	driver string
	sem    *semaphore.Weighted
}

// NewSQLDB opens the database and creates the schema when missing.
func NewSQLDB(ctx context.Context, cfg SQLConfig) (*SQLDB, error) {
	if cfg.Driver != DriverSQLite && cfg.Driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	writers := cfg.MaxConcurrentWrites
	if cfg.Driver == DriverSQLite {
		// A single connection keeps ":memory:" databases shared and
		// serialises writers.
		db.SetMaxOpenConns(1)
		writers = 1
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if writers <= 0 {
		writers = 1
	}

	s := &SQLDB{DB: db, driver: cfg.Driver, sem: semaphore.NewWeighted(writers)}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Driver returns the driver name the pool was opened with.
func (db *SQLDB) Driver() string {
	return db.driver
}

// HealthCheck pings the database with a short timeout.
func (db *SQLDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// WithTx runs fn in a transaction while holding a write slot.
func (db *SQLDB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire write slot: %w", err)
	}
	defer db.sem.Release(1)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS pans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    weight_grams REAL NOT NULL CHECK (weight_grams > 0),
    capacity_label TEXT NOT NULL DEFAULT '',
    notes TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    UNIQUE (name, capacity_label)
);`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS pans (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    weight_grams DOUBLE PRECISION NOT NULL CHECK (weight_grams > 0),
    capacity_label TEXT NOT NULL DEFAULT '',
    notes TEXT,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    UNIQUE (name, capacity_label)
);`

func (db *SQLDB) migrate(ctx context.Context) error {
	schema := sqliteSchema
	if db.driver == DriverPostgres {
		schema = postgresSchema
	}
	if _, err := db.ExecContext(ctx, strings.TrimSpace(schema)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
