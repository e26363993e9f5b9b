// Package storage owns the connection to the relational store and the
// two primitives every generic operation is built from: single-statement
// execution and live schema introspection.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Store-level failure classes. Callers classify with errors.Is and turn
// both into user-facing messages; neither ever crashes the process.
var (
	// ErrExecution marks a statement that failed at the store:
	// constraint violation, malformed SQL, unreachable store.
	ErrExecution = errors.New("statement execution failed")

	// ErrSchemaLookup marks a table whose columns could not be
	// discovered, usually because it does not exist.
	ErrSchemaLookup = errors.New("schema lookup failed")
)

// Config describes how to reach the store. Path is used by the sqlite
// driver; the network fields by mysql and postgres.
type Config struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string
}

// Open opens a connection pool for the configured driver. The sqlite
// driver is the default.
func Open(cfg Config) (*sql.DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	var dsn string
	switch driver {
	case DriverSQLite:
		dsn = buildSQLiteDSN(cfg)
	case DriverMySQL:
		dsn = buildMySQLDSN(cfg)
	case DriverPostgres:
		dsn = buildPostgresDSN(cfg)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite only supports one writer — a single connection
		// prevents SQLITE_BUSY under the per-call discipline.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(10 * time.Minute)
	}

	return db, nil
}
