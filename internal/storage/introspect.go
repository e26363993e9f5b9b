package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Introspector discovers a table's current column names from the live
// store catalog. The registry only describes creation-time shape; every
// generic operation re-derives the live column set through here, with
// no caching, so an externally migrated table is still seen correctly.
type Introspector struct {
	db     *sql.DB
	driver string
	log    *slog.Logger
}

// NewIntrospector creates an Introspector for the given driver's
// catalog dialect.
func NewIntrospector(db *sql.DB, driver string, log *slog.Logger) *Introspector {
	if driver == "" {
		driver = DriverSQLite
	}
	return &Introspector{db: db, driver: driver, log: log}
}

// Columns returns the ordered column names of a table. A table with no
// discoverable columns does not exist as far as callers are concerned;
// that and an unreachable store both yield an ErrSchemaLookup.
func (in *Introspector) Columns(ctx context.Context, table string) ([]string, error) {
	var (
		cols []string
		err  error
	)
	switch in.driver {
	case DriverSQLite:
		cols, err = in.sqliteColumns(ctx, table)
	default:
		cols, err = in.infoSchemaColumns(ctx, table)
	}
	if err != nil {
		in.log.Error("introspection failed", "table", table, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrSchemaLookup, err)
	}
	if len(cols) == 0 {
		in.log.Warn("table has no columns", "table", table)
		return nil, fmt.Errorf("%w: table %s not found", ErrSchemaLookup, table)
	}
	return cols, nil
}

func (in *Introspector) sqliteColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := in.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info('%s')", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// infoSchemaColumns works for MySQL and Postgres via INFORMATION_SCHEMA.
func (in *Introspector) infoSchemaColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := in.db.QueryContext(ctx,
		`SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS
		 WHERE TABLE_NAME = ? ORDER BY ORDINAL_POSITION`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}
