package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Rows is one result set: ordered column names and positional value
// tuples, plus the affected-row count for writes. Values carry whatever
// scalar types the driver produced, with []byte flattened to string.
type Rows struct {
	Columns  []string
	Values   [][]any
	Affected int64
}

// Empty reports whether the result carries no rows.
func (r *Rows) Empty() bool { return r == nil || len(r.Values) == 0 }

// Executor runs exactly one statement per call against the store. Each
// call acquires its own connection, executes, commits, and releases the
// connection on every exit path — no handle is held across calls. Every
// failure is logged with the statement and parameters and surfaced as
// an ErrExecution; the process never crashes on a store fault.
type Executor struct {
	db  *sql.DB
	log *slog.Logger
}

// NewExecutor creates an Executor over an open store.
func NewExecutor(db *sql.DB, log *slog.Logger) *Executor {
	return &Executor{db: db, log: log}
}

// Query runs a read statement and returns all of its rows. A failed
// read yields an ErrExecution; callers treat it as "no rows".
func (e *Executor) Query(ctx context.Context, stmt string, args ...any) (*Rows, error) {
	qid := shortID()
	e.log.Debug("running query", "qid", qid, "stmt", stmt, "args", args)

	conn, err := e.db.Conn(ctx)
	if err != nil {
		return nil, e.fail(qid, stmt, args, err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, e.fail(qid, stmt, args, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, e.fail(qid, stmt, args, err)
	}

	result := &Rows{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, e.fail(qid, stmt, args, err)
		}
		for i, v := range values {
			values[i] = formatValue(v)
		}
		result.Values = append(result.Values, values)
	}
	if err := rows.Err(); err != nil {
		return nil, e.fail(qid, stmt, args, err)
	}

	e.log.Info("query ok", "qid", qid, "rows", len(result.Values))
	return result, nil
}

// Exec runs a write or DDL statement and returns the affected-row
// count. A failed write yields an ErrExecution; callers treat it as
// "not applied". The statement is committed on success (the store runs
// in autocommit under the one-statement-per-call discipline).
func (e *Executor) Exec(ctx context.Context, stmt string, args ...any) (*Rows, error) {
	qid := shortID()
	e.log.Debug("running statement", "qid", qid, "stmt", stmt, "args", args)

	conn, err := e.db.Conn(ctx)
	if err != nil {
		return nil, e.fail(qid, stmt, args, err)
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, e.fail(qid, stmt, args, err)
	}
	affected, _ := result.RowsAffected()

	e.log.Info("statement ok", "qid", qid, "affected", affected)
	return &Rows{Affected: affected}, nil
}

func (e *Executor) fail(qid, stmt string, args []any, err error) error {
	e.log.Error("statement failed", "qid", qid, "stmt", stmt, "args", args, "err", err)
	return fmt.Errorf("%w: %v", ErrExecution, err)
}

// shortID returns a correlation id linking the debug line for a
// statement with its outcome line.
func shortID() string {
	return uuid.NewString()[:8]
}

// formatValue flattens driver-specific scalars for storage in a Rows.
func formatValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return val
	}
}
