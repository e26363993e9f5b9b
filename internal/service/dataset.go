// Package service exposes the generic data operations consumed by the
// interactive layer. Each operation is a single shot: validate input
// against the live schema, build one statement, run it, hand the rows
// back. The service never prompts, loops, or prints; rendering and
// input collection belong to the caller.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"flightdb/internal/domain"
	"flightdb/internal/query"
	"flightdb/internal/storage"
)

// Dataset is the data-access service over the registered entities.
type Dataset struct {
	reg   *domain.Registry
	exec  *storage.Executor
	intro *storage.Introspector
	log   *slog.Logger
}

// NewDataset wires the service to its collaborators.
func NewDataset(reg *domain.Registry, exec *storage.Executor, intro *storage.Introspector, log *slog.Logger) *Dataset {
	return &Dataset{reg: reg, exec: exec, intro: intro, log: log}
}

// Entities returns the registered entity names in registration order.
func (s *Dataset) Entities() []string {
	return s.reg.Names()
}

// ListColumns returns the live column names of an entity's table.
func (s *Dataset) ListColumns(ctx context.Context, entity string) ([]string, error) {
	_, cols, err := s.liveColumns(ctx, entity)
	return cols, err
}

// EditableColumns returns the live columns minus the identity column,
// the set a caller may supply values for.
func (s *Dataset) EditableColumns(ctx context.Context, entity string) ([]string, error) {
	_, cols, err := s.liveColumns(ctx, entity)
	if err != nil {
		return nil, err
	}
	editable := make([]string, 0, len(cols))
	for _, c := range cols {
		if strings.EqualFold(c, "id") {
			continue
		}
		editable = append(editable, c)
	}
	return editable, nil
}

// Insert writes a record and returns the row it became, fetched back
// via the max-id condition. The record's columns must be a subset of
// the table's live editable columns; an empty record is rejected.
func (s *Dataset) Insert(ctx context.Context, rec *domain.Record) (*storage.Rows, error) {
	if rec.Len() == 0 {
		return nil, fmt.Errorf("%w: empty attribute set", query.ErrValidation)
	}
	table, cols, err := s.liveColumns(ctx, rec.Entity())
	if err != nil {
		return nil, err
	}
	for _, c := range rec.Columns() {
		if strings.EqualFold(c, "id") {
			return nil, fmt.Errorf("%w: id is auto-generated", query.ErrValidation)
		}
		if !hasColumn(cols, c) {
			return nil, fmt.Errorf("%w: unknown column %q", query.ErrValidation, c)
		}
	}

	stmt, err := query.Insert(table, rec.Columns(), rec.Values())
	if err != nil {
		return nil, err
	}
	if _, err := s.exec.Exec(ctx, stmt.SQL, stmt.Args...); err != nil {
		return nil, err
	}
	// Second, independent round trip; acceptable with no concurrent
	// writers.
	reselect := query.SelectLastInserted(table)
	return s.exec.Query(ctx, reselect.SQL, reselect.Args...)
}

// SearchAll returns every row of an entity's table.
func (s *Dataset) SearchAll(ctx context.Context, entity string) (*storage.Rows, error) {
	table, _, err := s.liveColumns(ctx, entity)
	if err != nil {
		return nil, err
	}
	stmt := query.SelectAll(table)
	return s.exec.Query(ctx, stmt.SQL, stmt.Args...)
}

// SearchByID returns the row with the given identity, if any.
func (s *Dataset) SearchByID(ctx context.Context, entity string, id int64) (*storage.Rows, error) {
	table, cols, err := s.liveColumns(ctx, entity)
	if err != nil {
		return nil, err
	}
	if !hasColumn(cols, "id") {
		return nil, fmt.Errorf("%w: table %s has no id column", query.ErrValidation, table)
	}
	stmt := query.SelectByID(table, id)
	return s.exec.Query(ctx, stmt.SQL, stmt.Args...)
}

// SearchByColumn returns the rows whose column equals the coerced
// value. The column choice is validated against the live schema before
// it reaches the builder.
func (s *Dataset) SearchByColumn(ctx context.Context, entity, column, value string) (*storage.Rows, error) {
	table, cols, err := s.liveColumns(ctx, entity)
	if err != nil {
		return nil, err
	}
	if !hasColumn(cols, column) {
		return nil, fmt.Errorf("%w: unknown column %q", query.ErrValidation, column)
	}
	stmt := query.SelectWhere(table, strings.ToLower(column), domain.Coerce(value))
	return s.exec.Query(ctx, stmt.SQL, stmt.Args...)
}

// Update sets one column of one row and reports how many rows matched.
// Zero means the id does not exist; that is a normal result, not an
// error.
func (s *Dataset) Update(ctx context.Context, entity string, id int64, column, value string) (int64, error) {
	table, cols, err := s.liveColumns(ctx, entity)
	if err != nil {
		return 0, err
	}
	if !hasColumn(cols, "id") {
		return 0, fmt.Errorf("%w: table %s has no id column", query.ErrValidation, table)
	}
	if strings.EqualFold(column, "id") {
		return 0, fmt.Errorf("%w: cannot update the id column", query.ErrValidation)
	}
	if !hasColumn(cols, column) {
		return 0, fmt.Errorf("%w: unknown column %q", query.ErrValidation, column)
	}

	stmt := query.UpdateByID(table, strings.ToLower(column), domain.Coerce(value), id)
	res, err := s.exec.Exec(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, err
	}
	return res.Affected, nil
}

// Delete removes one row by identity and reports how many rows
// matched. Deleting an absent id is a no-op reporting zero.
func (s *Dataset) Delete(ctx context.Context, entity string, id int64) (int64, error) {
	table, cols, err := s.liveColumns(ctx, entity)
	if err != nil {
		return 0, err
	}
	if !hasColumn(cols, "id") {
		return 0, fmt.Errorf("%w: table %s has no id column", query.ErrValidation, table)
	}
	stmt := query.DeleteByID(table, id)
	res, err := s.exec.Exec(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, err
	}
	return res.Affected, nil
}

// GroupCount partitions an entity's rows by one column and counts each
// group.
func (s *Dataset) GroupCount(ctx context.Context, entity, column string) (*storage.Rows, error) {
	table, cols, err := s.liveColumns(ctx, entity)
	if err != nil {
		return nil, err
	}
	if !hasColumn(cols, column) {
		return nil, fmt.Errorf("%w: unknown column %q", query.ErrValidation, column)
	}
	stmt := query.GroupCount(table, strings.ToLower(column))
	return s.exec.Query(ctx, stmt.SQL, stmt.Args...)
}

// FlightSummary counts flights per group along the chosen axis (pilot,
// source, or destination), applying the caller-supplied condition text
// before grouping.
func (s *Dataset) FlightSummary(ctx context.Context, mode, condition string) (*storage.Rows, error) {
	m, err := query.ParseGroupMode(mode)
	if err != nil {
		return nil, err
	}
	stmt, err := query.FlightSummary(m, condition)
	if err != nil {
		return nil, err
	}
	return s.exec.Query(ctx, stmt.SQL, stmt.Args...)
}

// PilotSchedule lists a pilot's flights with resolved city names,
// ordered by departure time.
func (s *Dataset) PilotSchedule(ctx context.Context, pilotID int64) (*storage.Rows, error) {
	stmt := query.PilotSchedule(pilotID)
	return s.exec.Query(ctx, stmt.SQL, stmt.Args...)
}

// liveColumns resolves an entity to its table name and current column
// set. The column set is re-derived on every call; the creation-time
// registry shape and the store's actual shape may diverge.
func (s *Dataset) liveColumns(ctx context.Context, entity string) (string, []string, error) {
	table := s.reg.TableName(entity)
	cols, err := s.intro.Columns(ctx, table)
	if err != nil {
		return table, nil, err
	}
	return table, cols, nil
}

func hasColumn(cols []string, name string) bool {
	for _, c := range cols {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
