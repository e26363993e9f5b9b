// Package seed performs the one-time bootstrap: creating every
// registered table and loading its seed file, plus the teardown
// operations (drop table, remove store file).
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"flightdb/internal/domain"
	"flightdb/internal/query"
	"flightdb/internal/storage"
)

// Seeder creates registered tables and loads their seed files.
type Seeder struct {
	reg  *domain.Registry
	exec *storage.Executor
	dir  string // seed file directory
	log  *slog.Logger
}

// NewSeeder wires a Seeder to the registry, the executor, and the seed
// directory.
func NewSeeder(reg *domain.Registry, exec *storage.Executor, dir string, log *slog.Logger) *Seeder {
	return &Seeder{reg: reg, exec: exec, dir: dir, log: log}
}

// BootstrapIfAbsent runs Bootstrap only when the store file does not
// exist yet, and reports whether it ran. File presence is the bootstrap
// gate: an existing store is never re-seeded.
func (s *Seeder) BootstrapIfAbsent(ctx context.Context, storePath string) (bool, error) {
	if _, err := os.Stat(storePath); err == nil {
		s.log.Info("store file exists, skipping bootstrap", "path", storePath)
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat store file: %w", err)
	}
	return true, s.Bootstrap(ctx)
}

// Bootstrap creates every registered table and loads its seed rows.
// A failure on one table is logged and does not abort the others;
// all failures are joined into the returned error.
func (s *Seeder) Bootstrap(ctx context.Context) error {
	var errs []error
	for _, name := range s.reg.Names() {
		if err := s.CreateTable(ctx, name); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.Populate(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CreateTable runs the entity's DDL. The DDL uses IF NOT EXISTS, so
// creating an existing table is a no-op.
func (s *Seeder) CreateTable(ctx context.Context, entity string) error {
	e, ok := s.reg.Lookup(entity)
	if !ok {
		s.log.Error("no DDL registered for table", "entity", entity)
		return fmt.Errorf("%w: no DDL for entity %q", query.ErrValidation, entity)
	}
	if _, err := s.exec.Exec(ctx, e.DDL); err != nil {
		return fmt.Errorf("create table %s: %w", e.Table, err)
	}
	s.log.Info("table created", "table", e.Table)
	return nil
}

// Populate loads the entity's seed file: a delimited file whose first
// line is the lower-cased column header and each further line one
// value row matched positionally to that header. Each row becomes a
// record fed through the insert builder. A malformed file aborts
// population for this table only.
func (s *Seeder) Populate(ctx context.Context, entity string) error {
	e, ok := s.reg.Lookup(entity)
	if !ok {
		return fmt.Errorf("%w: unknown entity %q", query.ErrValidation, entity)
	}

	path := filepath.Join(s.dir, e.SeedFile)
	f, err := os.Open(path)
	if err != nil {
		s.log.Error("cannot open seed file", "entity", e.Name, "path", path, "err", err)
		return fmt.Errorf("open seed file for %s: %w", e.Name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		s.log.Error("malformed seed file", "entity", e.Name, "path", path, "err", err)
		return fmt.Errorf("parse seed file for %s: %w", e.Name, err)
	}
	if len(rows) == 0 {
		s.log.Error("empty seed file", "entity", e.Name, "path", path)
		return fmt.Errorf("seed file for %s is empty", e.Name)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, row := range rows[1:] {
		rec := domain.NewRecord(e.Name)
		for i, h := range header {
			if i >= len(row) {
				continue
			}
			// A blank cell means "no value": the column is left out so
			// nullable columns stay NULL.
			if v := strings.TrimSpace(row[i]); v != "" {
				rec.Set(h, domain.Coerce(v))
			}
		}
		if rec.Len() == 0 {
			continue
		}
		stmt, err := query.Insert(e.Table, rec.Columns(), rec.Values())
		if err != nil {
			return fmt.Errorf("seed row for %s: %w", e.Name, err)
		}
		if _, err := s.exec.Exec(ctx, stmt.SQL, stmt.Args...); err != nil {
			return fmt.Errorf("insert seed row for %s: %w", e.Name, err)
		}
	}

	s.log.Info("table populated", "table", e.Table, "rows", len(rows)-1)
	return nil
}

// DropTable removes an entity's table if it exists.
func (s *Seeder) DropTable(ctx context.Context, entity string) error {
	table := s.reg.TableName(entity)
	stmt := query.DropTable(table)
	if _, err := s.exec.Exec(ctx, stmt.SQL); err != nil {
		return err
	}
	s.log.Info("table dropped", "table", table)
	return nil
}
