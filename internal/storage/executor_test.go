package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"flightdb/internal/logging"
	"flightdb/internal/storage"
)

func openTestStore(t *testing.T) (*storage.Executor, *storage.Introspector) {
	t.Helper()
	db, err := storage.Open(storage.Config{
		Driver: storage.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "Test.db"),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logging.Discard()
	return storage.NewExecutor(db, log.Logger),
		storage.NewIntrospector(db, storage.DriverSQLite, log.Logger)
}

func TestExecutor_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	exec, _ := openTestStore(t)

	if _, err := exec.Exec(ctx, `CREATE TABLE things (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, size INTEGER)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	res, err := exec.Exec(ctx, `INSERT INTO things (name, size) VALUES (?, ?)`, "widget", int64(3))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if res.Affected != 1 {
		t.Errorf("affected = %d, want 1", res.Affected)
	}

	rows, err := exec.Query(ctx, `SELECT * FROM things WHERE 1=1`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows.Columns) != 3 || rows.Columns[1] != "name" {
		t.Errorf("columns = %v", rows.Columns)
	}
	if len(rows.Values) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows.Values))
	}
	row := rows.Values[0]
	if row[1] != "widget" || row[2] != int64(3) {
		t.Errorf("row = %v", row)
	}
}

func TestExecutor_FailureIsExecutionError(t *testing.T) {
	ctx := context.Background()
	exec, _ := openTestStore(t)

	if _, err := exec.Query(ctx, `SELECT * FROM nope`); !errors.Is(err, storage.ErrExecution) {
		t.Errorf("failed read: got %v, want ErrExecution", err)
	}
	if _, err := exec.Exec(ctx, `NOT EVEN SQL`); !errors.Is(err, storage.ErrExecution) {
		t.Errorf("failed write: got %v, want ErrExecution", err)
	}
}

func TestExecutor_WriteAgainstMissingTable(t *testing.T) {
	ctx := context.Background()
	exec, _ := openTestStore(t)

	// A failed write means "not applied": the caller sees the error
	// class, never a crash.
	_, err := exec.Exec(ctx, `INSERT INTO nope (a) VALUES (?)`, 1)
	if !errors.Is(err, storage.ErrExecution) {
		t.Errorf("got %v, want ErrExecution", err)
	}
}

func TestIntrospector_Columns(t *testing.T) {
	ctx := context.Background()
	exec, intro := openTestStore(t)

	if _, err := exec.Exec(ctx, `CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT, size INTEGER)`); err != nil {
		t.Fatal(err)
	}

	cols, err := intro.Columns(ctx, "things")
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	want := []string{"id", "name", "size"}
	if len(cols) != len(want) {
		t.Fatalf("got %v, want %v", cols, want)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("cols[%d] = %q, want %q", i, cols[i], want[i])
		}
	}
}

func TestIntrospector_MissingTable(t *testing.T) {
	ctx := context.Background()
	_, intro := openTestStore(t)

	cols, err := intro.Columns(ctx, "Nonexistent")
	if !errors.Is(err, storage.ErrSchemaLookup) {
		t.Errorf("got %v, want ErrSchemaLookup", err)
	}
	if len(cols) != 0 {
		t.Errorf("missing table returned columns: %v", cols)
	}
}
