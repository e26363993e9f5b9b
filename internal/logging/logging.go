// Package logging opens the append-only diagnostic log. The log is a
// write-only side channel: the core records every DDL execution, query
// execution, and failure there and never reads it back.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Log couples a slog handle with the file backing it. The handle is
// passed explicitly to the components that log; there is no package
// global.
type Log struct {
	*slog.Logger
	file *os.File
}

// Open appends to the log file at path, creating directories and the
// file as needed. Debug level is always enabled since the log exists
// to capture every statement the store executes.
func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Log{Logger: slog.New(handler), file: f}, nil
}

// Discard returns a logger that drops everything. Used by tests and as
// a fallback when no log file is configured.
func Discard() *Log {
	handler := slog.NewTextHandler(io.Discard, nil)
	return &Log{Logger: slog.New(handler)}
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
