package storage

import (
	_ "modernc.org/sqlite"
)

// buildSQLiteDSN points the sqlite driver at the store file. WAL mode
// with a busy timeout keeps the file usable if something else has it
// open.
func buildSQLiteDSN(cfg Config) string {
	return cfg.Path + "?_journal_mode=WAL&_busy_timeout=5000"
}
