package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory portfolio store.
const MemoryPath = ":memory:"

// busyTimeoutMs bounds how long a connection waits on a locked database
// before returning SQLITE_BUSY.
const busyTimeoutMs = 5000

// OpenDB opens the portfolio store at path and brings its schema up to date.
// File stores run in WAL mode so snapshot reads proceed while feedback and
// decision writes commit. An in-memory store is pinned to one connection so
// every caller sees the same schema.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if memory {
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// dsn applies per-connection pragmas. foreign_keys must be set on every
// pooled connection for risk and outcome cascades to fire.
func dsn(path string) string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", path, busyTimeoutMs)
}
