package mirror

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// schemaDDL creates the single flat key->value table backing the mirror:
// no history, no tombstone markers — deletions just remove the row.
const schemaDDL = `CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT)`

// SQLiteMirror is a durable backing store backed by a pure-Go sqlite
// database, opened through database/sql.
type SQLiteMirror struct {
	db     *sql.DB
	closed bool
}

// OpenSQLiteMirror opens (creating if necessary) a sqlite database file at
// path and ensures the kv table exists.
func OpenSQLiteMirror(path string) (*SQLiteMirror, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("mirror: open sqlite %q: %w", path, err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("mirror: create schema: %w", err)
	}
	return &SQLiteMirror{db: db}, nil
}

// LoadAll returns every row currently in the kv table.
func (m *SQLiteMirror) LoadAll() (map[string]string, error) {
	rows, err := m.db.Query(`SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("mirror: load_all: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("mirror: load_all scan: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Apply performs the whole batch of upserts and deletions inside a single
// database transaction, so the batch is all-or-nothing from the caller's
// point of view. A no-op once Close has been called.
func (m *SQLiteMirror) Apply(upserts map[string]string, deletions map[string]struct{}) error {
	if m.closed {
		return nil
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("mirror: apply begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op once committed

	for k, v := range upserts {
		if _, err := tx.Exec(`REPLACE INTO kv (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("mirror: apply upsert %q: %w", k, err)
		}
	}
	for k := range deletions {
		if _, err := tx.Exec(`DELETE FROM kv WHERE key = ?`, k); err != nil {
			return fmt.Errorf("mirror: apply delete %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mirror: apply commit: %w", err)
	}
	return nil
}

// Close closes the underlying database handle. Idempotent: a second call
// observes closed already true and returns nil without touching the
// handle again.
func (m *SQLiteMirror) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.db.Close()
}
