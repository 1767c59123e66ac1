package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore is an optional persistent key/value table for rendered sign
// classifications (spec §2's cache row doesn't mandate persistence, and
// the teacher already wires modernc.org/sqlite for its own "db" virtual
// package -- this gives the dependency a second, decorator-shaped home).
//
// Classify does not consult or fill this store: the sign cache is the
// in-memory sync.Map (signCache in cache.go) only. "checkmate-bench
// -persist" opens a store, which creates its schema, and closes it again
// without writing classifications to it.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) a classification-cache table
// at dsn, e.g. "file:checkmate.db" or ":memory:" for tests.
func OpenSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite cache: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS sign_cache (
	hint_key   TEXT PRIMARY KEY,
	sign       TEXT NOT NULL,
	rendered   TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing sqlite cache schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Put persists a rendered classification for key (typically a hint's
// String() representation paired with its Sign name).
func (s *SQLiteStore) Put(key, sign, rendered string) error {
	_, err := s.db.Exec(
		`INSERT INTO sign_cache (hint_key, sign, rendered) VALUES (?, ?, ?)
		 ON CONFLICT(hint_key) DO UPDATE SET sign = excluded.sign, rendered = excluded.rendered`,
		key, sign, rendered,
	)
	return err
}

// Get returns the persisted (sign, rendered) pair for key, if any.
func (s *SQLiteStore) Get(key string) (sign, rendered string, ok bool, err error) {
	row := s.db.QueryRow(`SELECT sign, rendered FROM sign_cache WHERE hint_key = ?`, key)
	err = row.Scan(&sign, &rendered)
	if err == sql.ErrNoRows {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	return sign, rendered, true, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
