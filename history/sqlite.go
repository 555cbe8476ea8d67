package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/hupe1980/meshkit/core"
)

// DefaultSQLitePath is the database used by the sqlite backend when no DSN is configured.
const DefaultSQLitePath = "tmp/history.db"

// SQLiteStore is a durable HistoryStore: the index lives in a SQLite table
// and survives restarts. Records are stored as JSON text, so values come back
// with JSON types (numbers as float64, arrays as []any).
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens or creates the database at path, creating parent
// directories as needed. ":memory:" opens a private in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, &core.IOError{Op: "mkdir", Path: path, Err: err}
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &core.IOError{Op: "open", Path: path, Err: err}
	}
	// A single connection serializes writers and keeps ":memory:" on one database.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, &core.IOError{Op: "migrate", Path: path, Err: err}
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS history (
		key        TEXT PRIMARY KEY,
		record     TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	return err
}

// Store upserts record under key.
func (s *SQLiteStore) Store(key string, record core.Record) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if record == nil {
		record = core.Record{}
	}
	b, err := json.Marshal(record)
	if err != nil {
		return core.InvalidArgumentf("record is not JSON encodable: %v", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO history (key, record, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		key, string(b), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return &core.IOError{Op: "store", Path: s.path, Err: err}
	}
	return nil
}

// Retrieve returns the decoded record for key, or an empty record if absent.
func (s *SQLiteStore) Retrieve(key string) (core.Record, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	var raw string
	err := s.db.QueryRow(`SELECT record FROM history WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, nil
	}
	if err != nil {
		return nil, &core.IOError{Op: "retrieve", Path: s.path, Err: err}
	}
	rec := core.Record{}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, &core.IOError{Op: "decode", Path: s.path, Err: fmt.Errorf("key %q: %w", key, err)}
	}
	return rec, nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *SQLiteStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM history WHERE key = ?`, key); err != nil {
		return &core.IOError{Op: "delete", Path: s.path, Err: err}
	}
	return nil
}

// Keys returns the stored keys in ascending order.
func (s *SQLiteStore) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM history ORDER BY key`)
	if err != nil {
		return nil, &core.IOError{Op: "keys", Path: s.path, Err: err}
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, &core.IOError{Op: "keys", Path: s.path, Err: err}
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.IOError{Op: "keys", Path: s.path, Err: err}
	}
	return keys, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
