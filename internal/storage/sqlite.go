package storage

import (
	"database/sql"
)

// SQLiteStore persists blobs in the kv_entries table
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db: db,
	}
}

// Get returns the value stored under key, and whether one exists
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value string
	err := s.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Set stores value under key, overwriting any previous value
func (s *SQLiteStore) Set(key, value string) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.Exec(query, key, value); err != nil {
		return &WriteError{Key: key, Err: err}
	}

	return nil
}

// Delete removes the value stored under key, no-op if absent
func (s *SQLiteStore) Delete(key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := s.db.Exec(query, key); err != nil {
		return &WriteError{Key: key, Err: err}
	}

	return nil
}
