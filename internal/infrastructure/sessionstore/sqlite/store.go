// Package sqlite provides a SQLite implementation of the SessionStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/bioid/internal/infrastructure/config"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Store implements ports.SessionStore using SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the SQLite database at cfg.Path, creating its directory.
func NewStore(cfg config.SessionConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	if cfg.Path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("creating session directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Each connection to :memory: is its own database; one connection keeps
	// the slot visible to every caller.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Store{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Session slots (one serialized snapshot per key)
	CREATE TABLE IF NOT EXISTS sessions (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Save writes data to the slot, replacing any previous snapshot.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO sessions (key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, data, timeNow().UTC()); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Load returns the slot contents, or nil if the slot is empty.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE key = ?`, key)

	var data []byte
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// UpdatedAt returns when the slot was last written, or the zero time for an
// empty slot.
func (s *Store) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	row := s.db.QueryRowContext(ctx, `SELECT updated_at FROM sessions WHERE key = ?`, key)

	var updated time.Time
	err := row.Scan(&updated)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("scanning session: %w", err)
	}
	return updated, nil
}

// Delete removes the slot. Deleting an empty slot is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
