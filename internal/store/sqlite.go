package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mike-warlet/megarealms/internal/game"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS characters (
  id TEXT PRIMARY KEY,
  payload TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteStore keeps all character snapshots in a single sqlite table, one
// JSON payload per character id.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and ensures
// the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, id string) (*game.Character, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM characters WHERE id = ?`, sanitizeID(id)).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var c game.Character
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return nil, fmt.Errorf("unmarshalling snapshot: %w", err)
	}
	return &c, nil
}

func (s *SQLiteStore) Save(ctx context.Context, id string, c *game.Character) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO characters(id, payload, updated_at)
		 VALUES(?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   payload=excluded.payload,
		   updated_at=CURRENT_TIMESTAMP`,
		sanitizeID(id), string(payload))
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
