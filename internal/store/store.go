package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/AndreaCatalan/automated-email/internal/cryptox"
)

const timeFormat = "2006-01-02 15:04:05.000000000"

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT UNIQUE NOT NULL,
	ai_key_encrypted TEXT NOT NULL,
	credentials_encrypted TEXT,
	creds_fingerprint TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	last_login TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS draft_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	draft_id TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	recipient TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_draft_history_user ON draft_history(user_id);
`

// Store persists user credentials and draft history in SQLite. Secret fields
// are encrypted with the process-wide key before they touch the database.
type Store struct {
	db     *sql.DB
	cipher *cryptox.Cipher
}

// Open opens (or creates) the SQLite database at path and ensures the schema
// exists. The cipher encrypts the secret columns.
func Open(ctx context.Context, path string, cipher *cryptox.Cipher) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, cipher: cipher}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
