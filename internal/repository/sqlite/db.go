package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Rrens/rag-query-client/internal/domain"
	_ "modernc.org/sqlite"
)

const createSessionTable = `
CREATE TABLE IF NOT EXISTS client_session (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
)`

// SessionStore persists the session token in a local SQLite file
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore opens (or creates) the SQLite file at path
func NewSessionStore(ctx context.Context, path string) (*SessionStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database file path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createSessionTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}

	return &SessionStore{db: db}, nil
}

// Get returns the value for key or domain.ErrNotFound
func (s *SessionStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM client_session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session value: %w", err)
	}
	return value, nil
}

// Set upserts the value for key
func (s *SessionStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO client_session (key, value, updated_at)
		VALUES (?, ?, strftime('%s','now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set session value: %w", err)
	}
	return nil
}

// Close closes the database
func (s *SessionStore) Close() error {
	return s.db.Close()
}
