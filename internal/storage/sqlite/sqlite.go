// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/avikbasu/healthlog/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Serialize writers at the driver level; per-collection locking above
	// this layer still governs read-modify-write spans.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReadDoc returns the raw document stored for the (userID, collection) pair,
// or (nil, nil) if the pair has never been written.
func (s *SQLiteStore) ReadDoc(ctx context.Context, userID, collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE user_id = ? AND collection = ?",
		userID, collection,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s/%s: %w", userID, collection, err)
	}
	return data, nil
}

// WriteDoc replaces the document for the (userID, collection) pair.
// The single-row UPSERT makes the full replace atomic.
func (s *SQLiteStore) WriteDoc(ctx context.Context, userID, collection string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (user_id, collection, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, collection)
		DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, collection, data, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write document %s/%s: %w", userID, collection, err)
	}
	return nil
}
