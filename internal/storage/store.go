// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/avikbasu/healthlog/internal/models"
)

// ErrDuplicateUser is returned by CreateUser when the username is taken.
// The username uniqueness constraint lives in the store so that the
// existence check and the insert are a single atomic operation.
var ErrDuplicateUser = errors.New("username already registered")

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrDuplicateUser if the
	// username is already present.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by their login name.
	// Returns (nil, nil) when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by their ID.
	// Returns (nil, nil) when no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// DocStore persists one opaque document per (userID, collection) pair.
// Each user's collections are fully independent of every other user's.
type DocStore interface {
	// ReadDoc returns the stored document, or (nil, nil) if the pair has
	// never been written. Absence is the empty state, not a failure.
	ReadDoc(ctx context.Context, userID, collection string) ([]byte, error)

	// WriteDoc replaces the document for the pair in one atomic write.
	// Readers never observe a partially written document.
	WriteDoc(ctx context.Context, userID, collection string, data []byte) error
}

// Store defines the full interface for healthlog persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	DocStore

	// Close releases any resources held by the store.
	Close() error
}
