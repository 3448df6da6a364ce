package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/avikbasu/healthlog/internal/storage"
)

// Settings manages a per-user singleton document of type T, with a default
// value reported while the user has never saved one. Like Store, every
// mutation holds the (userID, collection) pair lock for its whole span.
type Settings[T any] struct {
	docs     storage.DocStore
	name     string
	defaults func() T

	locks *pairLocker
}

// NewSettings creates a singleton settings store under the given collection
// name. defaults is invoked for users with no saved document.
func NewSettings[T any](docs storage.DocStore, name string, defaults func() T) *Settings[T] {
	return &Settings[T]{docs: docs, name: name, defaults: defaults, locks: newPairLocker()}
}

// Get returns the user's saved settings, or the defaults when absent.
// Unreadable documents also fall back to defaults; reads never fail.
func (s *Settings[T]) Get(ctx context.Context, userID string) T {
	return s.load(ctx, userID)
}

func (s *Settings[T]) load(ctx context.Context, userID string) T {
	data, err := s.docs.ReadDoc(ctx, userID, s.name)
	if err != nil {
		slog.Warn("settings read failed, using defaults",
			"collection", s.name, "user_id", userID, "error", err)
		return s.defaults()
	}
	if data == nil {
		return s.defaults()
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		slog.Warn("settings decode failed, using defaults",
			"collection", s.name, "user_id", userID, "error", err)
		return s.defaults()
	}
	return v
}

// Update applies fn to the user's current settings (the defaults before the
// first save) and persists the result, all under the pair lock, so two
// concurrent updates for the same user never lose each other's fields.
func (s *Settings[T]) Update(ctx context.Context, userID string, fn func(T) T) (T, error) {
	unlock := s.locks.lock(userID, s.name)
	defer unlock()

	v := fn(s.load(ctx, userID))
	if err := s.save(ctx, userID, v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Save persists the user's settings as a full replace.
func (s *Settings[T]) Save(ctx context.Context, userID string, v T) error {
	unlock := s.locks.lock(userID, s.name)
	defer unlock()
	return s.save(ctx, userID, v)
}

func (s *Settings[T]) save(ctx context.Context, userID string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}
	if err := s.docs.WriteDoc(ctx, userID, s.name, data); err != nil {
		return fmt.Errorf("persist %s: %w", s.name, err)
	}
	return nil
}
