// Package collection implements the typed per-user record collections on
// top of the raw document store. Every mutation holds a mutex scoped to the
// (userID, collection) pair for its whole read-modify-write span, so
// concurrent appends never lose an insertion and readers never observe a
// half-applied replace.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/avikbasu/healthlog/internal/storage"
)

// ErrNotFound is returned when an operation targets a record id that does
// not exist in the user's collection.
var ErrNotFound = errors.New("record not found")

// Store manages one named collection of records of type T across all users.
// Each user owns an independent, ordered sequence.
type Store[T any] struct {
	docs  storage.DocStore
	name  string
	less  func(a, b T) bool
	idOf  func(T) int64
	setID func(*T, int64)

	locks *pairLocker
	ids   *idGenerator
}

// NewStore creates a typed collection store.
// less defines the collection's sort order; ties keep insertion order.
// idOf and setID give the store access to the record's id field.
func NewStore[T any](docs storage.DocStore, name string, less func(a, b T) bool, idOf func(T) int64, setID func(*T, int64)) *Store[T] {
	return &Store[T]{
		docs:  docs,
		name:  name,
		less:  less,
		idOf:  idOf,
		setID: setID,
		locks: newPairLocker(),
		ids:   newIDGenerator(),
	}
}

// Name returns the collection's name.
func (s *Store[T]) Name() string {
	return s.name
}

// List returns the user's records in stored order. A collection that has
// never been written reads as empty; an unreadable document also reads as
// empty so that the read path never fails a caller (the error is logged).
func (s *Store[T]) List(ctx context.Context, userID string) []T {
	return s.load(ctx, userID)
}

// Append inserts a record, assigns its id, re-sorts the collection and
// persists it. The whole read-modify-write runs under the pair lock.
func (s *Store[T]) Append(ctx context.Context, userID string, record T) (T, []T, error) {
	unlock := s.locks.lock(userID, s.name)
	defer unlock()

	records := s.load(ctx, userID)
	s.setID(&record, s.ids.next(userID+"/"+s.name))
	records = append(records, record)
	sort.SliceStable(records, func(i, j int) bool {
		return s.less(records[i], records[j])
	})

	if err := s.save(ctx, userID, records); err != nil {
		var zero T
		return zero, nil, err
	}
	return record, records, nil
}

// RemoveByID removes exactly one record and persists the collection.
// Returns ErrNotFound, without mutating anything, when the id is absent.
func (s *Store[T]) RemoveByID(ctx context.Context, userID string, id int64) ([]T, error) {
	unlock := s.locks.lock(userID, s.name)
	defer unlock()

	records := s.load(ctx, userID)
	idx := -1
	for i, r := range records {
		if s.idOf(r) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s id %d", ErrNotFound, s.name, id)
	}

	records = append(records[:idx], records[idx+1:]...)
	if err := s.save(ctx, userID, records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReplaceAll overwrites the user's collection with the given records,
// re-sorted to keep the collection's order invariant.
func (s *Store[T]) ReplaceAll(ctx context.Context, userID string, records []T) error {
	unlock := s.locks.lock(userID, s.name)
	defer unlock()

	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return s.less(sorted[i], sorted[j])
	})
	return s.save(ctx, userID, sorted)
}

// Init writes an empty collection for the user if none exists yet. Used at
// registration so a fresh account reads consistently from the start.
func (s *Store[T]) Init(ctx context.Context, userID string) error {
	unlock := s.locks.lock(userID, s.name)
	defer unlock()

	data, err := s.docs.ReadDoc(ctx, userID, s.name)
	if err != nil {
		return fmt.Errorf("init %s: %w", s.name, err)
	}
	if data != nil {
		return nil
	}
	return s.save(ctx, userID, []T{})
}

// load reads and decodes the user's collection. Absent and unreadable
// documents both decode to the empty sequence: for reads, "never existed"
// and "unreadable" are deliberately the same thing.
func (s *Store[T]) load(ctx context.Context, userID string) []T {
	data, err := s.docs.ReadDoc(ctx, userID, s.name)
	if err != nil {
		slog.Warn("collection read failed, treating as empty",
			"collection", s.name, "user_id", userID, "error", err)
		return []T{}
	}
	if data == nil {
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("collection decode failed, treating as empty",
			"collection", s.name, "user_id", userID, "error", err)
		return []T{}
	}
	return records
}

func (s *Store[T]) save(ctx context.Context, userID string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}
	if err := s.docs.WriteDoc(ctx, userID, s.name, data); err != nil {
		return fmt.Errorf("persist %s: %w", s.name, err)
	}
	return nil
}
