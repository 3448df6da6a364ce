// Package service implements the domain services over the collection layer:
// weight logs, nutrition logs and the legacy diet namespace.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/avikbasu/healthlog/internal/collection"
	"github.com/avikbasu/healthlog/internal/models"
	"github.com/avikbasu/healthlog/internal/storage"
)

// ErrInvalidInput is returned when a required field is missing or
// malformed. Validation runs before any storage access.
var ErrInvalidInput = errors.New("invalid input")

// WeightService manages per-user body-weight logs, sorted ascending by date.
type WeightService struct {
	entries *collection.Store[models.WeightEntry]
}

// NewWeightService creates a WeightService over the given document store.
func NewWeightService(docs storage.DocStore) *WeightService {
	return &WeightService{
		entries: collection.NewStore(docs, "weight",
			func(a, b models.WeightEntry) bool { return a.Date < b.Date },
			func(e models.WeightEntry) int64 { return e.ID },
			func(e *models.WeightEntry, id int64) { e.ID = id },
		),
	}
}

// List returns the user's weight entries, oldest date first.
func (s *WeightService) List(ctx context.Context, userID string) []models.WeightEntry {
	return s.entries.List(ctx, userID)
}

// Add validates and appends a weight entry, returning it with its id set.
func (s *WeightService) Add(ctx context.Context, userID, date string, weight *float64) (models.WeightEntry, error) {
	if date == "" || weight == nil {
		return models.WeightEntry{}, fmt.Errorf("%w: date and weight are required", ErrInvalidInput)
	}

	entry, _, err := s.entries.Append(ctx, userID, models.WeightEntry{
		Date:   date,
		Weight: *weight,
	})
	if err != nil {
		slog.Error("failed to add weight entry", "user_id", userID, "error", err)
		return models.WeightEntry{}, err
	}
	return entry, nil
}

// Remove deletes the entry with the given id and returns the remaining
// entries. Returns collection.ErrNotFound if no such entry exists.
func (s *WeightService) Remove(ctx context.Context, userID string, id int64) ([]models.WeightEntry, error) {
	remaining, err := s.entries.RemoveByID(ctx, userID, id)
	if err != nil {
		if !errors.Is(err, collection.ErrNotFound) {
			slog.Error("failed to remove weight entry", "user_id", userID, "id", id, "error", err)
		}
		return nil, err
	}
	return remaining, nil
}

// InitUser seeds an empty weight collection for a newly registered user.
func (s *WeightService) InitUser(ctx context.Context, userID string) error {
	return s.entries.Init(ctx, userID)
}
