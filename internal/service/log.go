package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/avikbasu/healthlog/internal/collection"
	"github.com/avikbasu/healthlog/internal/models"
)

// EntryInput carries the fields of a food log entry before validation.
// Category and Name map to type/name for nutrition and meal/foodName for
// the legacy diet namespace. Pointer fields distinguish absent from zero.
type EntryInput struct {
	Date     string
	Category string
	Name     string
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fats     *float64
}

// LogService is the shared implementation behind the nutrition and legacy
// diet services. The two differ only in collection names, field naming and
// validation, so they are two configurations of one service.
type LogService[T any] struct {
	name    string
	entries *collection.Store[T]
	goals   *collection.Settings[models.Goals]
	build   func(EntryInput) (T, error)
}

// List returns the user's entries, newest date first.
func (s *LogService[T]) List(ctx context.Context, userID string) []T {
	return s.entries.List(ctx, userID)
}

// Add validates and appends an entry, returning it with its id set.
func (s *LogService[T]) Add(ctx context.Context, userID string, in EntryInput) (T, error) {
	var zero T

	record, err := s.build(in)
	if err != nil {
		return zero, err
	}

	entry, _, err := s.entries.Append(ctx, userID, record)
	if err != nil {
		slog.Error("failed to add entry", "collection", s.name, "user_id", userID, "error", err)
		return zero, err
	}
	return entry, nil
}

// Remove deletes the entry with the given id and returns the remaining
// entries. Returns collection.ErrNotFound if no such entry exists.
func (s *LogService[T]) Remove(ctx context.Context, userID string, id int64) ([]T, error) {
	remaining, err := s.entries.RemoveByID(ctx, userID, id)
	if err != nil {
		if !errors.Is(err, collection.ErrNotFound) {
			slog.Error("failed to remove entry", "collection", s.name, "user_id", userID, "id", id, "error", err)
		}
		return nil, err
	}
	return remaining, nil
}

// ReplaceAll overwrites the user's whole collection in one save.
func (s *LogService[T]) ReplaceAll(ctx context.Context, userID string, entries []T) error {
	if err := s.entries.ReplaceAll(ctx, userID, entries); err != nil {
		slog.Error("failed to replace entries", "collection", s.name, "user_id", userID, "error", err)
		return err
	}
	return nil
}

// Goals returns the user's saved targets, or the defaults when unset.
func (s *LogService[T]) Goals(ctx context.Context, userID string) models.Goals {
	return s.goals.Get(ctx, userID)
}

// SaveGoals updates the user's targets from a loosely typed payload. Each
// field is coerced independently: a missing or non-numeric field keeps its
// current value (the default before the first save). A bad single field
// never rejects the whole request.
func (s *LogService[T]) SaveGoals(ctx context.Context, userID string, raw map[string]any) (models.Goals, error) {
	goals, err := s.goals.Update(ctx, userID, func(current models.Goals) models.Goals {
		current.CalorieGoal = coerce(raw["calorieGoal"], current.CalorieGoal)
		current.ProteinGoal = coerce(raw["proteinGoal"], current.ProteinGoal)
		current.CarbsGoal = coerce(raw["carbsGoal"], current.CarbsGoal)
		current.FatsGoal = coerce(raw["fatsGoal"], current.FatsGoal)
		return current
	})
	if err != nil {
		slog.Error("failed to save goals", "collection", s.name, "user_id", userID, "error", err)
		return models.Goals{}, err
	}
	return goals, nil
}

// coerce extracts a numeric value from a decoded JSON field, accepting
// numbers and numeric strings; anything else yields the fallback.
func coerce(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return fallback
}

func orZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
