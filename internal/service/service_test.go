package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/avikbasu/healthlog/internal/collection"
	"github.com/avikbasu/healthlog/internal/models"
)

// memDocStore is an in-memory storage.DocStore for tests.
type memDocStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newMemDocStore() *memDocStore {
	return &memDocStore{docs: make(map[string][]byte)}
}

func (m *memDocStore) ReadDoc(ctx context.Context, userID, collection string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[userID+"/"+collection]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (m *memDocStore) WriteDoc(ctx context.Context, userID, collection string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[userID+"/"+collection] = data
	return nil
}

func ptr(f float64) *float64 { return &f }

func TestWeightService(t *testing.T) {
	ctx := context.Background()
	svc := NewWeightService(newMemDocStore())

	t.Run("add validates date and weight", func(t *testing.T) {
		if _, err := svc.Add(ctx, "u1", "", ptr(80)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for missing date, got %v", err)
		}
		if _, err := svc.Add(ctx, "u1", "2024-01-01", nil); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for missing weight, got %v", err)
		}
		if len(svc.List(ctx, "u1")) != 0 {
			t.Error("failed validation must not persist anything")
		}
	})

	t.Run("list is sorted ascending by date regardless of add order", func(t *testing.T) {
		if _, err := svc.Add(ctx, "u1", "2024-03-01", ptr(80)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if _, err := svc.Add(ctx, "u1", "2024-02-01", ptr(81)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		entries := svc.List(ctx, "u1")
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Date != "2024-02-01" || entries[1].Date != "2024-03-01" {
			t.Errorf("expected ascending dates, got %s then %s", entries[0].Date, entries[1].Date)
		}
	})

	t.Run("remove of unknown id fails with NotFound and changes nothing", func(t *testing.T) {
		before := svc.List(ctx, "u1")
		if _, err := svc.Remove(ctx, "u1", 424242); !errors.Is(err, collection.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if after := svc.List(ctx, "u1"); len(after) != len(before) {
			t.Errorf("failed remove mutated the collection: %d -> %d", len(before), len(after))
		}
	})

	t.Run("other users never see these entries", func(t *testing.T) {
		if entries := svc.List(ctx, "u2"); len(entries) != 0 {
			t.Errorf("expected empty collection for u2, got %d entries", len(entries))
		}
	})
}

func TestNutritionService(t *testing.T) {
	ctx := context.Background()
	svc := NewNutritionService(newMemDocStore())

	t.Run("add requires date, type, name and calories", func(t *testing.T) {
		_, err := svc.Add(ctx, "u1", EntryInput{Date: "2024-01-01", Category: "lunch", Name: "salad"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for missing calories, got %v", err)
		}
	})

	t.Run("zero calories is a valid value", func(t *testing.T) {
		entry, err := svc.Add(ctx, "u1", EntryInput{Date: "2024-01-01", Category: "snack", Name: "water", Calories: ptr(0)})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if entry.Calories != 0 {
			t.Errorf("expected 0 calories, got %v", entry.Calories)
		}
	})

	t.Run("missing macros default to zero", func(t *testing.T) {
		entry, err := svc.Add(ctx, "u1", EntryInput{
			Date: "2024-01-02", Category: "lunch", Name: "salad",
			Calories: ptr(350), Protein: ptr(12),
		})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if entry.Protein != 12 || entry.Carbs != 0 || entry.Fats != 0 {
			t.Errorf("expected macros {12 0 0}, got {%v %v %v}", entry.Protein, entry.Carbs, entry.Fats)
		}
	})

	t.Run("list is sorted descending by date", func(t *testing.T) {
		entries := svc.List(ctx, "u1")
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[0].Date != "2024-01-02" {
			t.Errorf("expected newest first, got %s", entries[0].Date)
		}
	})

	t.Run("replace all overwrites the collection", func(t *testing.T) {
		err := svc.ReplaceAll(ctx, "u1", []models.NutritionEntry{
			{ID: 1, Date: "2024-05-01", Type: "dinner", Name: "soup", Calories: 300},
		})
		if err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}
		entries := svc.List(ctx, "u1")
		if len(entries) != 1 || entries[0].Name != "soup" {
			t.Errorf("expected only the replacement entry, got %+v", entries)
		}
	})
}

func TestDietServiceZeroCalorieQuirk(t *testing.T) {
	ctx := context.Background()
	svc := NewDietService(newMemDocStore())

	// The legacy namespace treats zero calories as missing.
	_, err := svc.Add(ctx, "u1", EntryInput{Date: "2024-01-01", Category: "lunch", Name: "water", Calories: ptr(0)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero calories, got %v", err)
	}

	entry, err := svc.Add(ctx, "u1", EntryInput{Date: "2024-01-01", Category: "lunch", Name: "burger", Calories: ptr(550)})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if entry.Meal != "lunch" || entry.FoodName != "burger" {
		t.Errorf("expected legacy field mapping, got %+v", entry)
	}
}

func TestSaveGoals(t *testing.T) {
	ctx := context.Background()

	t.Run("first save coerces bad fields to defaults", func(t *testing.T) {
		svc := NewNutritionService(newMemDocStore())

		goals, err := svc.SaveGoals(ctx, "u1", map[string]any{
			"calorieGoal": "1800", // numeric string is accepted
			"proteinGoal": "abc",  // non-numeric falls back
		})
		if err != nil {
			t.Fatalf("SaveGoals failed: %v", err)
		}

		want := models.Goals{CalorieGoal: 1800, ProteinGoal: 150, CarbsGoal: 200, FatsGoal: 65}
		if goals != want {
			t.Errorf("expected %+v, got %+v", want, goals)
		}
		if got := svc.Goals(ctx, "u1"); got != want {
			t.Errorf("round-trip mismatch: %+v", got)
		}
	})

	t.Run("later saves keep previously saved values for omitted fields", func(t *testing.T) {
		svc := NewNutritionService(newMemDocStore())

		if _, err := svc.SaveGoals(ctx, "u1", map[string]any{"calorieGoal": 1800.0, "proteinGoal": 170.0}); err != nil {
			t.Fatalf("SaveGoals failed: %v", err)
		}
		goals, err := svc.SaveGoals(ctx, "u1", map[string]any{"fatsGoal": 70.0})
		if err != nil {
			t.Fatalf("SaveGoals failed: %v", err)
		}

		want := models.Goals{CalorieGoal: 1800, ProteinGoal: 170, CarbsGoal: 200, FatsGoal: 70}
		if goals != want {
			t.Errorf("expected %+v, got %+v", want, goals)
		}
	})

	t.Run("goals default when never saved", func(t *testing.T) {
		svc := NewNutritionService(newMemDocStore())
		if got := svc.Goals(ctx, "fresh-user"); got != models.DefaultGoals() {
			t.Errorf("expected defaults, got %+v", got)
		}
	})

	t.Run("concurrent saves of distinct fields both land", func(t *testing.T) {
		svc := NewNutritionService(newMemDocStore())

		payloads := []map[string]any{
			{"calorieGoal": 1800.0},
			{"proteinGoal": 170.0},
		}
		errs := make(chan error, len(payloads))
		var wg sync.WaitGroup
		for _, p := range payloads {
			wg.Add(1)
			go func(p map[string]any) {
				defer wg.Done()
				_, err := svc.SaveGoals(ctx, "u1", p)
				errs <- err
			}(p)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("SaveGoals failed: %v", err)
			}
		}

		want := models.Goals{CalorieGoal: 1800, ProteinGoal: 170, CarbsGoal: 200, FatsGoal: 65}
		if got := svc.Goals(ctx, "u1"); got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})
}
