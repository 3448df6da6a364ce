package service

import (
	"fmt"

	"github.com/avikbasu/healthlog/internal/collection"
	"github.com/avikbasu/healthlog/internal/models"
	"github.com/avikbasu/healthlog/internal/storage"
)

// NewNutritionService creates the current-generation food log service.
// Calories must be present (zero is a valid value); macros default to 0.
func NewNutritionService(docs storage.DocStore) *LogService[models.NutritionEntry] {
	return &LogService[models.NutritionEntry]{
		name: "nutrition",
		entries: collection.NewStore(docs, "nutrition",
			func(a, b models.NutritionEntry) bool { return a.Date > b.Date },
			func(e models.NutritionEntry) int64 { return e.ID },
			func(e *models.NutritionEntry, id int64) { e.ID = id },
		),
		goals: collection.NewSettings(docs, "nutrition_settings", models.DefaultGoals),
		build: func(in EntryInput) (models.NutritionEntry, error) {
			if in.Date == "" || in.Category == "" || in.Name == "" || in.Calories == nil {
				return models.NutritionEntry{}, fmt.Errorf("%w: date, type, name and calories are required", ErrInvalidInput)
			}
			return models.NutritionEntry{
				Date:     in.Date,
				Type:     in.Category,
				Name:     in.Name,
				Calories: *in.Calories,
				Protein:  orZero(in.Protein),
				Carbs:    orZero(in.Carbs),
				Fats:     orZero(in.Fats),
			}, nil
		},
	}
}

// NewDietService creates the legacy food log service. It keeps the old
// meal/foodName field names and its own collection namespace; nothing is
// migrated between diet and nutrition.
func NewDietService(docs storage.DocStore) *LogService[models.DietEntry] {
	return &LogService[models.DietEntry]{
		name: "diet",
		entries: collection.NewStore(docs, "diet",
			func(a, b models.DietEntry) bool { return a.Date > b.Date },
			func(e models.DietEntry) int64 { return e.ID },
			func(e *models.DietEntry, id int64) { e.ID = id },
		),
		goals: collection.NewSettings(docs, "diet_settings", models.DefaultGoals),
		build: func(in EntryInput) (models.DietEntry, error) {
			// Old clients send calories as a truthy check: zero counts as
			// missing here. Kept for compatibility, not corrected.
			if in.Date == "" || in.Category == "" || in.Name == "" || in.Calories == nil || *in.Calories == 0 {
				return models.DietEntry{}, fmt.Errorf("%w: date, meal, foodName and calories are required", ErrInvalidInput)
			}
			return models.DietEntry{
				Date:     in.Date,
				Meal:     in.Category,
				FoodName: in.Name,
				Calories: *in.Calories,
				Protein:  orZero(in.Protein),
				Carbs:    orZero(in.Carbs),
				Fats:     orZero(in.Fats),
			}, nil
		},
	}
}
