package models

// Goals holds a user's daily nutrition targets. Both the nutrition and the
// legacy diet namespaces store this shape, each as its own singleton.
type Goals struct {
	CalorieGoal float64 `json:"calorieGoal"`
	ProteinGoal float64 `json:"proteinGoal"`
	CarbsGoal   float64 `json:"carbsGoal"`
	FatsGoal    float64 `json:"fatsGoal"`
}

// DefaultGoals are the targets reported for a user who has never saved any,
// and the per-field fallback when a save omits or mangles a field.
func DefaultGoals() Goals {
	return Goals{
		CalorieGoal: 2000,
		ProteinGoal: 150,
		CarbsGoal:   200,
		FatsGoal:    65,
	}
}
