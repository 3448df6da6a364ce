// Package summary computes daily nutrition aggregates from log entries.
package summary

import "github.com/avikbasu/healthlog/internal/models"

// DayTotals is the nutrition consumed on one calendar day.
type DayTotals struct {
	Date     string  `json:"date"`
	Entries  int     `json:"entries"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DayProgress is a day's totals measured against the user's goals.
type DayProgress struct {
	DayTotals
	CaloriesRemaining float64 `json:"caloriesRemaining"`
	CalorieGoalMet    bool    `json:"calorieGoalMet"`
}

// Daily groups entries by date, preserving the order in which dates first
// appear. The nutrition collection is stored newest-first, so the result is
// newest-first too.
func Daily(entries []models.NutritionEntry) []DayTotals {
	var days []DayTotals
	index := make(map[string]int)

	for _, e := range entries {
		i, ok := index[e.Date]
		if !ok {
			i = len(days)
			index[e.Date] = i
			days = append(days, DayTotals{Date: e.Date})
		}
		days[i].Entries++
		days[i].Calories += e.Calories
		days[i].Protein += e.Protein
		days[i].Carbs += e.Carbs
		days[i].Fats += e.Fats
	}

	return days
}

// Progress annotates daily totals with goal attainment. A day meets its
// calorie goal when consumption does not exceed the target.
func Progress(days []DayTotals, goals models.Goals) []DayProgress {
	out := make([]DayProgress, len(days))
	for i, d := range days {
		out[i] = DayProgress{
			DayTotals:         d,
			CaloriesRemaining: goals.CalorieGoal - d.Calories,
			CalorieGoalMet:    d.Calories <= goals.CalorieGoal,
		}
	}
	return out
}
