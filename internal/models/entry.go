package models

// WeightEntry is a single body-weight measurement.
type WeightEntry struct {
	// ID is unique within the owning user's weight collection.
	ID int64 `json:"id"`

	// Date is the calendar day of the measurement (YYYY-MM-DD).
	Date string `json:"date"`

	// Weight is the measured value; unit handling is the client's concern.
	Weight float64 `json:"weight"`
}

// NutritionEntry is a single logged meal or food item.
type NutritionEntry struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Type     string  `json:"type"` // meal category, e.g. "breakfast"
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DietEntry is the legacy shape of a nutrition log entry. It lives in its
// own collection namespace and uses the old field names; there is no
// migration between the diet and nutrition collections.
type DietEntry struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Meal     string  `json:"meal"`
	FoodName string  `json:"foodName"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}
