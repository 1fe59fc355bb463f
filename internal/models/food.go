package models

// MacroNutrients holds a macronutrient breakdown in grams.
type MacroNutrients struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// Add returns the elementwise sum of two breakdowns.
func (m MacroNutrients) Add(other MacroNutrients) MacroNutrients {
	return MacroNutrients{
		Protein: m.Protein + other.Protein,
		Carbs:   m.Carbs + other.Carbs,
		Fat:     m.Fat + other.Fat,
	}
}

// Confidence indicates how sure the model was about an estimate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is one of the known confidence levels.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// MealType classifies when a food item was eaten.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// Valid reports whether t is one of the known meal types.
func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// FoodAnalysisResult is the canonical output of the analysis adapter.
// It carries only what the model estimated; id, timestamp, meal type
// and image URL are filled in at the log-store boundary.
type FoodAnalysisResult struct {
	Name       string         `json:"name"`
	Calories   float64        `json:"calories"`
	Quantity   string         `json:"quantity"`
	Macros     MacroNutrients `json:"macros"`
	Confidence Confidence     `json:"confidence"`
}

// FoodItem is a single logged entry in the daily log.
type FoodItem struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Calories   float64        `json:"calories"`
	Macros     MacroNutrients `json:"macros"`
	Quantity   string         `json:"quantity"`
	Confidence Confidence     `json:"confidence,omitempty"`
	MealType   MealType       `json:"meal_type"`
	Timestamp  int64          `json:"timestamp"`
	ImageURL   string         `json:"image_url,omitempty"`
}

// DailyGoal is the static nutrition target for the session.
type DailyGoal struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutrientTotals is the aggregated view over the daily log.
type NutrientTotals struct {
	Calories float64        `json:"total_calories"`
	Macros   MacroNutrients `json:"total_macros"`
}
