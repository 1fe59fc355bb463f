package service

import (
	"fmt"
	"strings"

	"github.com/nutrilens/backend/internal/models"
)

// Upper bounds for a single logged item. Generative estimates are
// occasionally absurd; anything beyond these is treated as noise.
const (
	maxItemCalories = 10000
	maxItemMacro    = 1000
)

// NormalizeResult validates an adapter result and clamps its numbers
// into a plausible range before it can become a FoodItem. The input is
// not mutated.
func NormalizeResult(result *models.FoodAnalysisResult) (*models.FoodAnalysisResult, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: nil result", ErrValidation)
	}

	name := strings.TrimSpace(result.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty food name", ErrValidation)
	}

	if !result.Confidence.Valid() {
		return nil, fmt.Errorf("%w: unknown confidence %q", ErrValidation, result.Confidence)
	}

	normalized := *result
	normalized.Name = name
	normalized.Calories = clamp(result.Calories, maxItemCalories)
	normalized.Macros = models.MacroNutrients{
		Protein: clamp(result.Macros.Protein, maxItemMacro),
		Carbs:   clamp(result.Macros.Carbs, maxItemMacro),
		Fat:     clamp(result.Macros.Fat, maxItemMacro),
	}

	return &normalized, nil
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
