package service

import (
	"github.com/nutrilens/backend/internal/models"
)

// Totals folds a snapshot of logged items into running nutrition
// totals. Pure and order-independent; an empty snapshot yields zeros.
func Totals(items []models.FoodItem) models.NutrientTotals {
	var totals models.NutrientTotals
	for _, item := range items {
		totals.Calories += item.Calories
		totals.Macros = totals.Macros.Add(item.Macros)
	}
	return totals
}
