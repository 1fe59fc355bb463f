package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilens/backend/internal/models"
)

func sampleResult(name string) models.FoodAnalysisResult {
	return models.FoodAnalysisResult{
		Name:       name,
		Calories:   120,
		Quantity:   "1 serving",
		Macros:     models.MacroNutrients{Protein: 4, Carbs: 20, Fat: 3},
		Confidence: models.ConfidenceMedium,
	}
}

func TestDailyLogStore_Append(t *testing.T) {
	store := NewDailyLogStore()

	item := store.Append(sampleResult("Oatmeal"), models.MealBreakfast, "")

	require.NotEmpty(t, item.ID)
	assert.NotZero(t, item.Timestamp)
	assert.Equal(t, "Oatmeal", item.Name)
	assert.Equal(t, models.MealBreakfast, item.MealType)
	assert.Equal(t, 1, store.Len())

	t.Run("preserves insertion order", func(t *testing.T) {
		store.Append(sampleResult("Banana"), models.MealSnack, "")
		store.Append(sampleResult("Coffee"), models.MealSnack, "")

		snapshot := store.Snapshot()
		require.Len(t, snapshot, 3)
		assert.Equal(t, "Oatmeal", snapshot[0].Name)
		assert.Equal(t, "Banana", snapshot[1].Name)
		assert.Equal(t, "Coffee", snapshot[2].Name)
	})

	t.Run("assigns unique ids", func(t *testing.T) {
		seen := map[string]bool{}
		for _, item := range store.Snapshot() {
			assert.False(t, seen[item.ID])
			seen[item.ID] = true
		}
	})
}

func TestDailyLogStore_Remove(t *testing.T) {
	t.Run("append then remove restores prior snapshot", func(t *testing.T) {
		store := NewDailyLogStore()
		store.Append(sampleResult("Toast"), models.MealBreakfast, "")
		store.Append(sampleResult("Salad"), models.MealLunch, "")
		before := store.Snapshot()

		item := store.Append(sampleResult("Cake"), models.MealSnack, "")
		store.Remove(item.ID)

		assert.Equal(t, before, store.Snapshot())
	})

	t.Run("preserves order of remaining items", func(t *testing.T) {
		store := NewDailyLogStore()
		first := store.Append(sampleResult("First"), models.MealBreakfast, "")
		middle := store.Append(sampleResult("Middle"), models.MealLunch, "")
		last := store.Append(sampleResult("Last"), models.MealDinner, "")

		store.Remove(middle.ID)

		snapshot := store.Snapshot()
		require.Len(t, snapshot, 2)
		assert.Equal(t, first.ID, snapshot[0].ID)
		assert.Equal(t, last.ID, snapshot[1].ID)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		store := NewDailyLogStore()
		store.Append(sampleResult("Soup"), models.MealDinner, "")
		before := store.Snapshot()

		store.Remove("does-not-exist")

		assert.Equal(t, before, store.Snapshot())
	})
}

func TestDailyLogStore_SnapshotIsCopy(t *testing.T) {
	store := NewDailyLogStore()
	store.Append(sampleResult("Eggs"), models.MealBreakfast, "")

	snapshot := store.Snapshot()
	snapshot[0].Name = "Tampered"

	assert.Equal(t, "Eggs", store.Snapshot()[0].Name)
}
