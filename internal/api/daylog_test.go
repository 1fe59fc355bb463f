package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/service"
)

func setupDayLogRouter() (*gin.Engine, *service.DailyLogStore) {
	gin.SetMode(gin.TestMode)
	logStore := service.NewDailyLogStore()
	handler := NewDayLogHandler(logStore, models.DailyGoal{
		Calories: 2200, Protein: 140, Carbs: 250, Fat: 70,
	})

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	return router, logStore
}

func performGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListItems(t *testing.T) {
	router, logStore := setupDayLogRouter()

	t.Run("empty log", func(t *testing.T) {
		w := performGet(router, "/api/v1/log")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Items  []models.FoodItem     `json:"items"`
			Totals models.NutrientTotals `json:"totals"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Items)
		assert.Zero(t, resp.Totals.Calories)
	})

	t.Run("returns items in insertion order", func(t *testing.T) {
		logStore.Append(models.FoodAnalysisResult{Name: "Toast", Calories: 150}, models.MealBreakfast, "")
		logStore.Append(models.FoodAnalysisResult{Name: "Salad", Calories: 300}, models.MealLunch, "")

		w := performGet(router, "/api/v1/log")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Items  []models.FoodItem     `json:"items"`
			Totals models.NutrientTotals `json:"totals"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Toast", resp.Items[0].Name)
		assert.Equal(t, "Salad", resp.Items[1].Name)
		assert.Equal(t, 450.0, resp.Totals.Calories)
	})
}

func TestGetTotals(t *testing.T) {
	router, logStore := setupDayLogRouter()
	logStore.Append(models.FoodAnalysisResult{
		Name: "Burrito", Calories: 450,
		Macros: models.MacroNutrients{Protein: 30, Carbs: 40, Fat: 15},
	}, models.MealDinner, "")

	w := performGet(router, "/api/v1/log/totals")

	require.Equal(t, http.StatusOK, w.Code)
	var totals models.NutrientTotals
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.Equal(t, 450.0, totals.Calories)
	assert.Equal(t, 30.0, totals.Macros.Protein)
}

func TestRemoveItem(t *testing.T) {
	router, logStore := setupDayLogRouter()
	item := logStore.Append(models.FoodAnalysisResult{Name: "Cake", Calories: 400}, models.MealSnack, "")

	req := httptest.NewRequest("DELETE", "/api/v1/log/"+item.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, logStore.Len())

	t.Run("unknown id still succeeds", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/v1/log/not-there", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestGetGoal(t *testing.T) {
	router, _ := setupDayLogRouter()

	w := performGet(router, "/api/v1/goal")

	require.Equal(t, http.StatusOK, w.Code)
	var goal models.DailyGoal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goal))
	assert.Equal(t, 2200.0, goal.Calories)
	assert.Equal(t, 140.0, goal.Protein)
}
