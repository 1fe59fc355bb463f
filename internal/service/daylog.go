package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilens/backend/internal/models"
)

// DailyLogStore holds the authoritative ordered sequence of today's
// logged food items. Lifetime is the process session; there is no
// persistence by design.
type DailyLogStore struct {
	mu    sync.RWMutex
	items []models.FoodItem
}

// NewDailyLogStore creates an empty log store.
func NewDailyLogStore() *DailyLogStore {
	return &DailyLogStore{}
}

// Append turns a validated analysis result into a FoodItem, assigns it
// a fresh ID and timestamp, and adds it to the end of the log.
func (s *DailyLogStore) Append(result models.FoodAnalysisResult, mealType models.MealType, imageURL string) models.FoodItem {
	item := models.FoodItem{
		ID:         uuid.New().String(),
		Name:       result.Name,
		Calories:   result.Calories,
		Macros:     result.Macros,
		Quantity:   result.Quantity,
		Confidence: result.Confidence,
		MealType:   mealType,
		Timestamp:  time.Now().UnixMilli(),
		ImageURL:   imageURL,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)

	return item
}

// Remove deletes the entry with the given ID, preserving the order of
// the remaining items. Removing an unknown ID is a no-op.
func (s *DailyLogStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Snapshot returns a copy of the current log in insertion order.
// Callers must treat it as immutable.
func (s *DailyLogStore) Snapshot() []models.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.FoodItem, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// Len returns the number of logged items.
func (s *DailyLogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
