package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/service"
)

// DayLogHandler handles daily-log and goal requests
type DayLogHandler struct {
	logStore *service.DailyLogStore
	goal     models.DailyGoal
}

// NewDayLogHandler creates a new DayLogHandler instance
func NewDayLogHandler(logStore *service.DailyLogStore, goal models.DailyGoal) *DayLogHandler {
	return &DayLogHandler{
		logStore: logStore,
		goal:     goal,
	}
}

// RegisterRoutes registers the log and goal routes
func (h *DayLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logGroup := router.Group("/log")
	{
		logGroup.GET("", h.ListItems)
		logGroup.GET("/totals", h.GetTotals)
		logGroup.DELETE("/:id", h.RemoveItem)
	}
	router.GET("/goal", h.GetGoal)
}

// ListItems returns the current log snapshot in insertion order.
func (h *DayLogHandler) ListItems(c *gin.Context) {
	items := h.logStore.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"totals": service.Totals(items),
	})
}

// GetTotals returns the aggregated nutrition totals.
func (h *DayLogHandler) GetTotals(c *gin.Context) {
	c.JSON(http.StatusOK, service.Totals(h.logStore.Snapshot()))
}

// RemoveItem deletes a logged item. Unknown IDs are a no-op, so the
// response is 204 either way.
func (h *DayLogHandler) RemoveItem(c *gin.Context) {
	h.logStore.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// GetGoal returns the static daily nutrition goal.
func (h *DayLogHandler) GetGoal(c *gin.Context) {
	c.JSON(http.StatusOK, h.goal)
}
