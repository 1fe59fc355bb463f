package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/api"
	"github.com/nutrilens/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	analysisHandler *api.AnalysisHandler,
	dayLogHandler *api.DayLogHandler,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Only the analyze endpoints hit the inference service, so only
	// they are rate limited.
	analysisHandler.RegisterRoutes(v1, rateLimiter.Middleware())
	dayLogHandler.RegisterRoutes(v1)

	return router
}
