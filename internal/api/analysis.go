package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/service"
)

// FoodAnalyzer is the analysis adapter as seen by the HTTP layer.
type FoodAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) (*models.FoodAnalysisResult, error)
	AnalyzeImage(ctx context.Context, dataURI string) (*models.FoodAnalysisResult, error)
}

// AnalysisHandler handles food-analysis requests
type AnalysisHandler struct {
	analyzer FoodAnalyzer
	logStore *service.DailyLogStore
	photos   service.PhotoStore
}

// NewAnalysisHandler creates a new AnalysisHandler instance. photos
// may be nil; logged photo items then keep their data URI.
func NewAnalysisHandler(analyzer FoodAnalyzer, logStore *service.DailyLogStore, photos service.PhotoStore) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		logStore: logStore,
		photos:   photos,
	}
}

// RegisterRoutes registers the analysis routes
func (h *AnalysisHandler) RegisterRoutes(router *gin.RouterGroup, extra ...gin.HandlerFunc) {
	analyze := router.Group("/analyze", extra...)
	{
		analyze.POST("/text", h.AnalyzeText)
		analyze.POST("/image", h.AnalyzeImage)
	}
}

// AnalyzeText analyzes a text description, validates the estimate and
// appends it to the daily log.
func (h *AnalysisHandler) AnalyzeText(c *gin.Context) {
	var req struct {
		Description string          `json:"description" binding:"required"`
		MealType    models.MealType `json:"meal_type"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealType := req.MealType
	if mealType == "" {
		// Placeholder default pending a real product decision.
		mealType = models.MealSnack
	}
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal_type"})
		return
	}

	result, err := h.analyzer.AnalyzeText(c.Request.Context(), req.Description)
	if err != nil {
		// The adapter rejects bad input without contacting the model;
		// that is the caller's fault, not an upstream failure.
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid description"})
			return
		}
		log.Printf("[AnalysisHandler] text analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": textAnalysisMessage(err)})
		return
	}

	result, err = service.NormalizeResult(result)
	if err != nil {
		log.Printf("[AnalysisHandler] text analysis failed validation: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": textAnalysisMessage(err)})
		return
	}

	item := h.logStore.Append(*result, mealType, "")

	c.JSON(http.StatusCreated, gin.H{
		"item":   item,
		"totals": service.Totals(h.logStore.Snapshot()),
	})
}

// AnalyzeImage analyzes a captured photo, validates the estimate and
// appends it to the daily log.
func (h *AnalysisHandler) AnalyzeImage(c *gin.Context) {
	var req struct {
		Image    string          `json:"image" binding:"required"`
		MealType models.MealType `json:"meal_type"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealType := req.MealType
	if mealType == "" {
		// Placeholder default pending a real product decision.
		mealType = models.MealLunch
	}
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal_type"})
		return
	}

	result, err := h.analyzer.AnalyzeImage(c.Request.Context(), req.Image)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image payload"})
			return
		}
		log.Printf("[AnalysisHandler] image analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": imageAnalysisMessage(err)})
		return
	}

	result, err = service.NormalizeResult(result)
	if err != nil {
		log.Printf("[AnalysisHandler] image analysis failed validation: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": imageAnalysisMessage(err)})
		return
	}

	imageURL := req.Image
	if h.photos != nil {
		if url, err := h.photos.StorePhoto(c.Request.Context(), req.Image); err != nil {
			// Keep the data URI when upload fails
			log.Printf("[AnalysisHandler] photo upload failed, keeping data URI: %v", err)
		} else {
			imageURL = url
		}
	}

	item := h.logStore.Append(*result, mealType, imageURL)

	c.JSON(http.StatusCreated, gin.H{
		"item":   item,
		"totals": service.Totals(h.logStore.Snapshot()),
	})
}

// textAnalysisMessage maps an adapter failure to the user-facing
// message for the text modality. Internals are logged, never shown.
func textAnalysisMessage(err error) string {
	if errors.Is(err, service.ErrTimeout) {
		return "analysis timed out"
	}
	if errors.Is(err, service.ErrNoResponse) {
		return "no response generated"
	}
	return "could not analyze text, please try again"
}

// imageAnalysisMessage maps an adapter failure for the image modality.
// Malformed content and transport failures stay distinct: one suggests
// retrying, the other switching modality.
func imageAnalysisMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrTimeout):
		return "analysis timed out"
	case errors.Is(err, service.ErrNoResponse):
		return "no response generated"
	case errors.Is(err, service.ErrMalformedContent), errors.Is(err, service.ErrValidation):
		return "the AI recognized the image but returned invalid data format"
	default:
		return "failed to analyze image, try again or use text search"
	}
}
