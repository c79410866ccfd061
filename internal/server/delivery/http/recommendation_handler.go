package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/internal/server/service"
	"golang-stock-dashboard/pkg/logger"
)

// RecommendationHandler handles recommendation HTTP requests.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
	logger                *logger.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService service.RecommendationService, logger *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService, logger: logger}
}

// RegisterRoutes registers the recommendation routes to the Echo group.
func (h *RecommendationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/recommendations", h.GetRecommendations)
}

// GetRecommendations scores the screening universe against the submitted
// profile and returns the ranked result list.
func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	var profile entity.UserProfile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	results, err := h.recommendationService.GetRecommendations(c.Request().Context(), profile)
	if err != nil {
		h.logger.Error("Recommendation screen failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate recommendations"})
	}

	return c.JSON(http.StatusOK, results)
}
