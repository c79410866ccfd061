package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-stock-dashboard/internal/server/service"
	"golang-stock-dashboard/pkg/logger"
)

// SuggestionHandler handles typeahead HTTP requests.
type SuggestionHandler struct {
	suggestionService service.SuggestionService
	logger            *logger.Logger
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestionService service.SuggestionService, logger *logger.Logger) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService, logger: logger}
}

// RegisterRoutes registers the suggestion routes to the Echo group.
func (h *SuggestionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/suggest", h.Suggest)
}

// Suggest returns ranked symbol suggestions for the q query parameter.
// Queries shorter than two characters return an empty list.
func (h *SuggestionHandler) Suggest(c echo.Context) error {
	query := c.QueryParam("q")

	suggestions, err := h.suggestionService.Suggest(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("Suggestion lookup failed", logger.ErrorField(err), logger.StringField("query", query))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch suggestions"})
	}

	return c.JSON(http.StatusOK, suggestions)
}
