package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-stock-dashboard/internal/server/service"
	"golang-stock-dashboard/pkg/logger"
)

// NewsHandler handles news HTTP requests.
type NewsHandler struct {
	newsService service.NewsService
	logger      *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{newsService: newsService, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/news/:symbol", h.GetNews)
}

// GetNews returns recent headlines for the path symbol.
func (h *NewsHandler) GetNews(c echo.Context) error {
	symbol := c.Param("symbol")

	items, err := h.newsService.GetNews(c.Request().Context(), symbol)
	if err != nil {
		h.logger.Error("News fetch failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch news"})
	}

	return c.JSON(http.StatusOK, items)
}
