package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"golang-stock-dashboard/internal/chart"
	"golang-stock-dashboard/internal/server/repository"
	"golang-stock-dashboard/internal/server/service"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/utils"
)

// QuoteHandler handles symbol search and chart HTTP requests.
type QuoteHandler struct {
	quoteService service.QuoteService
	logger       *logger.Logger
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService service.QuoteService, logger *logger.Logger) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, logger: logger}
}

// RegisterRoutes registers the quote routes to the Echo group.
func (h *QuoteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/search/:symbol", h.Search)
	g.GET("/chart/:symbol", h.Chart)
	g.GET("/history", h.History)
}

// History returns the most recent recorded searches.
func (h *QuoteHandler) History(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	records, err := h.quoteService.RecentSearches(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("History lookup failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load search history"})
	}
	return c.JSON(http.StatusOK, records)
}

// Search returns a full quote snapshot for the path symbol.
func (h *QuoteHandler) Search(c echo.Context) error {
	symbol := c.Param("symbol")

	snapshot, err := h.quoteService.Search(c.Request().Context(), symbol)
	if err != nil {
		return h.searchError(c, symbol, err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

// Chart renders the symbol's recent close series as a PNG.
func (h *QuoteHandler) Chart(c echo.Context) error {
	symbol := c.Param("symbol")

	snapshot, err := h.quoteService.Search(c.Request().Context(), symbol)
	if err != nil {
		return h.searchError(c, symbol, err)
	}

	series := chart.BuildSeries(snapshot.Historical, utils.TimeNowIST())
	c.Response().Header().Set(echo.HeaderContentType, "image/png")
	c.Response().WriteHeader(http.StatusOK)
	if err := chart.Render(snapshot.Symbol, series, c.Response()); err != nil {
		h.logger.Error("Chart render failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return err
	}
	return nil
}

func (h *QuoteHandler) searchError(c echo.Context, symbol string, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptySymbol):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing symbol"})
	case errors.Is(err, repository.ErrSymbolNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Stock not found"})
	default:
		h.logger.Error("Search failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Quote provider unavailable"})
	}
}
