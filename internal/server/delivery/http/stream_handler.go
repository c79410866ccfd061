package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"golang-stock-dashboard/internal/server/config"
	"golang-stock-dashboard/internal/server/dto"
	"golang-stock-dashboard/internal/server/service"
	"golang-stock-dashboard/pkg/logger"
)

// StreamHandler pushes live price updates over a websocket.
type StreamHandler struct {
	quoteService service.QuoteService
	cfg          *config.Config
	logger       *logger.Logger
	upgrader     websocket.Upgrader
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(quoteService service.QuoteService, cfg *config.Config, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		quoteService: quoteService,
		cfg:          cfg,
		logger:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRoutes registers the stream route to the Echo group.
func (h *StreamHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stream/:symbol", h.Stream)
}

// Stream upgrades the connection and pushes a price update per tick
// until the client disconnects.
func (h *StreamHandler) Stream(c echo.Context) error {
	symbol := c.Param("symbol")

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	closed := make(chan struct{})

	// Drain reads so close frames from the client are noticed.
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.cfg.Stream.PushInterval)
	defer ticker.Stop()

	if err := h.push(c, conn, symbol); err != nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			return nil
		case <-ticker.C:
			if err := h.push(c, conn, symbol); err != nil {
				return nil
			}
		}
	}
}

func (h *StreamHandler) push(c echo.Context, conn *websocket.Conn, symbol string) error {
	snapshot, err := h.quoteService.Search(c.Request().Context(), symbol)
	if err != nil {
		h.logger.Warn("Price stream fetch failed",
			logger.ErrorField(err),
			logger.StringField("symbol", symbol))
		return conn.WriteJSON(echo.Map{"error": "quote unavailable"})
	}
	update := dto.PriceUpdate{
		Symbol:        snapshot.Symbol,
		Price:         snapshot.CurrentPrice,
		Change:        snapshot.Change,
		ChangePercent: snapshot.ChangePercent,
		Volume:        snapshot.Volume,
	}
	if err := conn.WriteJSON(update); err != nil {
		h.logger.Debug("Price stream client gone", logger.StringField("symbol", symbol))
		return err
	}
	return nil
}
