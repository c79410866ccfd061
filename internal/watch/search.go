package watch

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/telegram"
	"golang-stock-dashboard/pkg/utils"
)

// genericSearchError is shown when the server gave no usable message.
const genericSearchError = "Failed to fetch stock data. Please try again."

// Presenter receives everything the search pipeline wants shown.
type Presenter interface {
	ShowQuote(snapshot *entity.QuoteSnapshot)
	ShowNews(symbol string, items []entity.NewsItem)
	ShowError(message string)
	SetBusy(busy bool)
}

// SearchController runs the quote pipeline for a symbol: fetch, render,
// news, and the refresh poll. Quote display is issued before the news
// fetch; a failed search leaves the previously rendered data untouched.
// Each fetch carries a request token and only the latest one may render,
// so a stale poll response never overwrites a newer manual search.
type SearchController struct {
	api       API
	presenter Presenter
	logger    *logger.Logger
	notifier  telegram.Notifier
	alertMove float64
	poller    *Poller

	mu        sync.Mutex
	token     uint64
	lastPrice map[string]float64
}

// SearchOption customizes a SearchController.
type SearchOption func(*SearchController)

// WithPollInterval sets the refresh poll period.
func WithPollInterval(d time.Duration) SearchOption {
	return func(c *SearchController) {
		c.poller = NewPoller(d, c.logger, c.refresh)
	}
}

// WithPriceAlerts sends a Telegram message when a refreshed price has
// moved at least movePercent since the last observation.
func WithPriceAlerts(notifier telegram.Notifier, movePercent float64) SearchOption {
	return func(c *SearchController) {
		c.notifier = notifier
		c.alertMove = movePercent
	}
}

// NewSearchController creates the search pipeline around the given
// presenter.
func NewSearchController(api API, presenter Presenter, log *logger.Logger, opts ...SearchOption) *SearchController {
	c := &SearchController{
		api:       api,
		presenter: presenter,
		logger:    log,
		lastPrice: make(map[string]float64),
	}
	c.poller = NewPoller(DefaultPollInterval, log, c.refresh)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search normalizes and runs a full search for the symbol, then
// (re)starts the refresh poll for it. Empty input is a no-op.
func (c *SearchController) Search(ctx context.Context, symbolText string) {
	symbol := strings.ToUpper(strings.TrimSpace(symbolText))
	if symbol == "" {
		return
	}
	if c.run(ctx, symbol) {
		c.poller.Start(symbol)
	}
}

// refresh is the poll-tick variant: same pipeline, but it never touches
// the poller, so a tick cannot reset its own timer.
func (c *SearchController) refresh(ctx context.Context, symbol string) {
	c.run(ctx, symbol)
}

// StopPoll cancels the refresh poll.
func (c *SearchController) StopPoll() {
	c.poller.Stop()
}

// Poller exposes the refresh poll handle.
func (c *SearchController) Poller() *Poller {
	return c.poller
}

// run executes one fetch-and-render cycle and reports whether it
// succeeded. The busy indicator is released on every exit path.
func (c *SearchController) run(ctx context.Context, symbol string) (ok bool) {
	c.mu.Lock()
	c.token++
	token := c.token
	c.mu.Unlock()

	c.presenter.SetBusy(true)
	defer c.presenter.SetBusy(false)

	snapshot, err := c.api.Search(ctx, symbol)
	if err != nil {
		c.logger.Warn("Quote fetch failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
		if c.stale(token) {
			return false
		}
		c.presenter.ShowError(searchErrorMessage(err))
		return false
	}
	if c.stale(token) {
		return false
	}

	c.presenter.ShowQuote(snapshot)
	c.maybeAlert(snapshot)

	items, err := c.api.News(ctx, symbol)
	if err != nil {
		c.logger.Warn("News fetch failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
		items = nil
	}
	if !c.stale(token) {
		c.presenter.ShowNews(symbol, items)
	}
	return true
}

func (c *SearchController) stale(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token != c.token
}

// maybeAlert notifies on large moves between successive observations of
// the same symbol.
func (c *SearchController) maybeAlert(snapshot *entity.QuoteSnapshot) {
	if !utils.IsFinite(snapshot.CurrentPrice) {
		return
	}

	c.mu.Lock()
	prev, seen := c.lastPrice[snapshot.Symbol]
	c.lastPrice[snapshot.Symbol] = snapshot.CurrentPrice
	c.mu.Unlock()

	if c.notifier == nil || !seen || prev == 0 {
		return
	}
	move := (snapshot.CurrentPrice - prev) / prev * 100
	if math.Abs(move) < c.alertMove {
		return
	}

	symbol := snapshot.Symbol
	price := snapshot.CurrentPrice
	utils.GoSafe(func() {
		msg := telegram.FormatPriceAlert(symbol, prev, price, move)
		if err := c.notifier.SendMessage(msg); err != nil {
			c.logger.Warn("Price alert send failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
		}
	})
}

// searchErrorMessage prefers the server-provided error text when the
// response carried one.
func searchErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericSearchError
}
