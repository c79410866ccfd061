package watch

import (
	"context"
	"sync"
	"time"

	"golang-stock-dashboard/pkg/logger"
)

// DefaultPollInterval is how often an active symbol is re-fetched.
const DefaultPollInterval = 30 * time.Second

// Poller owns the single refresh timer. Start cancels any running poll
// before starting the next one, so at most one is ever live; Stop with
// nothing running is a safe no-op.
type Poller struct {
	interval time.Duration
	refresh  func(ctx context.Context, symbol string)
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	symbol string
}

// NewPoller creates a poller that invokes refresh every interval for
// the started symbol.
func NewPoller(interval time.Duration, log *logger.Logger, refresh func(ctx context.Context, symbol string)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		interval: interval,
		refresh:  refresh,
		logger:   log,
	}
}

// Start begins polling the symbol, replacing any poll already running.
func (p *Poller) Start(symbol string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.symbol = symbol

	p.logger.Debug("Refresh poll started", logger.StringField("symbol", symbol))
	go p.loop(ctx, symbol)
}

// Stop cancels the live poll, if any.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	p.symbol = ""
}

// Active returns the symbol being polled and whether a poll is running.
func (p *Poller) Active() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.symbol, p.cancel != nil
}

func (p *Poller) loop(ctx context.Context, symbol string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Refresh poll stopped", logger.StringField("symbol", symbol))
			return
		case <-ticker.C:
			p.refresh(ctx, symbol)
		}
	}
}
