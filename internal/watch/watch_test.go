package watch

import (
	"context"
	"sync"

	"golang-stock-dashboard/internal/entity"
)

// fakeAPI is a scriptable API implementation shared by the controller
// tests. Per-method hooks override the canned responses.
type fakeAPI struct {
	mu sync.Mutex

	suggestFn func(query string) ([]entity.StockSuggestion, error)
	searchFn  func(symbol string) (*entity.QuoteSnapshot, error)
	newsFn    func(symbol string) ([]entity.NewsItem, error)
	recsFn    func(profile entity.UserProfile) ([]entity.RecommendationResult, error)

	suggestCalls []string
	searchCalls  []string
	newsCalls    []string
	recsCalls    int
}

func (f *fakeAPI) Suggest(_ context.Context, query string) ([]entity.StockSuggestion, error) {
	f.mu.Lock()
	f.suggestCalls = append(f.suggestCalls, query)
	fn := f.suggestFn
	f.mu.Unlock()
	if fn != nil {
		return fn(query)
	}
	return []entity.StockSuggestion{{Symbol: query, Exchange: "NSE"}}, nil
}

func (f *fakeAPI) Search(_ context.Context, symbol string) (*entity.QuoteSnapshot, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, symbol)
	fn := f.searchFn
	f.mu.Unlock()
	if fn != nil {
		return fn(symbol)
	}
	return &entity.QuoteSnapshot{Symbol: symbol, CurrentPrice: 100}, nil
}

func (f *fakeAPI) News(_ context.Context, symbol string) ([]entity.NewsItem, error) {
	f.mu.Lock()
	f.newsCalls = append(f.newsCalls, symbol)
	fn := f.newsFn
	f.mu.Unlock()
	if fn != nil {
		return fn(symbol)
	}
	return nil, nil
}

func (f *fakeAPI) Recommendations(_ context.Context, profile entity.UserProfile) ([]entity.RecommendationResult, error) {
	f.mu.Lock()
	f.recsCalls++
	fn := f.recsFn
	f.mu.Unlock()
	if fn != nil {
		return fn(profile)
	}
	return []entity.RecommendationResult{}, nil
}

func (f *fakeAPI) suggestCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.suggestCalls)
}

func (f *fakeAPI) searchCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

func (f *fakeAPI) searchCallsSnapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searchCalls...)
}

// eventPresenter records everything the pipeline rendered, in order.
type eventPresenter struct {
	mu     sync.Mutex
	events []string
	quotes []*entity.QuoteSnapshot
	errors []string
	busy   []bool
}

func (p *eventPresenter) ShowQuote(s *entity.QuoteSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "quote:"+s.Symbol)
	p.quotes = append(p.quotes, s)
}

func (p *eventPresenter) ShowNews(symbol string, items []entity.NewsItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "news:"+symbol)
}

func (p *eventPresenter) ShowError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "error")
	p.errors = append(p.errors, message)
}

func (p *eventPresenter) SetBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = append(p.busy, busy)
}

func (p *eventPresenter) eventLog() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func (p *eventPresenter) busyLog() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]bool(nil), p.busy...)
}

func (p *eventPresenter) errorLog() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.errors...)
}
