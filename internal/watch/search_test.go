package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"
)

func newTestSearch(api *fakeAPI, presenter Presenter) *SearchController {
	return NewSearchController(api, presenter, logger.NewNop(), WithPollInterval(time.Hour))
}

func TestSearchBlankInputIsNoop(t *testing.T) {
	api := &fakeAPI{}
	presenter := &eventPresenter{}
	ctrl := newTestSearch(api, presenter)

	ctrl.Search(context.Background(), "")
	ctrl.Search(context.Background(), "   ")

	assert.Zero(t, api.searchCallCount())
	assert.Empty(t, presenter.eventLog())
	_, active := ctrl.Poller().Active()
	assert.False(t, active)
}

func TestSearchNormalizesSymbol(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestSearch(api, &eventPresenter{})
	defer ctrl.StopPoll()

	ctrl.Search(context.Background(), "  tcs ")

	require.Equal(t, 1, api.searchCallCount())
	assert.Equal(t, "TCS", api.searchCalls[0])
}

func TestSearchRendersQuoteBeforeNews(t *testing.T) {
	api := &fakeAPI{}
	presenter := &eventPresenter{}
	ctrl := newTestSearch(api, presenter)
	defer ctrl.StopPoll()

	ctrl.Search(context.Background(), "TCS")

	assert.Equal(t, []string{"quote:TCS", "news:TCS"}, presenter.eventLog())
}

func TestSearchStartsPollOnSuccess(t *testing.T) {
	ctrl := newTestSearch(&fakeAPI{}, &eventPresenter{})
	defer ctrl.StopPoll()

	ctrl.Search(context.Background(), "TCS")

	symbol, active := ctrl.Poller().Active()
	assert.True(t, active)
	assert.Equal(t, "TCS", symbol)
}

func TestSearchFailureKeepsDataAndPollUntouched(t *testing.T) {
	api := &fakeAPI{
		searchFn: func(symbol string) (*entity.QuoteSnapshot, error) {
			return nil, errors.New("connection refused")
		},
	}
	presenter := &eventPresenter{}
	ctrl := newTestSearch(api, presenter)

	ctrl.Search(context.Background(), "TCS")

	assert.Equal(t, []string{"error"}, presenter.eventLog())
	assert.Equal(t, []string{genericSearchError}, presenter.errorLog())
	_, active := ctrl.Poller().Active()
	assert.False(t, active)
}

func TestSearchPrefersServerErrorMessage(t *testing.T) {
	api := &fakeAPI{
		searchFn: func(symbol string) (*entity.QuoteSnapshot, error) {
			return nil, &APIError{StatusCode: 404, Message: "Stock not found"}
		},
	}
	presenter := &eventPresenter{}
	ctrl := newTestSearch(api, presenter)

	ctrl.Search(context.Background(), "NOSUCH")

	assert.Equal(t, []string{"Stock not found"}, presenter.errorLog())
}

func TestSearchBusyReleasedOnEveryPath(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeAPI
	}{
		{name: "success", api: &fakeAPI{}},
		{
			name: "quote failure",
			api: &fakeAPI{searchFn: func(string) (*entity.QuoteSnapshot, error) {
				return nil, errors.New("boom")
			}},
		},
		{
			name: "news failure",
			api: &fakeAPI{newsFn: func(string) ([]entity.NewsItem, error) {
				return nil, errors.New("boom")
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presenter := &eventPresenter{}
			ctrl := newTestSearch(tt.api, presenter)
			defer ctrl.StopPoll()

			ctrl.Search(context.Background(), "TCS")

			busy := presenter.busyLog()
			require.Len(t, busy, 2)
			assert.True(t, busy[0])
			assert.False(t, busy[1])
		})
	}
}

func TestSearchNewsFailureStillShowsQuote(t *testing.T) {
	api := &fakeAPI{
		newsFn: func(string) ([]entity.NewsItem, error) {
			return nil, errors.New("feed down")
		},
	}
	presenter := &eventPresenter{}
	ctrl := newTestSearch(api, presenter)
	defer ctrl.StopPoll()

	ctrl.Search(context.Background(), "TCS")

	// The failed news fetch renders an empty panel, never an error.
	assert.Equal(t, []string{"quote:TCS", "news:TCS"}, presenter.eventLog())
	assert.Empty(t, presenter.errorLog())
}

// fakeNotifier records alert messages.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) SendMessage(text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return nil
}

func (n *fakeNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// priceAPI serves a mutable price for every symbol.
type priceAPI struct {
	fakeAPI
	mu    sync.Mutex
	price float64
}

func newPriceAPI(price float64) *priceAPI {
	api := &priceAPI{price: price}
	api.searchFn = func(symbol string) (*entity.QuoteSnapshot, error) {
		api.mu.Lock()
		defer api.mu.Unlock()
		return &entity.QuoteSnapshot{Symbol: symbol, CurrentPrice: api.price}, nil
	}
	return api
}

func (a *priceAPI) setPrice(price float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.price = price
}

func TestPriceAlertSentWhenMoveExceedsThreshold(t *testing.T) {
	api := newPriceAPI(100)
	notifier := &fakeNotifier{}
	ctrl := NewSearchController(api, &eventPresenter{}, logger.NewNop(),
		WithPollInterval(time.Hour), WithPriceAlerts(notifier, 5))
	defer ctrl.StopPoll()

	ctrl.Search(context.Background(), "TCS")
	api.setPrice(110)
	ctrl.Search(context.Background(), "TCS")

	require.Eventually(t, func() bool {
		return len(notifier.sent()) == 1
	}, time.Second, 5*time.Millisecond)
	msg := notifier.sent()[0]
	assert.Contains(t, msg, "*TCS*")
	assert.Contains(t, msg, "up 10.00%")
}

func TestPriceAlertSkippedBelowThreshold(t *testing.T) {
	api := newPriceAPI(100)
	notifier := &fakeNotifier{}
	ctrl := NewSearchController(api, &eventPresenter{}, logger.NewNop(),
		WithPollInterval(time.Hour), WithPriceAlerts(notifier, 5))
	defer ctrl.StopPoll()

	ctrl.Search(context.Background(), "TCS")
	api.setPrice(102)
	ctrl.Search(context.Background(), "TCS")

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, notifier.sent())
}

func TestPriceAlertSkippedOnFirstObservation(t *testing.T) {
	api := newPriceAPI(100)
	notifier := &fakeNotifier{}
	ctrl := NewSearchController(api, &eventPresenter{}, logger.NewNop(),
		WithPollInterval(time.Hour), WithPriceAlerts(notifier, 5))
	defer ctrl.StopPoll()

	ctrl.Search(context.Background(), "TCS")

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, notifier.sent())
}

func TestPollTickDoesNotRestartPoller(t *testing.T) {
	api := &fakeAPI{}
	presenter := &eventPresenter{}
	ctrl := NewSearchController(api, presenter, logger.NewNop(), WithPollInterval(5*time.Millisecond))
	defer ctrl.StopPoll()

	ctrl.Search(context.Background(), "TCS")

	// Several ticks land; each runs the same pipeline against the same
	// single poller.
	require.Eventually(t, func() bool {
		return api.searchCallCount() >= 3
	}, time.Second, 5*time.Millisecond)

	symbol, active := ctrl.Poller().Active()
	assert.True(t, active)
	assert.Equal(t, "TCS", symbol)
}

func TestNewSearchSupersedesPollForOldSymbol(t *testing.T) {
	api := &fakeAPI{}
	ctrl := NewSearchController(api, &eventPresenter{}, logger.NewNop(), WithPollInterval(5*time.Millisecond))
	defer ctrl.StopPoll()

	ctrl.Search(context.Background(), "TCS")
	ctrl.Search(context.Background(), "INFY")

	symbol, active := ctrl.Poller().Active()
	require.True(t, active)
	assert.Equal(t, "INFY", symbol)

	// After the switch only INFY keeps refreshing.
	require.Eventually(t, func() bool {
		return api.searchCallCount() >= 4
	}, time.Second, 5*time.Millisecond)
	baseline := api.searchCallCount()
	time.Sleep(20 * time.Millisecond)
	for _, s := range api.searchCallsSnapshot()[baseline:] {
		assert.Equal(t, "INFY", s)
	}
}
