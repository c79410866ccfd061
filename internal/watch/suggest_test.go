package watch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"
)

// commitRecorder collects committed symbols.
type commitRecorder struct {
	mu      sync.Mutex
	commits []string
}

func (r *commitRecorder) commit(symbol string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, symbol)
}

func (r *commitRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.commits...)
}

func newTestSuggest(t *testing.T, api *fakeAPI) (*SuggestController, *commitRecorder) {
	t.Helper()
	rec := &commitRecorder{}
	ctrl := NewSuggestController(api, logger.NewNop(), nil, rec.commit)
	ctrl.SetQuietPeriod(5 * time.Millisecond)
	return ctrl, rec
}

// settle waits out the debounce and any in-flight fetch.
func settle(ctrl *SuggestController) {
	time.Sleep(30 * time.Millisecond)
	ctrl.Wait()
}

func TestShortInputNeverFetches(t *testing.T) {
	api := &fakeAPI{}
	ctrl, _ := newTestSuggest(t, api)

	for _, input := range []string{"", "t", " r "} {
		ctrl.Input(input)
	}
	settle(ctrl)

	assert.Zero(t, api.suggestCallCount())
	assert.Empty(t, ctrl.Session().Results)
	assert.Equal(t, -1, ctrl.Session().ActiveIndex)
}

func TestTypingBurstIssuesOneFetchForFinalText(t *testing.T) {
	api := &fakeAPI{}
	ctrl, _ := newTestSuggest(t, api)

	for _, input := range []string{"tc", "tcs", "tata", "tatam"} {
		ctrl.Input(input)
	}
	settle(ctrl)

	require.Equal(t, 1, api.suggestCallCount())
	assert.Equal(t, "tatam", api.suggestCalls[0])
	assert.Equal(t, "tatam", ctrl.Session().Query)
}

func TestFetchReplacesResultsAndResetsHighlight(t *testing.T) {
	api := &fakeAPI{
		suggestFn: func(query string) ([]entity.StockSuggestion, error) {
			return []entity.StockSuggestion{
				{Symbol: "TCS", Exchange: "NSE", Name: "Tata Consultancy Services"},
				{Symbol: "TATASTEEL", Exchange: "NSE"},
			}, nil
		},
	}
	ctrl, _ := newTestSuggest(t, api)

	ctrl.Input("ta")
	settle(ctrl)
	ctrl.Navigate(Down)
	require.Equal(t, 0, ctrl.Session().ActiveIndex)

	// The next completed fetch resets the highlight.
	ctrl.Input("tat")
	settle(ctrl)

	session := ctrl.Session()
	assert.Len(t, session.Results, 2)
	assert.Equal(t, -1, session.ActiveIndex)
}

func TestNavigateWrapsBothDirections(t *testing.T) {
	api := &fakeAPI{
		suggestFn: func(string) ([]entity.StockSuggestion, error) {
			return []entity.StockSuggestion{{Symbol: "A"}, {Symbol: "B"}, {Symbol: "C"}}, nil
		},
	}
	ctrl, _ := newTestSuggest(t, api)
	ctrl.Input("ab")
	settle(ctrl)

	// Down from no selection lands on the first entry.
	ctrl.Navigate(Down)
	assert.Equal(t, 0, ctrl.Session().ActiveIndex)

	// N more steps walk all the way around.
	for i := 0; i < 3; i++ {
		ctrl.Navigate(Down)
	}
	assert.Equal(t, 0, ctrl.Session().ActiveIndex)

	// Up from the first entry wraps to the last.
	ctrl.Navigate(Up)
	assert.Equal(t, 2, ctrl.Session().ActiveIndex)
}

func TestNavigateEmptyListIsNoop(t *testing.T) {
	ctrl, _ := newTestSuggest(t, &fakeAPI{})

	ctrl.Navigate(Down)
	ctrl.Navigate(Up)

	assert.Equal(t, -1, ctrl.Session().ActiveIndex)
}

func TestPickCommitsBareSymbolAndCloses(t *testing.T) {
	api := &fakeAPI{
		suggestFn: func(string) ([]entity.StockSuggestion, error) {
			return []entity.StockSuggestion{
				{Symbol: "TCS", Exchange: "NSE"},
				{Symbol: "TATASTEEL", Exchange: "BSE"},
			}, nil
		},
	}
	ctrl, rec := newTestSuggest(t, api)
	ctrl.Input("ta")
	settle(ctrl)

	ctrl.Pick(1)

	assert.Equal(t, []string{"TATASTEEL"}, rec.all())
	assert.False(t, ctrl.Session().Open())
}

func TestPickInvalidIndexIsNoop(t *testing.T) {
	api := &fakeAPI{
		suggestFn: func(string) ([]entity.StockSuggestion, error) {
			return []entity.StockSuggestion{{Symbol: "TCS"}}, nil
		},
	}
	ctrl, rec := newTestSuggest(t, api)
	ctrl.Input("tc")
	settle(ctrl)

	ctrl.Pick(-1)
	ctrl.Pick(5)

	assert.Empty(t, rec.all())
	assert.True(t, ctrl.Session().Open())
}

func TestEnterCommitsHighlightedSuggestion(t *testing.T) {
	api := &fakeAPI{
		suggestFn: func(string) ([]entity.StockSuggestion, error) {
			return []entity.StockSuggestion{{Symbol: "TCS"}, {Symbol: "TITAN"}}, nil
		},
	}
	ctrl, rec := newTestSuggest(t, api)
	ctrl.Input("t i")
	settle(ctrl)
	ctrl.Navigate(Down)
	ctrl.Navigate(Down)

	ctrl.Enter()

	assert.Equal(t, []string{"TITAN"}, rec.all())
}

func TestEnterWithoutHighlightCommitsRawText(t *testing.T) {
	ctrl, rec := newTestSuggest(t, &fakeAPI{})

	ctrl.Input("RELIANCE")
	ctrl.Enter()
	settle(ctrl)

	assert.Equal(t, []string{"RELIANCE"}, rec.all())
	// Committing cancels the pending debounce fetch.
	assert.Empty(t, ctrl.Session().Results)
}

func TestEscapeClosesWithoutCommit(t *testing.T) {
	api := &fakeAPI{
		suggestFn: func(string) ([]entity.StockSuggestion, error) {
			return []entity.StockSuggestion{{Symbol: "TCS"}}, nil
		},
	}
	ctrl, rec := newTestSuggest(t, api)
	ctrl.Input("tc")
	settle(ctrl)
	require.True(t, ctrl.Session().Open())

	ctrl.Escape()

	assert.False(t, ctrl.Session().Open())
	assert.Empty(t, rec.all())
}

func TestFetchErrorClearsListSilently(t *testing.T) {
	api := &fakeAPI{
		suggestFn: func(string) ([]entity.StockSuggestion, error) {
			return nil, assert.AnError
		},
	}
	ctrl, _ := newTestSuggest(t, api)

	ctrl.Input("tc")
	settle(ctrl)

	assert.Empty(t, ctrl.Session().Results)
}

func TestShortInputDiscardsInFlightResponse(t *testing.T) {
	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})
	api := &fakeAPI{}
	api.suggestFn = func(query string) ([]entity.StockSuggestion, error) {
		close(slowStarted)
		<-slowRelease
		return []entity.StockSuggestion{{Symbol: "STALE"}}, nil
	}
	ctrl, _ := newTestSuggest(t, api)

	ctrl.Input("tc")
	<-slowStarted // request is in flight and blocked

	// Deleting down to a single character empties the dropdown.
	ctrl.Input("t")
	require.Empty(t, ctrl.Session().Results)

	// The response for the abandoned query lands afterwards and must
	// not repopulate what the user just cleared.
	close(slowRelease)
	ctrl.Wait()

	assert.Empty(t, ctrl.Session().Results)
	assert.Equal(t, -1, ctrl.Session().ActiveIndex)
}

func TestSlowEarlyResponseCannotOverwriteLaterOne(t *testing.T) {
	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})
	api := &fakeAPI{}
	api.suggestFn = func(query string) ([]entity.StockSuggestion, error) {
		if query == "tc" {
			close(slowStarted)
			<-slowRelease
			return []entity.StockSuggestion{{Symbol: "STALE"}}, nil
		}
		return []entity.StockSuggestion{{Symbol: "FRESH"}}, nil
	}
	ctrl, _ := newTestSuggest(t, api)

	ctrl.Input("tc")
	<-slowStarted // first request is in flight and blocked

	ctrl.Input("tcs")
	require.Eventually(t, func() bool {
		s := ctrl.Session()
		return s.Query == "tcs" && len(s.Results) == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, "FRESH", ctrl.Session().Results[0].Symbol)

	// Now the stale response lands and must be discarded.
	close(slowRelease)
	ctrl.Wait()

	assert.Equal(t, "tcs", ctrl.Session().Query)
	assert.Equal(t, "FRESH", ctrl.Session().Results[0].Symbol)
}
