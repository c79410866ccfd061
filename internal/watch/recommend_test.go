package watch

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"
)

type recPresenter struct {
	mu       sync.Mutex
	rendered [][]entity.RecommendationResult
	messages []string
	errors   []string
	busy     []bool
}

func (p *recPresenter) ShowRecommendations(results []entity.RecommendationResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rendered = append(p.rendered, results)
}

func (p *recPresenter) ShowMessage(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
}

func (p *recPresenter) ShowError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors = append(p.errors, message)
}

func (p *recPresenter) SetBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = append(p.busy, busy)
}

func newTestPanel(t *testing.T, api *fakeAPI) (*RecommendationPanel, *ProfileStore, *recPresenter) {
	t.Helper()
	store, err := OpenProfileStore(filepath.Join(t.TempDir(), "watch.db"), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	presenter := &recPresenter{}
	return NewRecommendationPanel(api, store, presenter, logger.NewNop()), store, presenter
}

func TestRequestSubmitsStoredProfile(t *testing.T) {
	var submitted entity.UserProfile
	api := &fakeAPI{
		recsFn: func(profile entity.UserProfile) ([]entity.RecommendationResult, error) {
			submitted = profile
			return []entity.RecommendationResult{{Symbol: "TCS"}}, nil
		},
	}
	panel, store, presenter := newTestPanel(t, api)

	saved := entity.DefaultProfile()
	saved.Budget = 300000
	require.NoError(t, store.Save(saved))

	panel.Request(context.Background())

	assert.Equal(t, int64(300000), submitted.Budget)
	// One clear from the save, one render from the request.
	require.Len(t, presenter.rendered, 2)
	assert.Equal(t, "TCS", presenter.rendered[1][0].Symbol)
}

func TestEmptyResultRendersMessage(t *testing.T) {
	panel, _, presenter := newTestPanel(t, &fakeAPI{})

	panel.Request(context.Background())

	require.Len(t, presenter.messages, 1)
	assert.Equal(t, NoRecommendationsMessage, presenter.messages[0])
	assert.Empty(t, presenter.rendered)
}

func TestRequestErrorPrefersServerMessage(t *testing.T) {
	api := &fakeAPI{
		recsFn: func(entity.UserProfile) ([]entity.RecommendationResult, error) {
			return nil, &APIError{StatusCode: 500, Message: "screening unavailable"}
		},
	}
	panel, _, presenter := newTestPanel(t, api)

	panel.Request(context.Background())

	assert.Equal(t, []string{"screening unavailable"}, presenter.errors)
}

func TestRequestBusyReleasedOnFailure(t *testing.T) {
	api := &fakeAPI{
		recsFn: func(entity.UserProfile) ([]entity.RecommendationResult, error) {
			return nil, assert.AnError
		},
	}
	panel, _, presenter := newTestPanel(t, api)

	panel.Request(context.Background())
	panel.Request(context.Background())

	// Both requests ran: busy was released after the first failure.
	assert.Equal(t, []bool{true, false, true, false}, presenter.busy)
	assert.Equal(t, 2, api.recsCalls)
}

func TestProfileSaveClearsRenderedRecommendations(t *testing.T) {
	api := &fakeAPI{
		recsFn: func(entity.UserProfile) ([]entity.RecommendationResult, error) {
			return []entity.RecommendationResult{{Symbol: "TCS"}}, nil
		},
	}
	panel, store, presenter := newTestPanel(t, api)

	panel.Request(context.Background())
	require.Len(t, presenter.rendered, 1)
	require.NotEmpty(t, presenter.rendered[0])

	require.NoError(t, store.Save(entity.DefaultProfile()))

	require.Len(t, presenter.rendered, 2)
	assert.Empty(t, presenter.rendered[1])
}

func TestRatingClass(t *testing.T) {
	tests := []struct {
		rating   string
		expected string
	}{
		{rating: "Strong Buy", expected: "strong-buy"},
		{rating: "Buy", expected: "buy"},
		{rating: "Hold", expected: "hold"},
		{rating: "Sell", expected: "sell"},
	}

	for _, tt := range tests {
		t.Run(tt.rating, func(t *testing.T) {
			assert.Equal(t, tt.expected, RatingClass(tt.rating))
		})
	}
}
