package watch

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"
)

// NoRecommendationsMessage is rendered when the server returns an empty
// list, instead of leaving a blank region.
const NoRecommendationsMessage = "No recommendations match your budget and risk profile right now."

const genericRecommendationError = "Failed to fetch recommendations. Please try again."

// RecommendationPresenter receives recommendation panel output.
type RecommendationPresenter interface {
	ShowRecommendations(results []entity.RecommendationResult)
	ShowMessage(message string)
	ShowError(message string)
	SetBusy(busy bool)
}

// RecommendationPanel requests recommendations for the stored profile
// and renders the result list wholesale. While a request is in flight
// further requests are rejected; the busy flag is released on every
// exit path.
type RecommendationPanel struct {
	api       API
	store     *ProfileStore
	presenter RecommendationPresenter
	logger    *logger.Logger

	mu   sync.Mutex
	busy bool
}

// NewRecommendationPanel wires the panel to the profile store: saving a
// new profile clears any rendered results, since they were computed
// against the old one.
func NewRecommendationPanel(api API, store *ProfileStore, presenter RecommendationPresenter, log *logger.Logger) *RecommendationPanel {
	p := &RecommendationPanel{
		api:       api,
		store:     store,
		presenter: presenter,
		logger:    log,
	}
	store.OnChange(p.Clear)
	return p
}

// Request submits the current profile and renders the response.
func (p *RecommendationPanel) Request(ctx context.Context) {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return
	}
	p.busy = true
	p.mu.Unlock()

	p.presenter.SetBusy(true)
	defer func() {
		p.presenter.SetBusy(false)
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	profile := p.store.Load()
	results, err := p.api.Recommendations(ctx, profile)
	if err != nil {
		p.logger.Warn("Recommendation fetch failed", logger.ErrorField(err))
		p.presenter.ShowError(recommendationErrorMessage(err))
		return
	}
	if len(results) == 0 {
		p.presenter.ShowMessage(NoRecommendationsMessage)
		return
	}
	p.presenter.ShowRecommendations(results)
}

// Clear drops any rendered results.
func (p *RecommendationPanel) Clear() {
	p.presenter.ShowRecommendations(nil)
}

// RatingClass derives a style class from a rating label: lowercased
// with spaces turned into hyphens ("Strong Buy" -> "strong-buy").
func RatingClass(rating string) string {
	return strings.ReplaceAll(strings.ToLower(rating), " ", "-")
}

func recommendationErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericRecommendationError
}
