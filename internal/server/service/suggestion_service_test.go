package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"
)

type fakeSuggestionRepo struct {
	results []entity.StockSuggestion
	err     error
	calls   int
}

func (f *fakeSuggestionRepo) Search(query string, limit int) ([]entity.StockSuggestion, error) {
	f.calls++
	return f.results, f.err
}

func (f *fakeSuggestionRepo) Close() error { return nil }

func TestSuggestShortQueryIsEmptyWithoutLookup(t *testing.T) {
	repo := &fakeSuggestionRepo{results: []entity.StockSuggestion{{Symbol: "TCS"}}}
	svc := NewSuggestionService(repo, 10, time.Minute, logger.NewNop())

	for _, q := range []string{"", "t", " t "} {
		results, err := svc.Suggest(context.Background(), q)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
	assert.Zero(t, repo.calls)
}

func TestSuggestCachesByNormalizedQuery(t *testing.T) {
	repo := &fakeSuggestionRepo{results: []entity.StockSuggestion{{Symbol: "TCS", Exchange: "NSE"}}}
	svc := NewSuggestionService(repo, 10, time.Minute, logger.NewNop())

	first, err := svc.Suggest(context.Background(), "TCS")
	require.NoError(t, err)

	second, err := svc.Suggest(context.Background(), "tcs")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
}

func TestSuggestNilRepoResultBecomesEmptySlice(t *testing.T) {
	svc := NewSuggestionService(&fakeSuggestionRepo{}, 10, time.Minute, logger.NewNop())

	results, err := svc.Suggest(context.Background(), "tcs")

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSuggestPropagatesRepoError(t *testing.T) {
	svc := NewSuggestionService(&fakeSuggestionRepo{err: errors.New("index closed")}, 10, time.Minute, logger.NewNop())

	_, err := svc.Suggest(context.Background(), "tcs")

	assert.Error(t, err)
}
