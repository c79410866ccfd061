package service

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/internal/server/repository"
	"golang-stock-dashboard/pkg/logger"
)

// MinQueryLength is the shortest input that triggers an index query.
// Anything shorter returns an empty list without touching the index.
const MinQueryLength = 2

// SuggestionService serves typeahead suggestions.
type SuggestionService interface {
	Suggest(ctx context.Context, query string) ([]entity.StockSuggestion, error)
}

// NewSuggestionService creates a new suggestion service with an in-process
// result cache, since bursts of typing repeat the same prefixes.
func NewSuggestionService(suggestionRepo repository.SuggestionRepository, maxResults int, cacheTTL time.Duration, log *logger.Logger) SuggestionService {
	return &suggestionService{
		suggestionRepo: suggestionRepo,
		maxResults:     maxResults,
		resultCache:    cache.New(cacheTTL, 2*cacheTTL),
		logger:         log,
	}
}

type suggestionService struct {
	suggestionRepo repository.SuggestionRepository
	maxResults     int
	resultCache    *cache.Cache
	logger         *logger.Logger
}

func (s *suggestionService) Suggest(_ context.Context, query string) ([]entity.StockSuggestion, error) {
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		return []entity.StockSuggestion{}, nil
	}

	cacheKey := strings.ToLower(query)
	if cached, found := s.resultCache.Get(cacheKey); found {
		return cached.([]entity.StockSuggestion), nil
	}

	suggestions, err := s.suggestionRepo.Search(query, s.maxResults)
	if err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []entity.StockSuggestion{}
	}

	s.resultCache.Set(cacheKey, suggestions, cache.DefaultExpiration)
	return suggestions, nil
}
