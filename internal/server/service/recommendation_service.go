package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/internal/server/config"
	"golang-stock-dashboard/internal/server/repository"
	"golang-stock-dashboard/pkg/logger"
)

const (
	// MinRecommendationScore is the cut below which a symbol is not worth
	// surfacing.
	MinRecommendationScore = 40

	// MaxRecommendations caps the returned list.
	MaxRecommendations = 10
)

// RecommendationService screens the stock universe against a user profile.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, profile entity.UserProfile) ([]entity.RecommendationResult, error)
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(
	quoteService QuoteService,
	cacheRepo repository.QuoteCacheRepository,
	cfg *config.Config,
	log *logger.Logger,
) RecommendationService {
	return &recommendationService{
		quoteService: quoteService,
		cacheRepo:    cacheRepo,
		universe:     repository.ScreeningUniverse(),
		cfg:          cfg,
		logger:       log,
	}
}

type recommendationService struct {
	quoteService QuoteService
	cacheRepo    repository.QuoteCacheRepository
	universe     []string
	cfg          *config.Config
	logger       *logger.Logger
}

// GetRecommendations scores every symbol in the screening universe against
// the profile, keeps affordable promising ones, and returns the top ten by
// score. Results are cached per profile until the profile changes or the
// cache expires.
func (s *recommendationService) GetRecommendations(ctx context.Context, profile entity.UserProfile) ([]entity.RecommendationResult, error) {
	profile = profile.Normalized()
	profileKey := hashProfile(profile)

	if cached, found, err := s.cacheRepo.GetRecommendations(ctx, profileKey); err != nil {
		s.logger.Warn("Recommendation cache read failed", logger.ErrorField(err))
	} else if found {
		return cached, nil
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []entity.RecommendationResult
	)
	sem := make(chan struct{}, s.cfg.Recommendation.MaxConcurrent)

	for _, symbol := range s.universe {
		wg.Add(1)
		sem <- struct{}{}
		go func(symbol string) {
			defer wg.Done()
			defer func() { <-sem }()

			snapshot, err := s.quoteService.Search(ctx, symbol)
			if err != nil {
				// A single failing symbol never fails the whole screen.
				s.logger.Debug("Skipping symbol in recommendation screen",
					logger.StringField("symbol", symbol), logger.ErrorField(err))
				return
			}

			if snapshot.CurrentPrice <= 0 || snapshot.CurrentPrice > float64(profile.Budget) {
				return
			}

			rec := Score(snapshot, profile)
			if rec.Score < MinRecommendationScore {
				return
			}

			mu.Lock()
			results = append(results, entity.RecommendationResult{
				Symbol:           snapshot.Symbol,
				Name:             snapshot.Name,
				CurrentPrice:     snapshot.CurrentPrice,
				SharesAffordable: int64(float64(profile.Budget) / snapshot.CurrentPrice),
				Recommendation:   rec,
			})
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Recommendation.Score > results[j].Recommendation.Score
	})
	if len(results) > MaxRecommendations {
		results = results[:MaxRecommendations]
	}
	if results == nil {
		results = []entity.RecommendationResult{}
	}

	if err := s.cacheRepo.SetRecommendations(ctx, profileKey, results, s.cfg.Recommendation.CacheTTL); err != nil {
		s.logger.Warn("Recommendation cache write failed", logger.ErrorField(err))
	}

	return results, nil
}

// Score rates a snapshot against a profile using trend, momentum, band and
// volume checks. The published score is clamped to [0,100]; the rating is
// assigned before clamping so a heavy risk penalty still downgrades it.
func Score(snapshot *entity.QuoteSnapshot, profile entity.UserProfile) entity.Recommendation {
	ind := snapshot.Indicators
	if ind == nil {
		return entity.Recommendation{Rating: entity.RatingSell, RiskLevel: entity.RiskLevelMedium, RiskMatch: true, Reasons: []string{}}
	}

	score := 0
	reasons := []string{}
	close := snapshot.CurrentPrice

	if ind.SMA20 > 0 && close > ind.SMA20 {
		score += 20
		reasons = append(reasons, "Price above 20-day moving average (Bullish)")
	}
	if ind.SMA50 > 0 && close > ind.SMA50 {
		score += 15
		reasons = append(reasons, "Price above 50-day moving average (Strong trend)")
	}

	switch {
	case ind.RSI > 30 && ind.RSI < 70:
		score += 20
		reasons = append(reasons, fmt.Sprintf("RSI at %.2f - Normal range", ind.RSI))
	case ind.RSI <= 30:
		score += 25
		reasons = append(reasons, fmt.Sprintf("RSI at %.2f - Oversold (Potential buy)", ind.RSI))
	}

	if ind.BBLower > 0 && close < ind.BBLower {
		score += 20
		reasons = append(reasons, "Price below lower Bollinger Band (Oversold)")
	}

	if ind.AvgVolume > 0 && float64(snapshot.Volume) > ind.AvgVolume*1.5 {
		score += 15
		reasons = append(reasons, "High volume activity")
	}

	riskLevel := riskLevelFromVolatility(ind.Volatility)

	riskMatch := true
	if profile.RiskTolerance == entity.RiskToleranceLow && riskLevel == entity.RiskLevelHigh {
		riskMatch = false
		score -= 30
	}

	rating := ratingFromScore(score)

	return entity.Recommendation{
		Score:      clampScore(score),
		Rating:     rating,
		Reasons:    reasons,
		RiskLevel:  riskLevel,
		Volatility: ind.Volatility,
		RiskMatch:  riskMatch,
	}
}

func riskLevelFromVolatility(volatility float64) string {
	switch {
	case volatility < 20:
		return entity.RiskLevelLow
	case volatility < 40:
		return entity.RiskLevelMedium
	default:
		return entity.RiskLevelHigh
	}
}

func ratingFromScore(score int) string {
	switch {
	case score >= 70:
		return entity.RatingStrongBuy
	case score >= 50:
		return entity.RatingBuy
	case score >= 30:
		return entity.RatingHold
	default:
		return entity.RatingSell
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func hashProfile(profile entity.UserProfile) string {
	raw, _ := json.Marshal(profile)
	sum := md5.Sum(raw)
	return hex.EncodeToString(sum[:])
}
