package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/internal/indicators"
	"golang-stock-dashboard/internal/server/config"
	"golang-stock-dashboard/internal/server/dto"
	"golang-stock-dashboard/internal/server/repository"
	"golang-stock-dashboard/pkg/common"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/utils"
)

// ErrEmptySymbol is returned when a search is attempted with no symbol.
var ErrEmptySymbol = errors.New("empty symbol")

// QuoteService serves quote snapshots for symbol searches.
type QuoteService interface {
	Search(ctx context.Context, symbol string) (*entity.QuoteSnapshot, error)
	RecentSearches(ctx context.Context, limit int) ([]entity.SearchHistory, error)
}

// NewQuoteService creates a new quote service. historyRepo may be nil;
// search recording is then skipped.
func NewQuoteService(
	yahooRepo repository.YahooFinanceRepository,
	cacheRepo repository.QuoteCacheRepository,
	historyRepo repository.SearchHistoryRepository,
	cfg *config.Config,
	log *logger.Logger,
) QuoteService {
	return &quoteService{
		yahooRepo:   yahooRepo,
		cacheRepo:   cacheRepo,
		historyRepo: historyRepo,
		cfg:         cfg,
		logger:      log,
		now:         utils.TimeNowIST,
	}
}

type quoteService struct {
	yahooRepo   repository.YahooFinanceRepository
	cacheRepo   repository.QuoteCacheRepository
	historyRepo repository.SearchHistoryRepository
	cfg         *config.Config
	logger      *logger.Logger
	now         func() time.Time
}

// Search normalizes the symbol, serves from cache when fresh, and
// otherwise fetches from the NSE listing with a BSE fallback, mirroring
// how Indian symbols resolve across the two exchanges.
func (s *quoteService) Search(ctx context.Context, symbol string) (*entity.QuoteSnapshot, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	if cached, err := s.cacheRepo.Get(ctx, symbol); err != nil {
		s.logger.Warn("Quote cache read failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
	} else if cached != nil {
		return cached, nil
	}

	data, err := s.fetchWithFallback(ctx, symbol)
	if err != nil {
		return nil, err
	}

	snapshot := s.buildSnapshot(data)

	if err := s.cacheRepo.Set(ctx, snapshot, s.cfg.Market.QuoteCacheTTL); err != nil {
		s.logger.Warn("Quote cache write failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
	}
	s.recordSearch(ctx, snapshot)

	return snapshot, nil
}

func (s *quoteService) fetchWithFallback(ctx context.Context, symbol string) (*repository.StockData, error) {
	param := dto.GetStockDataParam{
		Symbol:   symbol,
		Exchange: common.ExchangeNSE,
		Range:    s.cfg.YahooFinance.Range,
		Interval: s.cfg.YahooFinance.Interval,
	}

	data, err := s.yahooRepo.Get(ctx, param)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, repository.ErrSymbolNotFound) {
		return nil, fmt.Errorf("failed to fetch %s: %w", symbol, err)
	}

	param.Exchange = common.ExchangeBSE
	data, err = s.yahooRepo.Get(ctx, param)
	if errors.Is(err, repository.ErrSymbolNotFound) {
		return nil, repository.ErrSymbolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", symbol, err)
	}
	return data, nil
}

func (s *quoteService) buildSnapshot(data *repository.StockData) *entity.QuoteSnapshot {
	ind := indicators.Compute(data.Candles)

	change := data.MarketPrice - data.PreviousClose
	changePercent := 0.0
	if data.PreviousClose != 0 {
		changePercent = change / data.PreviousClose * 100
	}

	week52Low, week52High := data.Week52Low, data.Week52High
	if week52Low == 0 || week52High == 0 {
		week52Low, week52High = candleRange(data.Candles)
	}

	historical := data.Candles
	if max := s.cfg.Market.HistoryCandles; len(historical) > max {
		historical = historical[len(historical)-max:]
	}

	return &entity.QuoteSnapshot{
		Symbol:        data.Symbol,
		Name:          data.Name,
		Exchange:      data.Exchange,
		CurrentPrice:  data.MarketPrice,
		PreviousClose: data.PreviousClose,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        data.Volume,
		Week52Low:     week52Low,
		Week52High:    week52High,
		Indicators:    ind,
		Historical:    historical,
		FetchedAt:     s.now(),
	}
}

func candleRange(candles []entity.Candle) (low, high float64) {
	for _, c := range candles {
		if c.Low > 0 && (low == 0 || c.Low < low) {
			low = c.Low
		}
		if c.High > high {
			high = c.High
		}
	}
	return low, high
}

// RecentSearches returns the latest recorded searches, newest first.
func (s *quoteService) RecentSearches(ctx context.Context, limit int) ([]entity.SearchHistory, error) {
	if s.historyRepo == nil {
		return []entity.SearchHistory{}, nil
	}
	if limit <= 0 || limit > s.cfg.Market.HistoryLimit {
		limit = s.cfg.Market.HistoryLimit
	}
	records, err := s.historyRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load search history: %w", err)
	}
	if records == nil {
		records = []entity.SearchHistory{}
	}
	return records, nil
}

func (s *quoteService) recordSearch(ctx context.Context, snapshot *entity.QuoteSnapshot) {
	if s.historyRepo == nil {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	record := &entity.SearchHistory{
		Symbol:   snapshot.Symbol,
		Exchange: snapshot.Exchange,
		Price:    snapshot.CurrentPrice,
		Snapshot: datatypes.JSON(raw),
	}
	if err := s.historyRepo.Create(ctx, record); err != nil {
		s.logger.Warn("Failed to record search history", logger.ErrorField(err), logger.StringField("symbol", snapshot.Symbol))
	}
}
