package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/internal/server/dto"
	"golang-stock-dashboard/pkg/common"
	"golang-stock-dashboard/pkg/logger"
)

// ErrSymbolNotFound is returned when the upstream has no data for a symbol.
var ErrSymbolNotFound = errors.New("stock not found")

// StockData is the normalized result of one upstream chart request.
type StockData struct {
	Symbol        string
	Exchange      string
	Name          string
	MarketPrice   float64
	PreviousClose float64
	Volume        int64
	Week52High    float64
	Week52Low     float64
	Candles       []entity.Candle
}

// YahooFinanceRepository fetches daily price history from the Yahoo
// Finance chart API.
type YahooFinanceRepository interface {
	Get(ctx context.Context, param dto.GetStockDataParam) (*StockData, error)
}

type yahooFinanceRepository struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewYahooFinanceRepository creates a rate-limited Yahoo Finance client.
func NewYahooFinanceRepository(baseURL string, timeout time.Duration, maxRequestPerMinute int, log *logger.Logger) YahooFinanceRepository {
	return &yahooFinanceRepository{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(float64(maxRequestPerMinute)/60.0), maxRequestPerMinute),
		logger:  log,
	}
}

// chartResponse mirrors the v8 chart API payload. Price arrays carry nulls
// for holidays and halts, hence the pointer element types.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				LongName           string  `json:"longName"`
				ShortName          string  `json:"shortName"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				RegularMarketVolume int64  `json:"regularMarketVolume"`
				FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []chartQuote `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func exchangeSuffix(exchange string) string {
	if exchange == common.ExchangeBSE {
		return common.BSESuffix
	}
	return common.NSESuffix
}

// Get fetches and normalizes the chart payload for one symbol on one
// exchange. A response without a market price or candles maps to
// ErrSymbolNotFound so callers can try the other exchange.
func (r *yahooFinanceRepository) Get(ctx context.Context, param dto.GetStockDataParam) (*StockData, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ticker := param.Symbol + exchangeSuffix(param.Exchange)
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		r.baseURL, url.PathEscape(ticker), url.QueryEscape(param.Range), url.QueryEscape(param.Interval))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stock-dashboard/1.0)")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart request for %s failed with status %d", ticker, resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}

	if payload.Chart.Error != nil {
		r.logger.Debug("Upstream chart error",
			logger.StringField("ticker", ticker),
			logger.StringField("code", payload.Chart.Error.Code))
		return nil, ErrSymbolNotFound
	}
	if len(payload.Chart.Result) == 0 {
		return nil, ErrSymbolNotFound
	}

	result := payload.Chart.Result[0]
	if result.Meta.RegularMarketPrice == 0 {
		return nil, ErrSymbolNotFound
	}

	candles := buildCandles(result.Timestamp, result.Indicators.Quote)
	if len(candles) == 0 {
		return nil, ErrSymbolNotFound
	}

	name := result.Meta.LongName
	if name == "" {
		name = result.Meta.ShortName
	}
	if name == "" {
		name = param.Symbol
	}

	previousClose := result.Meta.PreviousClose
	if previousClose == 0 {
		previousClose = result.Meta.ChartPreviousClose
	}
	if previousClose == 0 && len(candles) >= 2 {
		previousClose = candles[len(candles)-2].Close
	}

	volume := result.Meta.RegularMarketVolume
	if volume == 0 {
		volume = candles[len(candles)-1].Volume
	}

	return &StockData{
		Symbol:        param.Symbol,
		Exchange:      param.Exchange,
		Name:          name,
		MarketPrice:   result.Meta.RegularMarketPrice,
		PreviousClose: previousClose,
		Volume:        volume,
		Week52High:    result.Meta.FiftyTwoWeekHigh,
		Week52Low:     result.Meta.FiftyTwoWeekLow,
		Candles:       candles,
	}, nil
}

// chartQuote holds the parallel OHLCV arrays of one chart result.
type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

func buildCandles(timestamps []int64, quotes []chartQuote) []entity.Candle {
	if len(quotes) == 0 {
		return nil
	}
	quote := quotes[0]

	candles := make([]entity.Candle, 0, len(timestamps))
	for i, ts := range timestamps {
		c := entity.Candle{Date: time.Unix(ts, 0).UTC().Format("2006-01-02")}
		if i < len(quote.Close) && quote.Close[i] != nil {
			c.Close = *quote.Close[i]
		} else {
			continue // no close means an unusable bar
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			c.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			c.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			c.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			c.Volume = *quote.Volume[i]
		}
		candles = append(candles, c)
	}
	return candles
}
