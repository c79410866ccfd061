package entity

import "time"

// Candle is one day of OHLCV data.
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// IndicatorSet holds the latest computed technical indicator values for a
// symbol's daily series.
type IndicatorSet struct {
	SMA20      float64 `json:"sma_20"`
	SMA50      float64 `json:"sma_50"`
	RSI        float64 `json:"rsi"`
	BBUpper    float64 `json:"bb_upper"`
	BBMiddle   float64 `json:"bb_middle"`
	BBLower    float64 `json:"bb_lower"`
	AvgVolume  float64 `json:"avg_volume_20"`
	Volatility float64 `json:"volatility"`
}

// QuoteSnapshot is the full payload returned for a symbol search:
// a quote, the recent historical series in chronological order, and the
// indicators derived from it.
type QuoteSnapshot struct {
	Symbol        string        `json:"symbol"`
	Name          string        `json:"name"`
	Exchange      string        `json:"exchange"`
	CurrentPrice  float64       `json:"current_price"`
	PreviousClose float64       `json:"previous_close"`
	Change        float64       `json:"change"`
	ChangePercent float64       `json:"change_percent"`
	Volume        int64         `json:"volume"`
	MarketCap     float64       `json:"market_cap,omitempty"`
	PERatio       float64       `json:"pe_ratio,omitempty"`
	Week52Low     float64       `json:"week_52_low"`
	Week52High    float64       `json:"week_52_high"`
	Indicators    *IndicatorSet `json:"indicators,omitempty"`
	Historical    []Candle      `json:"historical_data"`
	FetchedAt     time.Time     `json:"fetched_at"`
}
