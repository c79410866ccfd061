// Package indicators provides technical indicator calculations over daily
// candle series ordered oldest to newest.
package indicators

import (
	"math"

	"golang-stock-dashboard/internal/entity"
)

// SMA calculates the Simple Moving Average of the closing price over the
// trailing period. Returns 0 when the series is too short.
func SMA(candles []entity.Candle, period int) float64 {
	if len(candles) < period || period <= 0 {
		return 0
	}
	sum := 0.0
	for _, c := range candles[len(candles)-period:] {
		sum += c.Close
	}
	return sum / float64(period)
}

// RSI calculates the Relative Strength Index over the trailing period using
// simple (non-smoothed) rolling averages of gains and losses.
func RSI(candles []entity.Candle, period int) float64 {
	if len(candles) < period+1 || period <= 0 {
		return 50 // Neutral default
	}

	var gains, losses float64
	start := len(candles) - period
	for i := start; i < len(candles); i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// Bollinger calculates Bollinger Bands: the middle band is the trailing SMA
// and the outer bands sit stddev*width away from it. Sample standard
// deviation is used to mirror common charting defaults.
func Bollinger(candles []entity.Candle, period int, width float64) (upper, middle, lower float64) {
	if len(candles) < period || period < 2 {
		return 0, 0, 0
	}

	middle = SMA(candles, period)
	var sumSq float64
	for _, c := range candles[len(candles)-period:] {
		d := c.Close - middle
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(period-1))

	return middle + std*width, middle, middle - std*width
}

// Volatility calculates annualized volatility as the sample standard
// deviation of daily percentage changes, scaled by sqrt(252), in percent.
func Volatility(candles []entity.Candle) float64 {
	if len(candles) < 3 {
		return 0
	}

	returns := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		prev := candles[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (candles[i].Close-prev)/prev)
	}
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var sumSq float64
	for _, r := range returns {
		d := r - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(len(returns)-1))

	return std * math.Sqrt(252) * 100
}

// AverageVolume calculates the mean volume over the trailing period.
func AverageVolume(candles []entity.Candle, period int) float64 {
	if len(candles) < period || period <= 0 {
		return 0
	}
	var sum int64
	for _, c := range candles[len(candles)-period:] {
		sum += c.Volume
	}
	return float64(sum) / float64(period)
}

// Compute derives the full indicator set used by quote responses and the
// recommendation engine.
func Compute(candles []entity.Candle) *entity.IndicatorSet {
	upper, middle, lower := Bollinger(candles, 20, 2)
	return &entity.IndicatorSet{
		SMA20:      SMA(candles, 20),
		SMA50:      SMA(candles, 50),
		RSI:        RSI(candles, 14),
		BBUpper:    upper,
		BBMiddle:   middle,
		BBLower:    lower,
		AvgVolume:  AverageVolume(candles, 20),
		Volatility: Volatility(candles),
	}
}
