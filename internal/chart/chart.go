// Package chart builds and renders price history charts.
package chart

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"golang-stock-dashboard/internal/entity"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02-01-2006",
}

// Series is the view-model handed to the renderer: one label per close.
type Series struct {
	Labels []time.Time
	Values []float64
}

// BuildSeries converts a candle series into chart labels and values.
// Each point's own date is preferred; when any point lacks a parseable
// date the whole label axis is synthesized as a trailing daily sequence
// ending at now, so charts never show blank labels.
func BuildSeries(candles []entity.Candle, now time.Time) Series {
	s := Series{
		Labels: make([]time.Time, len(candles)),
		Values: make([]float64, len(candles)),
	}

	complete := true
	for i, c := range candles {
		s.Values[i] = c.Close
		t, ok := parseDate(c.Date)
		if !ok {
			complete = false
			continue
		}
		s.Labels[i] = t
	}

	if !complete {
		day := now.Truncate(24 * time.Hour)
		for i := range s.Labels {
			s.Labels[i] = day.AddDate(0, 0, i-len(s.Labels)+1)
		}
	}

	return s
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Render draws the close series as a PNG line chart.
func Render(symbol string, s Series, w io.Writer) error {
	if len(s.Values) < 2 {
		return fmt.Errorf("need at least 2 data points, got %d", len(s.Values))
	}

	closeSeries := chart.TimeSeries{
		Name: symbol,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.0,
		},
		XValues: s.Labels,
		YValues: s.Values,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s - 3 Month Close", symbol),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("02 Jan")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("₹%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{closeSeries},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
