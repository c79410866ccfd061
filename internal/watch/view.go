package watch

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang-stock-dashboard/internal/chart"
	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/utils"
)

// TerminalView renders the dashboard panels as text and writes the
// price chart to a PNG file. It implements Presenter and
// RecommendationPresenter.
type TerminalView struct {
	logger    *logger.Logger
	chartPath string

	mu sync.Mutex
	w  io.Writer
}

// NewTerminalView creates a view writing to w. chartPath may be empty
// to disable chart output.
func NewTerminalView(w io.Writer, chartPath string, log *logger.Logger) *TerminalView {
	return &TerminalView{w: w, chartPath: chartPath, logger: log}
}

// ShowQuote prints the info panel and redraws the chart file.
func (v *TerminalView) ShowQuote(s *entity.QuoteSnapshot) {
	v.mu.Lock()
	fmt.Fprintf(v.w, "\n%s (%s) - %s\n", s.Symbol, s.Exchange, s.Name)
	fmt.Fprintf(v.w, "  Price:       %s  %s [%s]\n",
		utils.FormatINR(s.CurrentPrice),
		utils.FormatChange(s.Change, s.ChangePercent),
		changeTone(s.Change))
	fmt.Fprintf(v.w, "  Volume:      %s\n", utils.FormatQuantity(s.Volume))
	fmt.Fprintf(v.w, "  Market Cap:  %s\n", utils.FormatOptionalINR(s.MarketCap))
	fmt.Fprintf(v.w, "  P/E:         %s\n", formatRatio(s.PERatio))
	fmt.Fprintf(v.w, "  52W Range:   %s - %s\n", utils.FormatINR(s.Week52Low), utils.FormatINR(s.Week52High))
	if ind := s.Indicators; ind != nil {
		fmt.Fprintf(v.w, "  SMA20/SMA50: %s / %s\n", utils.FormatINR(ind.SMA20), utils.FormatINR(ind.SMA50))
		fmt.Fprintf(v.w, "  RSI(14):     %s\n", formatRatio(ind.RSI))
	}
	v.mu.Unlock()

	v.writeChart(s)
}

// ShowNews prints the headline list for a symbol.
func (v *TerminalView) ShowNews(symbol string, items []entity.NewsItem) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(items) == 0 {
		fmt.Fprintf(v.w, "\nNo recent news for %s.\n", symbol)
		return
	}
	fmt.Fprintf(v.w, "\nNews for %s:\n", symbol)
	for _, it := range items {
		fmt.Fprintf(v.w, "  [%s] %s (%s)\n", it.Published.Format("02 Jan"), it.Title, it.Source)
	}
}

// ShowSuggestions prints the dropdown with the active entry marked.
func (v *TerminalView) ShowSuggestions(s Session) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !s.Open() {
		return
	}
	fmt.Fprintln(v.w)
	for i, item := range s.Results {
		marker := "  "
		if i == s.ActiveIndex {
			marker = "> "
		}
		fmt.Fprintf(v.w, "%s%s (%s)  %s\n", marker, item.Symbol, item.Exchange, item.Name)
	}
}

// ShowRecommendations prints one card per result; nil clears the panel.
func (v *TerminalView) ShowRecommendations(results []entity.RecommendationResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(results) == 0 {
		return
	}
	fmt.Fprintf(v.w, "\nRecommendations:\n")
	for _, r := range results {
		rec := r.Recommendation
		fmt.Fprintf(v.w, "  %-12s %-10s score %3d  %s  risk %s",
			r.Symbol, RatingClass(rec.Rating), rec.Score,
			utils.FormatINR(r.CurrentPrice), rec.RiskLevel)
		if !rec.RiskMatch {
			fmt.Fprint(v.w, "  (above your risk tolerance)")
		}
		fmt.Fprintf(v.w, "\n    affordable: %s shares\n", utils.FormatQuantity(r.SharesAffordable))
		for _, reason := range rec.Reasons {
			fmt.Fprintf(v.w, "    - %s\n", reason)
		}
	}
}

// ShowMessage prints an informational line.
func (v *TerminalView) ShowMessage(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.w, "\n%s\n", message)
}

// ShowError prints a user-visible error line.
func (v *TerminalView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.w, "\nError: %s\n", message)
}

// SetBusy prints a working indicator when busy turns on.
func (v *TerminalView) SetBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if busy {
		fmt.Fprintln(v.w, "...")
	}
}

// writeChart overwrites the chart PNG for the snapshot. Chart failures
// are logged and skipped; they never stop the pipeline.
func (v *TerminalView) writeChart(s *entity.QuoteSnapshot) {
	if v.chartPath == "" {
		return
	}
	series := chart.BuildSeries(s.Historical, time.Now())

	f, err := os.Create(v.chartPath)
	if err != nil {
		v.logger.Warn("Chart file open failed", logger.ErrorField(err), logger.StringField("path", v.chartPath))
		return
	}
	defer f.Close()

	if err := chart.Render(s.Symbol, series, f); err != nil {
		v.logger.Warn("Chart render skipped", logger.ErrorField(err), logger.StringField("symbol", s.Symbol))
		return
	}
	v.mu.Lock()
	fmt.Fprintf(v.w, "  Chart:       %s\n", v.chartPath)
	v.mu.Unlock()
}

func changeTone(change float64) string {
	if !utils.IsFinite(change) || change == 0 {
		return "flat"
	}
	if change > 0 {
		return "positive"
	}
	return "negative"
}

func formatRatio(v float64) string {
	if v == 0 || !utils.IsFinite(v) {
		return utils.Placeholder
	}
	return fmt.Sprintf("%.2f", v)
}
