// Package report renders the end-of-run text summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
)

// Summary carries everything the text report needs.
type Summary struct {
	Benchmark  string
	Dropped    []string // symbols removed for incomplete history
	Metrics    *model.MetricsTable
	Candidates []model.MetricsRecord
	SMAWindow  int
	TrendFloor float64
	VolCeiling float64
}

// Format renders the breadth overview and screen results as plain text.
func Format(s Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Market Breadth Summary | %s\n", time.Now().Format("2006-01-02")))
	b.WriteString("──────────────────────────────────\n")

	analyzed := len(s.Metrics.Records)
	if len(s.Dropped) > 0 {
		b.WriteString(fmt.Sprintf("Universe: %d analyzed, %d dropped for incomplete history (%s)\n",
			analyzed, len(s.Dropped), strings.Join(s.Dropped, ", ")))
	} else {
		b.WriteString(fmt.Sprintf("Universe: %d analyzed, none dropped\n", analyzed))
	}

	bullish, bearish, undefined := s.Metrics.Bullish()
	defined := bullish + bearish
	pct := 0.0
	if defined > 0 {
		pct = float64(bullish) / float64(defined) * 100
	}
	b.WriteString(fmt.Sprintf("Breadth:  %d/%d above their %d-day SMA (%.1f%%)",
		bullish, defined, s.SMAWindow, pct))
	if undefined > 0 {
		b.WriteString(fmt.Sprintf(", %d with too little history", undefined))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf(" %-8s %8s %7s %6s\n", "SYMBOL", "TREND%", "VOL%", "BETA"))
	for _, rec := range s.Metrics.Records {
		trend := "n/a"
		if rec.TrendOK {
			trend = fmt.Sprintf("%+.1f", rec.TrendDistPct)
		}
		beta := "n/a"
		if rec.BetaOK {
			beta = fmt.Sprintf("%.2f", rec.Beta)
		}
		b.WriteString(fmt.Sprintf(" %-8s %8s %7.1f %6s\n", rec.Symbol, trend, rec.VolatilityPct, beta))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Screen: trend > %+.1f%%, volatility < %.1f%%, beta vs %s\n",
		s.TrendFloor, s.VolCeiling, s.Benchmark))

	if len(s.Candidates) == 0 {
		b.WriteString("No candidates passed the screen.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf(" %-3s %-8s %8s %7s %6s\n", "#", "SYMBOL", "TREND%", "VOL%", "BETA"))
	for i, rec := range s.Candidates {
		beta := "n/a"
		if rec.BetaOK {
			beta = fmt.Sprintf("%.2f", rec.Beta)
		}
		b.WriteString(fmt.Sprintf(" %-3d %-8s %+8.1f %7.1f %6s\n",
			i+1, rec.Symbol, rec.TrendDistPct, rec.VolatilityPct, beta))
	}
	return b.String()
}
