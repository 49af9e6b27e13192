// Package analyzer computes per-asset risk metrics against a benchmark.
package analyzer

import (
	"errors"
	"log"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/calculator"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
)

// Analyzer derives trend, volatility and beta metrics from cleaned closes.
type Analyzer struct {
	SMAWindow int
}

// NewAnalyzer creates an Analyzer with the given moving-average window.
func NewAnalyzer(smaWindow int) *Analyzer {
	return &Analyzer{SMAWindow: smaWindow}
}

// Analyze computes a MetricsRecord for every asset column against the
// benchmark closes. An asset too short to produce a volatility is skipped
// with a warning; trend and beta failures keep the record but leave the
// corresponding flag unset. It fails when no asset yields any metrics.
func (a *Analyzer) Analyze(assets *model.PriceTable, benchmark []float64) (*model.MetricsTable, error) {
	benchReturns := calculator.DailyReturns(benchmark)

	table := &model.MetricsTable{}
	for _, symbol := range assets.Symbols {
		closes := assets.Column(symbol)
		returns := calculator.DailyReturns(closes)

		rec := model.MetricsRecord{Symbol: symbol}

		vol, err := calculator.CalculateVolatility(returns)
		if err != nil {
			log.Printf("[WARN] volatility for %s failed: %v, skipping asset", symbol, err)
			continue
		}
		rec.VolatilityPct = vol

		if trend, err := calculator.CalculateTrendDistance(closes, a.SMAWindow); err != nil {
			log.Printf("[WARN] trend distance for %s failed: %v", symbol, err)
		} else {
			rec.TrendDistPct = trend
			rec.TrendOK = true
		}

		if beta, err := calculator.CalculateBeta(returns, benchReturns); err != nil {
			log.Printf("[WARN] beta for %s failed: %v", symbol, err)
		} else {
			rec.Beta = beta
			rec.BetaOK = true
		}

		table.Records = append(table.Records, rec)
	}

	if len(table.Records) == 0 {
		return nil, errors.New("analyze: no asset produced metrics")
	}
	return table, nil
}
