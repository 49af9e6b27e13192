// Package cleaner turns the ragged price table the collector assembles into
// a fully dense one. The policy is all-or-nothing: a symbol with a single
// missing observation anywhere in the window is dropped entirely, never
// interpolated, so every downstream statistic sees the same date axis.
package cleaner

import (
	"errors"
	"fmt"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
)

// ErrMissingBenchmark means the benchmark column did not survive cleaning,
// which makes every beta computation impossible. Fatal by contract.
var ErrMissingBenchmark = errors.New("benchmark column missing after cleaning")

// Clean returns a table containing only the fully populated columns of raw,
// in their original order, plus the list of dropped symbols. Pure and
// idempotent: cleaning a clean table returns an identical one.
func Clean(raw *model.PriceTable) (*model.PriceTable, []string) {
	out := model.NewPriceTable(raw.Dates)
	var dropped []string
	for _, sym := range raw.Symbols {
		if raw.HasMissing(sym) {
			dropped = append(dropped, sym)
			continue
		}
		out.AddColumn(sym, raw.Column(sym))
	}
	return out, dropped
}

// Split extracts the benchmark series from a cleaned table and returns the
// remaining asset columns as a new table. The benchmark is only the
// comparison series; it must not appear in the per-asset metrics output.
func Split(clean *model.PriceTable, benchmark string) (*model.PriceTable, []float64, error) {
	bench := clean.Column(benchmark)
	if bench == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrMissingBenchmark, benchmark)
	}
	assets := model.NewPriceTable(clean.Dates)
	for _, sym := range clean.Symbols {
		if sym == benchmark {
			continue
		}
		assets.AddColumn(sym, clean.Column(sym))
	}
	return assets, bench, nil
}
