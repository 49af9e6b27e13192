// Package screener selects candidate symbols from computed metrics.
package screener

import (
	"sort"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
)

// Screener filters metrics against momentum and risk thresholds.
type Screener struct {
	TrendFloor float64 // minimum trend distance over SMA, percent
	VolCeiling float64 // maximum annualized volatility, percent
	TopN       int     // 0 means unlimited
}

// NewScreener creates a Screener with the given thresholds.
func NewScreener(trendFloor, volCeiling float64, topN int) *Screener {
	return &Screener{TrendFloor: trendFloor, VolCeiling: volCeiling, TopN: topN}
}

// Screen returns up to TopN records whose trend distance is strictly above
// the floor and whose volatility is strictly below the ceiling, strongest
// trend first. Ties keep their original order. Records without a valid
// trend are never candidates.
func (s *Screener) Screen(table *model.MetricsTable) []model.MetricsRecord {
	var candidates []model.MetricsRecord
	for _, rec := range table.Records {
		if !rec.TrendOK {
			continue
		}
		if rec.TrendDistPct > s.TrendFloor && rec.VolatilityPct < s.VolCeiling {
			candidates = append(candidates, rec)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TrendDistPct > candidates[j].TrendDistPct
	})

	if s.TopN > 0 && len(candidates) > s.TopN {
		candidates = candidates[:s.TopN]
	}
	return candidates
}
