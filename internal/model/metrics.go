package model

// MetricsRecord holds the computed breadth statistics for one asset.
// TrendOK is false when the asset lacks the history required by the moving
// average window; BetaOK is false when the benchmark return variance is zero.
// Consumers must check the flags instead of reading a defaulted value.
type MetricsRecord struct {
	Symbol        string
	TrendDistPct  float64 // % distance of last close from the trailing SMA
	TrendOK       bool
	VolatilityPct float64 // annualized stddev of daily returns, in percent
	Beta          float64 // covariance with benchmark / benchmark variance
	BetaOK        bool
}

// MetricsTable is the per-asset metrics output, ordered by the cleaned
// price table's column order.
type MetricsTable struct {
	Records []MetricsRecord
}

// Lookup returns the record for symbol.
func (t *MetricsTable) Lookup(symbol string) (MetricsRecord, bool) {
	for _, r := range t.Records {
		if r.Symbol == symbol {
			return r, true
		}
	}
	return MetricsRecord{}, false
}

// Bullish counts records with a defined, strictly positive trend distance.
// Bearish counts defined non-positive ones; undefined trend records are
// reported separately so they never skew the breadth ratio.
func (t *MetricsTable) Bullish() (bullish, bearish, undefined int) {
	for _, r := range t.Records {
		switch {
		case !r.TrendOK:
			undefined++
		case r.TrendDistPct > 0:
			bullish++
		default:
			bearish++
		}
	}
	return bullish, bearish, undefined
}
