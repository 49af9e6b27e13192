package calculator

// DailyReturns computes day-over-day fractional changes of a close series.
// The result has len(closes)-1 entries; the first observation has no prior
// day and is dropped. A zero previous close yields a zero return rather
// than a division blowup.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			returns[i-1] = 0
			continue
		}
		returns[i-1] = (closes[i] - prev) / prev
	}
	return returns
}
