package calculator

import (
	"errors"
	"fmt"
	"math"
)

// TradingDaysPerYear is the annualization factor for daily return variance.
const TradingDaysPerYear = 252

// ErrDegenerateVariance signals a benchmark whose returns never vary, which
// leaves beta undefined for every asset. It must surface as an explicit
// failure, never as an Inf or NaN leaking into comparisons.
var ErrDegenerateVariance = errors.New("benchmark variance is zero")

// CalculateVolatility annualizes the sample standard deviation of daily
// returns and expresses it in percent. Uses the full return series; a
// constant price series yields exactly 0.
func CalculateVolatility(returns []float64) (float64, error) {
	if len(returns) < 2 {
		return 0, fmt.Errorf("%w: volatility needs at least 2 returns, have %d", ErrInsufficientData, len(returns))
	}
	sd := stdDev(returns, mean(returns))
	return sd * math.Sqrt(TradingDaysPerYear) * 100, nil
}

// CalculateBeta computes covariance(asset, benchmark) / variance(benchmark)
// over the same-day return pairs of the two series. Series are aligned on
// their most recent overlapping observations and pairs with a non-finite
// value on either side are dropped, so both moments always cover the exact
// same pair set and beta of the benchmark against itself is exactly 1.
func CalculateBeta(assetReturns, benchReturns []float64) (float64, error) {
	n := len(assetReturns)
	if len(benchReturns) < n {
		n = len(benchReturns)
	}
	a := assetReturns[len(assetReturns)-n:]
	b := benchReturns[len(benchReturns)-n:]

	pairA := make([]float64, 0, n)
	pairB := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if isFinite(a[i]) && isFinite(b[i]) {
			pairA = append(pairA, a[i])
			pairB = append(pairB, b[i])
		}
	}
	if len(pairA) < 2 {
		return 0, fmt.Errorf("%w: beta needs at least 2 overlapping return pairs, have %d", ErrInsufficientData, len(pairA))
	}

	meanA := mean(pairA)
	meanB := mean(pairB)
	var cov, varB float64
	for i := range pairA {
		da := pairA[i] - meanA
		db := pairB[i] - meanB
		cov += da * db
		varB += db * db
	}
	// The common n-1 divisor cancels in the ratio.
	if varB == 0 {
		return 0, ErrDegenerateVariance
	}
	return cov / varB, nil
}

func mean(numbers []float64) float64 {
	total := 0.0
	for _, x := range numbers {
		total += x
	}
	return total / float64(len(numbers))
}

// stdDev is the sample standard deviation (n-1 denominator).
func stdDev(numbers []float64, mean float64) float64 {
	total := 0.0
	for _, x := range numbers {
		d := x - mean
		total += d * d
	}
	variance := total / float64(len(numbers)-1)
	return math.Sqrt(variance)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
