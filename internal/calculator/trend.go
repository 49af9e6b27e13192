package calculator

import (
	"errors"
	"fmt"
)

// ErrInsufficientData marks a statistic that cannot be computed from the
// available history. Callers distinguish it with errors.Is so the asset can
// be flagged instead of aborting the whole run.
var ErrInsufficientData = errors.New("not enough data")

// CalculateSMA computes the trailing simple moving average of the last
// `period` prices, inclusive of the most recent one.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, fmt.Errorf("%w: SMA(%d) needs %d closes, have %d", ErrInsufficientData, period, period, len(prices))
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateTrendDistance returns how far the last close sits from its
// trailing SMA, in percent. Positive means the price is above its average
// (bullish), negative below it. Requires at least `period` closes.
func CalculateTrendDistance(closes []float64, period int) (float64, error) {
	sma, err := CalculateSMA(closes, period)
	if err != nil {
		return 0, err
	}
	if sma == 0 {
		return 0, errors.New("zero moving average")
	}
	last := closes[len(closes)-1]
	return (last - sma) / sma * 100, nil
}
