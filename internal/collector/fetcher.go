package collector

import "github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyCloses returns up to days daily closes for symbol, oldest first.
	FetchDailyCloses(symbol string, days int) ([]model.ClosePoint, error)
	Name() string
}
