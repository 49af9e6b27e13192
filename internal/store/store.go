package store

import (
	"time"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
)

// Store caches raw daily closes fetched from the data source so repeated
// runs do not hammer the provider. Only input prices are cached; computed
// metrics are recomputed on every run.
type Store interface {
	// LoadCloses returns the cached closes for symbol with dates in
	// [from, to], oldest first. An empty slice means a cache miss.
	LoadCloses(symbol string, from, to time.Time) ([]model.ClosePoint, error)

	// SaveCloses upserts the given closes for symbol.
	SaveCloses(symbol string, points []model.ClosePoint) error

	Close() error
}
