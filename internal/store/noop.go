package store

import (
	"time"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
)

// NoopStore is a no-op implementation used when SQLite is not configured.
// Every load is a cache miss and saves are discarded.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) LoadCloses(_ string, _, _ time.Time) ([]model.ClosePoint, error) {
	return nil, nil
}
func (n *NoopStore) SaveCloses(_ string, _ []model.ClosePoint) error { return nil }
func (n *NoopStore) Close() error                                    { return nil }
