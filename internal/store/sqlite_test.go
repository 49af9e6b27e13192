package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func day(value string) time.Time {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSaveAndLoadCloses(t *testing.T) {
	s := newTestStore(t)

	points := []model.ClosePoint{
		{Date: day("2024-01-02"), Close: 100.5},
		{Date: day("2024-01-03"), Close: 101.25},
		{Date: day("2024-01-04"), Close: 99.75},
	}
	require.NoError(t, s.SaveCloses("AAPL", points))

	got, err := s.LoadCloses("AAPL", day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 100.5, got[0].Close)
	require.Equal(t, 99.75, got[2].Close)
	require.True(t, got[0].Date.Before(got[1].Date))
}

func TestLoadClosesRespectsWindow(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveCloses("MSFT", []model.ClosePoint{
		{Date: day("2024-01-02"), Close: 1},
		{Date: day("2024-02-01"), Close: 2},
		{Date: day("2024-03-01"), Close: 3},
	}))

	got, err := s.LoadCloses("MSFT", day("2024-01-15"), day("2024-02-15"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 2.0, got[0].Close)
}

func TestSaveClosesUpserts(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveCloses("SPY", []model.ClosePoint{
		{Date: day("2024-01-02"), Close: 470},
	}))
	require.NoError(t, s.SaveCloses("SPY", []model.ClosePoint{
		{Date: day("2024-01-02"), Close: 471.5},
	}))

	got, err := s.LoadCloses("SPY", day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 471.5, got[0].Close)
}

func TestLoadClosesUnknownSymbol(t *testing.T) {
	s := newTestStore(t)

	got, err := s.LoadCloses("NOPE", day("2024-01-01"), day("2024-12-31"))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSymbolsDoNotLeakAcrossRows(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveCloses("AAPL", []model.ClosePoint{{Date: day("2024-01-02"), Close: 100}}))
	require.NoError(t, s.SaveCloses("MSFT", []model.ClosePoint{{Date: day("2024-01-02"), Close: 400}}))

	got, err := s.LoadCloses("AAPL", day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 100.0, got[0].Close)
}

func TestNoopStoreAlwaysMisses(t *testing.T) {
	n := NewNoopStore()

	require.NoError(t, n.SaveCloses("AAPL", []model.ClosePoint{{Date: day("2024-01-02"), Close: 1}}))
	got, err := n.LoadCloses("AAPL", day("2024-01-01"), day("2024-12-31"))
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, n.Close())
}
