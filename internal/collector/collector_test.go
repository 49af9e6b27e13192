package collector

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/store"
)

func cp(date string, close float64) model.ClosePoint {
	d, err := time.Parse(dateKey, date)
	if err != nil {
		panic(err)
	}
	return model.ClosePoint{Date: d, Close: close}
}

// fakeStore implements store.Store with canned contents.
type fakeStore struct {
	data  map[string][]model.ClosePoint
	saved map[string][]model.ClosePoint
}

var _ store.Store = (*fakeStore)(nil)

func (f *fakeStore) LoadCloses(symbol string, _, _ time.Time) ([]model.ClosePoint, error) {
	return f.data[symbol], nil
}

func (f *fakeStore) SaveCloses(symbol string, points []model.ClosePoint) error {
	if f.saved == nil {
		f.saved = make(map[string][]model.ClosePoint)
	}
	f.saved[symbol] = points
	return nil
}

func (f *fakeStore) Close() error { return nil }

func TestCollectAlignsUnionOfTradingDays(t *testing.T) {
	mock := &MockFetcher{Closes: map[string][]model.ClosePoint{
		"AAA": {cp("2024-01-02", 10), cp("2024-01-03", 11), cp("2024-01-04", 12)},
		"BBB": {cp("2024-01-03", 20), cp("2024-01-04", 21), cp("2024-01-05", 22)},
		"SPY": {cp("2024-01-02", 470), cp("2024-01-03", 471), cp("2024-01-04", 472), cp("2024-01-05", 473)},
	}}
	c := NewCollector(mock, nil, []string{"AAA", "BBB"}, "SPY", 365)

	table, err := c.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("expected 4 union trading days, got %d", table.Len())
	}
	if len(table.Symbols) != 3 {
		t.Fatalf("expected 3 columns, got %v", table.Symbols)
	}
	if table.Symbols[0] != "AAA" || table.Symbols[1] != "BBB" || table.Symbols[2] != "SPY" {
		t.Errorf("expected fetch order preserved, got %v", table.Symbols)
	}

	aaa := table.Column("AAA")
	if aaa[0] != 10 || aaa[2] != 12 {
		t.Errorf("unexpected AAA values: %v", aaa)
	}
	if !math.IsNaN(aaa[3]) {
		t.Errorf("expected NaN hole on AAA's missing day, got %f", aaa[3])
	}

	bbb := table.Column("BBB")
	if !math.IsNaN(bbb[0]) {
		t.Errorf("expected NaN hole on BBB's missing day, got %f", bbb[0])
	}
	if bbb[1] != 20 || bbb[3] != 22 {
		t.Errorf("unexpected BBB values: %v", bbb)
	}

	spy := table.Column("SPY")
	for i, v := range spy {
		if math.IsNaN(v) {
			t.Errorf("expected SPY complete, found NaN at %d", i)
		}
	}
}

func TestCollectDropsFailedSymbols(t *testing.T) {
	mock := &MockFetcher{
		Closes: map[string][]model.ClosePoint{
			"AAA": {cp("2024-01-02", 10), cp("2024-01-03", 11)},
			"SPY": {cp("2024-01-02", 470), cp("2024-01-03", 471)},
		},
		Errs: map[string]error{"BBB": errors.New("rate limited")},
	}
	c := NewCollector(mock, nil, []string{"AAA", "BBB"}, "SPY", 365)

	table, err := c.Collect()
	if err != nil {
		t.Fatalf("Collect should tolerate single-symbol failures: %v", err)
	}
	if table.Column("BBB") != nil {
		t.Error("expected failed symbol absent from table")
	}
	if table.Column("AAA") == nil || table.Column("SPY") == nil {
		t.Errorf("expected surviving symbols present, got %v", table.Symbols)
	}
}

func TestCollectFailsWhenNothingFetched(t *testing.T) {
	mock := &MockFetcher{Errs: map[string]error{
		"AAA": errors.New("down"),
		"SPY": errors.New("down"),
	}}
	c := NewCollector(mock, nil, []string{"AAA"}, "SPY", 365)

	if _, err := c.Collect(); err == nil {
		t.Fatal("expected error when no symbol returns data")
	}
}

func TestCollectDeduplicatesBenchmark(t *testing.T) {
	mock := &MockFetcher{Closes: map[string][]model.ClosePoint{
		"AAA": {cp("2024-01-02", 10)},
		"SPY": {cp("2024-01-02", 470)},
	}}
	c := NewCollector(mock, nil, []string{"AAA", "SPY"}, "SPY", 365)

	table, err := c.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	count := 0
	for _, s := range table.Symbols {
		if s == "SPY" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected benchmark collected once, got %d columns", count)
	}
}

func TestCollectServesFreshCacheWithoutFetching(t *testing.T) {
	now := time.Now()
	cached := []model.ClosePoint{
		{Date: now.AddDate(0, 0, -2), Close: 100},
		{Date: now.AddDate(0, 0, -1), Close: 101},
	}
	st := &fakeStore{data: map[string][]model.ClosePoint{"AAA": cached, "SPY": cached}}
	// Any network fetch would fail, so success proves the cache served.
	mock := &MockFetcher{Errs: map[string]error{
		"AAA": errors.New("network disabled"),
		"SPY": errors.New("network disabled"),
	}}
	c := NewCollector(mock, st, []string{"AAA"}, "SPY", 365)

	table, err := c.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if table.Column("AAA") == nil || table.Column("SPY") == nil {
		t.Errorf("expected both symbols served from cache, got %v", table.Symbols)
	}
	if len(st.saved) != 0 {
		t.Errorf("expected no cache writes on hit, got %v", st.saved)
	}
}

func TestCollectRefreshesStaleCache(t *testing.T) {
	now := time.Now()
	stale := []model.ClosePoint{{Date: now.AddDate(0, 0, -30), Close: 90}}
	fresh := []model.ClosePoint{
		{Date: now.AddDate(0, 0, -2), Close: 100},
		{Date: now.AddDate(0, 0, -1), Close: 101},
	}
	st := &fakeStore{data: map[string][]model.ClosePoint{"AAA": stale, "SPY": stale}}
	mock := &MockFetcher{Closes: map[string][]model.ClosePoint{"AAA": fresh, "SPY": fresh}}
	c := NewCollector(mock, st, []string{"AAA"}, "SPY", 365)

	table, err := c.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	col := table.Column("AAA")
	if len(col) == 0 || col[len(col)-1] != 101 {
		t.Errorf("expected refetched closes in table, got %v", col)
	}
	if len(st.saved["AAA"]) != 2 || len(st.saved["SPY"]) != 2 {
		t.Errorf("expected refreshed closes written back to cache, got %v", st.saved)
	}
}

func TestGenerateMockCloses(t *testing.T) {
	points := generateMockCloses(100, 60)
	if len(points) != 60 {
		t.Fatalf("expected 60 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if !points[i-1].Date.Before(points[i].Date) {
			t.Fatal("expected strictly increasing dates")
		}
	}
	if points[0].Close >= points[len(points)-1].Close {
		t.Error("expected a gentle upward drift in mock data")
	}
}
