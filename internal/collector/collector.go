package collector

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/store"
)

const dateKey = "2006-01-02"

// cacheFreshness is the maximum age of the newest cached close before a
// symbol is refetched. Four days spans weekends and most exchange holidays.
const cacheFreshness = 4 * 24 * time.Hour

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Closes map[string][]model.ClosePoint // per-symbol series override
	Errs   map[string]error              // per-symbol forced failures
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(symbol string, days int) ([]model.ClosePoint, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if points, ok := m.Closes[symbol]; ok {
		return points, nil
	}
	return generateMockCloses(m.Price, days), nil
}

func generateMockCloses(basePrice float64, count int) []model.ClosePoint {
	points := make([]model.ClosePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.ClosePoint{
			Date:  time.Now().AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return points
}

// Collector assembles the aligned close-price table for the whole universe.
type Collector struct {
	Fetcher      Fetcher
	Store        store.Store
	Symbols      []string
	Benchmark    string
	LookbackDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, st store.Store, symbols []string, benchmark string, lookbackDays int) *Collector {
	return &Collector{
		Fetcher:      fetcher,
		Store:        st,
		Symbols:      symbols,
		Benchmark:    benchmark,
		LookbackDays: lookbackDays,
	}
}

// Collect fetches daily closes for every universe symbol plus the benchmark
// and aligns them onto the union of their trading days. Symbols that fail to
// fetch are dropped with a warning; days a symbol did not trade become NaN
// holes for the cleaner to judge. It fails only when no symbol returns data.
func (c *Collector) Collect() (*model.PriceTable, error) {
	universe := dedupeSymbols(append(append([]string{}, c.Symbols...), c.Benchmark))

	series := make(map[string][]model.ClosePoint, len(universe))
	order := make([]string, 0, len(universe))
	for _, symbol := range universe {
		points, err := c.closesFor(symbol)
		if err != nil {
			log.Printf("[WARN] fetch %s via %s failed: %v, dropping symbol", symbol, c.Fetcher.Name(), err)
			continue
		}
		if len(points) == 0 {
			log.Printf("[WARN] no closes returned for %s, dropping symbol", symbol)
			continue
		}
		series[symbol] = points
		order = append(order, symbol)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("collect: no symbol returned any data")
	}

	table := alignByDate(series, order)
	log.Printf("[INFO] collected %d/%d symbols across %d trading days", len(order), len(universe), table.Len())
	return table, nil
}

// closesFor serves a symbol from the price cache when it is fresh enough,
// otherwise fetches from the network and refreshes the cache.
func (c *Collector) closesFor(symbol string) ([]model.ClosePoint, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -c.LookbackDays)

	if c.Store != nil {
		cached, err := c.Store.LoadCloses(symbol, from, to)
		if err != nil {
			log.Printf("[WARN] price cache read for %s failed: %v", symbol, err)
		} else if isFresh(cached, to) {
			return cached, nil
		}
	}

	points, err := c.Fetcher.FetchDailyCloses(symbol, c.LookbackDays)
	if err != nil {
		return nil, err
	}
	if c.Store != nil {
		if err := c.Store.SaveCloses(symbol, points); err != nil {
			log.Printf("[WARN] price cache write for %s failed: %v", symbol, err)
		}
	}
	return points, nil
}

func isFresh(points []model.ClosePoint, now time.Time) bool {
	if len(points) == 0 {
		return false
	}
	return now.Sub(points[len(points)-1].Date) <= cacheFreshness
}

func dedupeSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// alignByDate merges per-symbol series onto the sorted union of their
// trading days, keyed by calendar date.
func alignByDate(series map[string][]model.ClosePoint, order []string) *model.PriceTable {
	dateSet := make(map[string]time.Time)
	for _, points := range series {
		for _, p := range points {
			key := p.Date.Format(dateKey)
			if _, ok := dateSet[key]; !ok {
				dateSet[key] = p.Date
			}
		}
	}

	keys := make([]string, 0, len(dateSet))
	for k := range dateSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dates := make([]time.Time, len(keys))
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		dates[i] = dateSet[k]
		index[k] = i
	}

	table := model.NewPriceTable(dates)
	for _, symbol := range order {
		column := make([]float64, len(dates))
		for i := range column {
			column[i] = math.NaN()
		}
		for _, p := range series[symbol] {
			column[index[p.Date.Format(dateKey)]] = p.Close
		}
		table.AddColumn(symbol, column)
	}
	return table
}
