package screener

import (
	"testing"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
)

func rec(symbol string, trend, vol float64) model.MetricsRecord {
	return model.MetricsRecord{
		Symbol:        symbol,
		TrendDistPct:  trend,
		TrendOK:       true,
		VolatilityPct: vol,
		Beta:          1.0,
		BetaOK:        true,
	}
}

func symbols(records []model.MetricsRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Symbol
	}
	return out
}

func TestScreenFiltersAndSortsDescending(t *testing.T) {
	table := &model.MetricsTable{Records: []model.MetricsRecord{
		rec("LOW", 3.0, 10),    // below trend floor
		rec("MID", 8.0, 12),
		rec("WILD", 20.0, 40),  // too volatile
		rec("TOP", 12.5, 18),
	}}

	got := NewScreener(5.0, 25.0, 5).Screen(table)

	want := []string{"TOP", "MID"}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %v", len(want), symbols(got))
	}
	for i, symbol := range want {
		if got[i].Symbol != symbol {
			t.Errorf("position %d: expected %s, got %s", i, symbol, got[i].Symbol)
		}
	}
}

func TestScreenThresholdsAreStrict(t *testing.T) {
	table := &model.MetricsTable{Records: []model.MetricsRecord{
		rec("AT_FLOOR", 5.0, 10),
		rec("AT_CEILING", 10.0, 25.0),
		rec("INSIDE", 5.01, 24.99),
	}}

	got := NewScreener(5.0, 25.0, 5).Screen(table)

	if len(got) != 1 || got[0].Symbol != "INSIDE" {
		t.Errorf("expected only strictly-inside record, got %v", symbols(got))
	}
}

func TestScreenTruncatesToTopN(t *testing.T) {
	table := &model.MetricsTable{Records: []model.MetricsRecord{
		rec("A", 6, 10), rec("B", 7, 10), rec("C", 8, 10),
		rec("D", 9, 10), rec("E", 10, 10), rec("F", 11, 10),
		rec("G", 12, 10),
	}}

	got := NewScreener(5.0, 25.0, 5).Screen(table)

	if len(got) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(got))
	}
	if got[0].Symbol != "G" || got[4].Symbol != "C" {
		t.Errorf("expected strongest five, got %v", symbols(got))
	}
}

func TestScreenTiesKeepOriginalOrder(t *testing.T) {
	table := &model.MetricsTable{Records: []model.MetricsRecord{
		rec("FIRST", 9.0, 10),
		rec("SECOND", 9.0, 12),
		rec("THIRD", 9.0, 14),
	}}

	got := NewScreener(5.0, 25.0, 5).Screen(table)

	want := []string{"FIRST", "SECOND", "THIRD"}
	for i, symbol := range want {
		if got[i].Symbol != symbol {
			t.Fatalf("expected stable order %v, got %v", want, symbols(got))
		}
	}
}

func TestScreenExcludesInvalidTrend(t *testing.T) {
	invalid := rec("NO_TREND", 50.0, 10)
	invalid.TrendOK = false
	table := &model.MetricsTable{Records: []model.MetricsRecord{
		invalid,
		rec("OK", 6.0, 10),
	}}

	got := NewScreener(5.0, 25.0, 5).Screen(table)

	if len(got) != 1 || got[0].Symbol != "OK" {
		t.Errorf("expected invalid-trend record excluded, got %v", symbols(got))
	}
}

func TestScreenEmptyTable(t *testing.T) {
	got := NewScreener(5.0, 25.0, 5).Screen(&model.MetricsTable{})
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %v", symbols(got))
	}
}

func TestScreenZeroTopNMeansUnlimited(t *testing.T) {
	table := &model.MetricsTable{Records: []model.MetricsRecord{
		rec("A", 6, 10), rec("B", 7, 10), rec("C", 8, 10),
		rec("D", 9, 10), rec("E", 10, 10), rec("F", 11, 10),
	}}

	got := NewScreener(5.0, 25.0, 0).Screen(table)

	if len(got) != 6 {
		t.Errorf("expected all passing candidates, got %d", len(got))
	}
}
