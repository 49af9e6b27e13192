package model

import (
	"math"
	"time"
)

// ClosePoint represents a single daily closing price observation.
type ClosePoint struct {
	Date  time.Time
	Close float64
}

// PriceTable holds daily closing prices for a set of symbols on a shared
// date axis. Every column has exactly len(Dates) entries; a missing
// observation is stored as NaN until the cleaner removes the column.
type PriceTable struct {
	Dates   []time.Time
	Symbols []string
	Columns map[string][]float64
}

// NewPriceTable creates an empty table over the given ascending date axis.
func NewPriceTable(dates []time.Time) *PriceTable {
	return &PriceTable{
		Dates:   dates,
		Columns: make(map[string][]float64),
	}
}

// AddColumn appends a symbol column. Column length must equal len(Dates);
// re-adding an existing symbol replaces its data without duplicating the
// column order entry.
func (t *PriceTable) AddColumn(symbol string, closes []float64) {
	if _, ok := t.Columns[symbol]; !ok {
		t.Symbols = append(t.Symbols, symbol)
	}
	t.Columns[symbol] = closes
}

// Column returns the close series for symbol, or nil when absent.
func (t *PriceTable) Column(symbol string) []float64 {
	return t.Columns[symbol]
}

// Len returns the number of trading days on the date axis.
func (t *PriceTable) Len() int {
	return len(t.Dates)
}

// HasMissing reports whether the symbol's column contains any NaN entry.
// An absent column counts as missing.
func (t *PriceTable) HasMissing(symbol string) bool {
	col, ok := t.Columns[symbol]
	if !ok {
		return true
	}
	for _, v := range col {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
