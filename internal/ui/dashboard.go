// Package ui renders the three-panel terminal dashboard.
package ui

import (
	"fmt"
	"image"
	"math"

	"github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
)

const outlierPanelWidth = 30

// OutlierRule decides which risk-map points get a symbol label.
type OutlierRule struct {
	TrendAbs float64 // label when |trend distance| exceeds this, percent
	Beta     float64 // label when beta exceeds this
}

// Dashboard holds the data behind the three panels.
type Dashboard struct {
	Metrics   *model.MetricsTable
	Benchmark string
	SMAWindow int
	Outliers  OutlierRule
}

// Run takes over the terminal until q, Ctrl-C or an init error.
func (d *Dashboard) Run() error {
	if err := termui.Init(); err != nil {
		return fmt.Errorf("init termui: %w", err)
	}
	defer termui.Close()

	d.render()

	for e := range termui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>":
			return nil
		case "<Resize>":
			termui.Clear()
			d.render()
		}
	}
	return nil
}

func (d *Dashboard) render() {
	w, h := termui.TerminalDimensions()
	half := h / 2

	pie := d.breadthPie()
	pie.SetRect(0, 0, w/2, half)

	hist := d.trendHistogram(w - w/2)
	hist.SetRect(w/2, 0, w, half)

	scatter := d.riskMap(image.Rect(0, half, w-outlierPanelWidth, h))
	labels := d.outlierList()
	labels.SetRect(w-outlierPanelWidth, half, w, h)

	termui.Render(pie, hist, scatter, labels)
}

func (d *Dashboard) breadthPie() *widgets.PieChart {
	bullish, bearish, undefined := d.Metrics.Bullish()
	total := float64(bullish + bearish + undefined)

	var data []float64
	var names []string
	var colors []termui.Color
	add := func(count int, name string, color termui.Color) {
		if count > 0 {
			data = append(data, float64(count))
			names = append(names, name)
			colors = append(colors, color)
		}
	}
	add(bullish, "Bull", termui.ColorGreen)
	add(bearish, "Bear", termui.ColorRed)
	add(undefined, "n/a", termui.ColorYellow)

	pie := widgets.NewPieChart()
	pie.Title = fmt.Sprintf("Market Regime: %d bullish / %d bearish", bullish, bearish)
	pie.Data = data
	pie.Colors = colors
	pie.AngleOffset = -.5 * math.Pi
	pie.LabelFormatter = func(i int, v float64) string {
		return fmt.Sprintf("%s %.1f%%", names[i], v/total*100)
	}
	return pie
}

func (d *Dashboard) trendHistogram(width int) *widgets.BarChart {
	var trends []float64
	for _, rec := range d.Metrics.Records {
		if rec.TrendOK {
			trends = append(trends, rec.TrendDistPct)
		}
	}

	// One bar costs BarWidth plus the gap.
	binCount := (width - 2) / 6
	if binCount > 12 {
		binCount = 12
	}
	if binCount < 4 {
		binCount = 4
	}
	counts, labels := histogram(trends, binCount)

	bar := widgets.NewBarChart()
	bar.Title = fmt.Sprintf("Trend Strength: %% distance from %d-day SMA", d.SMAWindow)
	bar.Data = counts
	bar.Labels = labels
	bar.BarWidth = 5
	bar.BarGap = 1
	bar.BarColors = []termui.Color{termui.ColorCyan}
	bar.NumFormatter = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	return bar
}

// riskMap draws beta (x) against trend distance (y) on a braille canvas.
// Blob size encodes volatility; reference lines mark beta 1 and trend 0.
func (d *Dashboard) riskMap(rect image.Rectangle) *termui.Canvas {
	canvas := termui.NewCanvas()
	canvas.Title = fmt.Sprintf("Risk Map: beta vs %s (x) / trend %% (y), blob size = volatility", d.Benchmark)
	canvas.SetRect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y)

	points := d.plottable()
	if len(points) == 0 {
		return canvas
	}

	bLo, bHi := valueRange(points, func(r model.MetricsRecord) float64 { return r.Beta }, 1.0)
	tLo, tHi := valueRange(points, func(r model.MetricsRecord) float64 { return r.TrendDistPct }, 0.0)

	// Braille resolution: 2 dots per cell across, 4 dots per cell down.
	xLo, xHi := (rect.Min.X+1)*2, (rect.Max.X-1)*2-1
	yLo, yHi := (rect.Min.Y+1)*4, (rect.Max.Y-1)*4-1

	betaX := func(beta float64) int { return scale(beta, bLo, bHi, xLo, xHi) }
	trendY := func(trend float64) int { return scale(trend, tLo, tHi, yHi, yLo) }

	canvas.SetLine(image.Pt(betaX(1.0), yLo), image.Pt(betaX(1.0), yHi), termui.ColorWhite)
	canvas.SetLine(image.Pt(xLo, trendY(0)), image.Pt(xHi, trendY(0)), termui.ColorWhite)

	for _, rec := range points {
		color := termui.ColorRed
		if rec.TrendDistPct > 0 {
			color = termui.ColorGreen
		}
		cx, cy := betaX(rec.Beta), trendY(rec.TrendDistPct)
		r := blobRadius(rec.VolatilityPct)
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				x, y := cx+dx, cy+dy
				if x < xLo || x > xHi || y < yLo || y > yHi {
					continue
				}
				canvas.SetPoint(image.Pt(x, y), color)
			}
		}
	}
	return canvas
}

func (d *Dashboard) outlierList() *widgets.List {
	list := widgets.NewList()
	list.Title = "Outliers"
	for _, rec := range d.plottable() {
		if !d.isOutlier(rec) {
			continue
		}
		list.Rows = append(list.Rows,
			fmt.Sprintf("[%s](fg:yellow) %+.1f%% beta %.2f", rec.Symbol, rec.TrendDistPct, rec.Beta))
	}
	if len(list.Rows) == 0 {
		list.Rows = []string{"none"}
	}
	return list
}

// plottable returns the records that have both risk-map coordinates.
func (d *Dashboard) plottable() []model.MetricsRecord {
	var out []model.MetricsRecord
	for _, rec := range d.Metrics.Records {
		if rec.TrendOK && rec.BetaOK {
			out = append(out, rec)
		}
	}
	return out
}

func (d *Dashboard) isOutlier(rec model.MetricsRecord) bool {
	return math.Abs(rec.TrendDistPct) > d.Outliers.TrendAbs || rec.Beta > d.Outliers.Beta
}

// histogram buckets values into binCount equal-width bins, labeling each
// bin with its lower edge.
func histogram(values []float64, binCount int) ([]float64, []string) {
	if len(values) == 0 || binCount < 1 {
		return nil, nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return []float64{float64(len(values))}, []string{fmt.Sprintf("%+.0f", lo)}
	}

	width := (hi - lo) / float64(binCount)
	counts := make([]float64, binCount)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= binCount {
			idx = binCount - 1 // the maximum lands in the last bin
		}
		counts[idx]++
	}

	labels := make([]string, binCount)
	for i := range labels {
		labels[i] = fmt.Sprintf("%+.0f", lo+width*float64(i))
	}
	return counts, labels
}

// scale maps v from [lo, hi] onto the inclusive integer range [outLo, outHi].
// Passing outHi < outLo inverts the axis.
func scale(v, lo, hi float64, outLo, outHi int) int {
	if hi == lo {
		return (outLo + outHi) / 2
	}
	pos := (v - lo) / (hi - lo)
	return outLo + int(math.Round(pos*float64(outHi-outLo)))
}

// valueRange pads the min/max of a metric by 10% per side and always keeps
// ref inside, so reference lines stay visible.
func valueRange(records []model.MetricsRecord, metric func(model.MetricsRecord) float64, ref float64) (float64, float64) {
	lo, hi := ref, ref
	for _, rec := range records {
		v := metric(rec)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - span*0.1, hi + span*0.1
}

func blobRadius(volatility float64) int {
	r := int(volatility / 10)
	if r < 1 {
		r = 1
	}
	if r > 4 {
		r = 4
	}
	return r
}
