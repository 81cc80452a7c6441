package exporter

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"traderoutes/pkg/contracts/domain"
)

// ChartOptions sizes the rendered bar chart.
type ChartOptions struct {
	Title    string
	Width    int
	Height   int
	BarWidth int
}

// DefaultChartOptions returns the chart size used by the HTTP export.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Title:    "Trade Volume by Partner",
		Width:    1024,
		Height:   512,
		BarWidth: 48,
	}
}

// RenderBarChart draws rows as a PNG bar chart, x=key and y=total volume.
// An empty input renders a single empty "No data" bar.
func RenderBarChart(w io.Writer, rows []domain.AggregateRow, opts ChartOptions) error {
	bars := make([]chart.Value, 0, len(rows))
	maxVal := 0.0
	for _, row := range rows {
		bars = append(bars, chart.Value{Label: row.Key, Value: row.TotalVolume})
		if row.TotalVolume > maxVal {
			maxVal = row.TotalVolume
		}
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: "No data", Value: 0})
	}

	width := opts.Width
	if minWidth := len(bars) * (opts.BarWidth + 16); width < minWidth {
		width = minWidth
	}

	graph := chart.BarChart{
		Title: opts.Title,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Width:    width,
		Height:   opts.Height,
		BarWidth: opts.BarWidth,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: max(maxVal, 1)},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
