// internal/sim/chart.go
package sim

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HistogramChart builds a bar chart of the score histogram.
func HistogramChart(title string, sum Summary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d games, mean %.2f, median %.1f", sum.Games, sum.Mean, sum.Median),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "points"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "games"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)

	labels := make([]string, len(sum.Histogram))
	items := make([]opts.BarData, len(sum.Histogram))
	for p, n := range sum.Histogram {
		labels[p] = strconv.Itoa(p)
		items[p] = opts.BarData{Value: n}
	}
	bar.SetXAxis(labels).AddSeries("games", items)
	return bar
}

// RenderChart writes the histogram page as HTML.
func RenderChart(w io.Writer, title string, sum Summary) error {
	page := components.NewPage()
	page.AddCharts(HistogramChart(title, sum))
	return page.Render(w)
}

// WriteChart renders the histogram page to path, creating its directory.
func WriteChart(path, title string, sum Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("chart dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := RenderChart(f, title, sum); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}
