// internal/sim/report.go
package sim

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	headerColor = color.New(color.FgWhite, color.Bold)
	goodColor   = color.New(color.FgGreen)
	badColor    = color.New(color.FgRed)
)

// WriteReport renders a summary as tables: the headline figures, the end
// reasons and the score histogram.
func WriteReport(w io.Writer, title string, sum Summary, elapsed time.Duration) {
	headerColor.Fprintf(w, "\n--- %s ---\n", title)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Games", "Errored", "Mean", "Median", "Min", "Max", "Elapsed"})
	errored := humanize.Comma(int64(sum.Errored))
	if sum.Errored > 0 {
		errored = badColor.Sprint(errored)
	}
	t.AppendRow(table.Row{
		humanize.Comma(int64(sum.Games)),
		errored,
		fmt.Sprintf("%s / %d", humanize.FtoaWithDigits(sum.Mean, 2), sum.MaxScore),
		humanize.FtoaWithDigits(sum.Median, 1),
		sum.Min,
		sum.Max,
		elapsed.Round(time.Millisecond),
	})
	t.Render()

	if len(sum.Reasons) > 0 {
		r := table.NewWriter()
		r.SetOutputMirror(w)
		r.SetStyle(table.StyleLight)
		r.AppendHeader(table.Row{"End reason", "Games", "Share"})
		for _, name := range sum.ReasonNames() {
			n := sum.Reasons[name]
			label := name
			if name == ReasonError {
				label = badColor.Sprint(name)
			}
			r.AppendRow(table.Row{label, humanize.Comma(int64(n)), percent(n, sum.Games)})
		}
		r.Render()
	}

	h := table.NewWriter()
	h.SetOutputMirror(w)
	h.SetStyle(table.StyleLight)
	h.AppendHeader(table.Row{"Points", "Games", ""})
	peak := 0
	for _, n := range sum.Histogram {
		peak = max(peak, n)
	}
	for p, n := range sum.Histogram {
		if n == 0 {
			continue
		}
		bar := strings.Repeat("#", scaled(n, peak, 40))
		if p == sum.MaxScore {
			bar = goodColor.Sprint(bar)
		}
		h.AppendRow(table.Row{p, humanize.Comma(int64(n)), bar})
	}
	h.Render()
}

func percent(n, total int) string {
	if total == 0 {
		return "-"
	}
	return humanize.FtoaWithDigits(100*float64(n)/float64(total), 1) + "%"
}

// scaled maps n in [0, peak] onto [1, width] for non-zero n.
func scaled(n, peak, width int) int {
	if n <= 0 || peak <= 0 {
		return 0
	}
	return max(1, n*width/peak)
}
