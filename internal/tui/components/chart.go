package components

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/display"
	"nathanbeddoewebdev/opsdeck/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const sparkHeight = 5

// Sparkline plots a single series under a label, with a one-line summary
// of the total and the peak.
func Sparkline(label string, data []float64, width int, caption string) string {
	if len(data) == 0 {
		return styles.MutedText.Render(label + ": no data")
	}

	plotWidth := max(width-9, 10)
	chart := asciigraph.Plot(data,
		asciigraph.Height(sparkHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.DodgerBlue),
		asciigraph.LabelColor(asciigraph.Default),
		asciigraph.Caption(caption),
	)

	total, peak := 0.0, data[0]
	for _, v := range data {
		total += v
		peak = max(peak, v)
	}
	summary := styles.MutedText.Render(fmt.Sprintf("  total: %.0f  peak: %.0f", total, peak))

	return lipgloss.JoinVertical(lipgloss.Left, styles.Label.Render(label), chart, summary)
}

// Bar is one labelled usage percentage.
type Bar struct {
	Label   string
	Percent int
	Level   display.Level
}

// BarChart draws vertical usage bars scaled to 100%.
func BarChart(bars []Bar, width, height int) string {
	if len(bars) == 0 {
		return styles.MutedText.Render("nothing to chart")
	}

	data := make([]barchart.BarData, len(bars))
	for i, b := range bars {
		data[i] = barchart.BarData{
			Label: shorten(b.Label, 8),
			Values: []barchart.BarValue{{
				Name:  b.Label,
				Value: float64(b.Percent),
				Style: lipgloss.NewStyle().Foreground(styles.LevelColor(b.Level)),
			}},
		}
	}

	bc := barchart.New(width, height, barchart.WithMaxValue(100))
	bc.PushAll(data)
	bc.Draw()
	return bc.View()
}

// Gauge renders a horizontal fill bar followed by the percentage.
//
//	████████░░░░  67%
func Gauge(percent int, level display.Level, width int) string {
	width = max(width, 4)
	filled := min(max(percent, 0), 100) * width / 100
	bar := lipgloss.NewStyle().Foreground(styles.LevelColor(level)).Render(strings.Repeat("█", filled)) +
		styles.MutedText.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d%%", bar, percent)
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
