package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkChars from lowest to highest
var sparkChars = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// SparklineChart represents a compact sparkline chart
type SparklineChart struct {
	Values []float64
	Width  int
	Min    float64
	Max    float64
	Color  lipgloss.AdaptiveColor
}

// NewSparklineChart creates a new sparkline chart
func NewSparklineChart(values []float64, width int, color lipgloss.AdaptiveColor) *SparklineChart {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)

	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}

	return &SparklineChart{
		Values: values,
		Width:  width,
		Min:    minVal,
		Max:    maxVal,
		Color:  color,
	}
}

// Render renders the sparkline chart
func (s *SparklineChart) Render() string {
	if len(s.Values) == 0 || s.Width <= 0 {
		return ""
	}

	step := len(s.Values) / s.Width
	if step == 0 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < s.Width && i*step < len(s.Values); i++ {
		value := s.Values[i*step]

		normalized := 0.0
		if s.Max > s.Min {
			normalized = (value - s.Min) / (s.Max - s.Min)
		}

		charIndex := min(int(normalized*float64(len(sparkChars)-1)), len(sparkChars)-1)
		result.WriteString(sparkChars[charIndex])
	}

	return lipgloss.NewStyle().Foreground(s.Color).Render(result.String())
}

// Series is one labelled line of a TrendChart
type Series struct {
	Label  string
	Values []float64
	Color  lipgloss.AdaptiveColor
}

// TrendChart stacks sparklines that share an x axis
type TrendChart struct {
	Title   string
	Labels  []string // x axis, one per value
	Series  []Series
	Palette Palette
}

// NewTrendChart creates a chart over the given x labels
func NewTrendChart(title string, labels []string, palette Palette) *TrendChart {
	return &TrendChart{Title: title, Labels: labels, Palette: palette}
}

// AddSeries adds a line to the chart
func (t *TrendChart) AddSeries(s Series) *TrendChart {
	t.Series = append(t.Series, s)
	return t
}

// Render draws each series with its min and max and a sparse time axis
func (t *TrendChart) Render() string {
	muted := lipgloss.NewStyle().Foreground(t.Palette.Muted)
	lines := []string{lipgloss.NewStyle().Foreground(t.Palette.Cyber).Bold(true).Render(t.Title)}

	if len(t.Series) == 0 || len(t.Labels) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, muted.Render("No data"))...)
	}

	for _, s := range t.Series {
		spark := NewSparklineChart(s.Values, len(s.Values), s.Color)
		lines = append(lines, fmt.Sprintf("%-7s %s %s",
			s.Label, spark.Render(), muted.Render(fmt.Sprintf("%.0f–%.0f", spark.Min, spark.Max))))
	}
	lines = append(lines, strings.Repeat(" ", 8)+muted.Render(t.renderAxis()))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderAxis prints the first, middle and last label under the sparklines
func (t *TrendChart) renderAxis() string {
	width := len(t.Labels)
	axis := []rune(strings.Repeat(" ", width+6))
	place := func(pos int, label string) {
		for i, r := range label {
			if pos+i < len(axis) {
				axis[pos+i] = r
			}
		}
	}
	place(0, t.Labels[0])
	if width > 2 {
		mid := width / 2
		place(mid, t.Labels[mid])
	}
	place(max(width-len(t.Labels[width-1]), 0), t.Labels[width-1])
	return strings.TrimRight(string(axis), " ")
}

// BarRow is one labelled value of a BarChart
type BarRow struct {
	Label string
	Value int
	Color lipgloss.AdaptiveColor
	Note  string
	Share int // bar fill in percent; zero scales Value by Max
}

// BarChart draws horizontal bars scaled to Max
type BarChart struct {
	Rows       []BarRow
	Max        int
	BarWidth   int
	LabelWidth int
	Palette    Palette
}

// NewBarChart creates a chart with bars scaled to maxValue
func NewBarChart(maxValue, barWidth int, palette Palette) *BarChart {
	return &BarChart{Max: max(maxValue, 1), BarWidth: barWidth, LabelWidth: 16, Palette: palette}
}

// AddRow appends a bar
func (b *BarChart) AddRow(row BarRow) *BarChart {
	b.Rows = append(b.Rows, row)
	b.LabelWidth = max(b.LabelWidth, lipgloss.Width(row.Label)+1)
	return b
}

// Render renders the bars, one per line
func (b *BarChart) Render() string {
	lines := make([]string, 0, len(b.Rows))
	for _, row := range b.Rows {
		pct := row.Value * 100 / b.Max
		if row.Share > 0 {
			pct = row.Share
		}
		label := row.Label + strings.Repeat(" ", max(b.LabelWidth-lipgloss.Width(row.Label), 1))
		line := label + Meter(b.BarWidth, pct, row.Color, b.Palette) +
			" " + lipgloss.NewStyle().Foreground(row.Color).Bold(true).Render(fmt.Sprintf("%d", row.Value))
		if row.Note != "" {
			line += " " + lipgloss.NewStyle().Foreground(b.Palette.Muted).Render(row.Note)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
