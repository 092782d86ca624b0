package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette carries the theme colors. Components take it by value to avoid
// an import cycle with the ui package.
type Palette struct {
	Cyber      lipgloss.AdaptiveColor
	Safe       lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor
	Danger     lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor
}

// ProgressBar represents a progress bar component
type ProgressBar struct {
	Width   int
	Percent float64 // 0..100
	Label   string
	Color   lipgloss.AdaptiveColor
	Palette Palette
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int, palette Palette) *ProgressBar {
	return &ProgressBar{
		Width:   width,
		Color:   palette.Cyber,
		Palette: palette,
	}
}

// SetPercent updates the progress, clamped to [0, 100]
func (p *ProgressBar) SetPercent(pct float64) *ProgressBar {
	p.Percent = min(max(pct, 0), 100)
	return p
}

// SetLabel sets the progress label
func (p *ProgressBar) SetLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// SetColor sets the fill color
func (p *ProgressBar) SetColor(c lipgloss.AdaptiveColor) *ProgressBar {
	p.Color = c
	return p
}

// Render renders the bar followed by the rounded percentage
func (p *ProgressBar) Render() string {
	fill := lipgloss.NewStyle().Foreground(p.Color).Bold(true)
	muted := lipgloss.NewStyle().Foreground(p.Palette.Muted)

	filledWidth := int(float64(p.Width) * p.Percent / 100)
	bar := fill.Render(strings.Repeat("█", filledWidth)) +
		muted.Render(strings.Repeat("░", p.Width-filledWidth))

	result := fmt.Sprintf("%s %3d%%", bar, int(math.Round(p.Percent)))
	if p.Label != "" {
		result = p.Label + "\n" + result
	}
	return result
}

// Meter renders a compact density bar without the percentage
func Meter(width, pct int, color lipgloss.AdaptiveColor, palette Palette) string {
	pct = min(max(pct, 0), 100)
	filled := width * pct / 100
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▰", filled)) +
		lipgloss.NewStyle().Foreground(palette.Muted).Render(strings.Repeat("▱", width-filled))
}

// Indeterminate renders a striped bar for work without measurable progress
func Indeterminate(width int, palette Palette) string {
	var bar strings.Builder
	stripe := lipgloss.NewStyle().Foreground(palette.Cyber).Bold(true)
	gap := lipgloss.NewStyle().Foreground(palette.Muted)
	for i := 0; i < width; i++ {
		if i%6 < 3 {
			bar.WriteString(stripe.Render("▓"))
		} else {
			bar.WriteString(gap.Render("░"))
		}
	}
	return bar.String()
}

// spinnerFrames are the braille animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame int
	Label string
	Color lipgloss.AdaptiveColor
}

// NewSpinner creates a new spinner
func NewSpinner(color lipgloss.AdaptiveColor) *Spinner {
	return &Spinner{Color: color}
}

// SetLabel sets the spinner label
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	spinner := lipgloss.NewStyle().Foreground(s.Color).Bold(true).Render(spinnerFrames[s.Frame])
	if s.Label != "" {
		return fmt.Sprintf("%s %s", spinner, s.Label)
	}
	return spinner
}
