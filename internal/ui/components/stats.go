package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatsCard represents a statistics card component
type StatsCard struct {
	Title       string
	Value       string
	Description string
	Color       lipgloss.AdaptiveColor
	Icon        string
	Width       int
	Palette     Palette
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value, description string, palette Palette) *StatsCard {
	return &StatsCard{
		Title:       title,
		Value:       value,
		Description: description,
		Color:       palette.Cyber,
		Width:       20,
		Palette:     palette,
	}
}

// SetColor sets the value color
func (s *StatsCard) SetColor(c lipgloss.AdaptiveColor) *StatsCard {
	s.Color = c
	return s
}

// SetIcon sets the card icon
func (s *StatsCard) SetIcon(icon string) *StatsCard {
	s.Icon = icon
	return s
}

// SetWidth sets the card width
func (s *StatsCard) SetWidth(width int) *StatsCard {
	s.Width = width
	return s
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(s.Palette.Muted)
	valueStyle := lipgloss.NewStyle().Foreground(s.Color).Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Palette.Border).
		Padding(0, 1)

	title := titleStyle.Render(strings.ToUpper(s.Title))
	if s.Icon != "" {
		title = s.Icon + " " + title
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		valueStyle.Render(s.Value),
		titleStyle.Render(s.Description),
	)
	return boxStyle.Width(s.Width).Render(content)
}

// StatsDashboard lays cards out in rows
type StatsDashboard struct {
	cards     []*StatsCard
	columns   int
	cardWidth int
}

// NewStatsDashboard creates a new stats dashboard
func NewStatsDashboard(columns int) *StatsDashboard {
	return &StatsDashboard{
		columns:   max(columns, 1),
		cardWidth: 20,
	}
}

// AddCard adds a stats card to the dashboard
func (d *StatsDashboard) AddCard(card *StatsCard) {
	card.SetWidth(d.cardWidth)
	d.cards = append(d.cards, card)
}

// SetCardWidth sets the width of all cards
func (d *StatsDashboard) SetCardWidth(width int) {
	d.cardWidth = width
	for _, card := range d.cards {
		card.SetWidth(width)
	}
}

// Render renders the stats dashboard
func (d *StatsDashboard) Render() string {
	if len(d.cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(d.cards); i += d.columns {
		end := min(i+d.columns, len(d.cards))

		var rowCards []string
		for _, card := range d.cards[i:end] {
			rowCards = append(rowCards, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// FormatNumber formats large numbers with thousands separators
func FormatNumber(n int) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	str := strconv.Itoa(n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// SummaryBox creates a titled box of key/value lines
type SummaryBox struct {
	Title   string
	Content []string
	Width   int
	Palette Palette
}

// NewSummaryBox creates a new summary box
func NewSummaryBox(title string, width int, palette Palette) *SummaryBox {
	return &SummaryBox{
		Title:   title,
		Width:   width,
		Palette: palette,
	}
}

// AddLine adds a line to the summary
func (s *SummaryBox) AddLine(line string) {
	s.Content = append(s.Content, line)
}

// AddKeyValue adds a key-value pair to the summary
func (s *SummaryBox) AddKeyValue(key, value string) {
	s.Content = append(s.Content, fmt.Sprintf("%-15s %s", key, value))
}

// Render renders the summary box
func (s *SummaryBox) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(s.Palette.Cyber).Bold(true)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(s.Palette.Border).Padding(0, 1)

	content := make([]string, 0, len(s.Content)+1)
	content = append(content, headerStyle.Render(s.Title))
	content = append(content, s.Content...)

	return boxStyle.Width(s.Width).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
