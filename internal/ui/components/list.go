package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Column describes a table column
type Column struct {
	Title string
	Width int
}

// Cell is a table value with an optional color
type Cell struct {
	Text  string
	Color *lipgloss.AdaptiveColor
}

// Table is a navigable list of rows with fixed-width columns
type Table struct {
	Title    string
	Columns  []Column
	Rows     [][]Cell
	Selected int // -1 disables the highlight
	Height   int // visible rows, 0 shows all
	Palette  Palette
}

// NewTable creates a new table
func NewTable(title string, columns []Column, palette Palette) *Table {
	return &Table{
		Title:    title,
		Columns:  columns,
		Selected: -1,
		Palette:  palette,
	}
}

// AddRow appends a row; missing cells render empty
func (t *Table) AddRow(cells ...Cell) {
	t.Rows = append(t.Rows, cells)
}

// SetSelected highlights a row
func (t *Table) SetSelected(i int) *Table {
	t.Selected = i
	return t
}

// Text is a plain cell
func Text(s string) Cell { return Cell{Text: s} }

// Colored is a cell drawn in c
func Colored(s string, c lipgloss.AdaptiveColor) Cell { return Cell{Text: s, Color: &c} }

// Render renders the table
func (t *Table) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(t.Palette.Muted).Bold(true)
	selectedStyle := lipgloss.NewStyle().Background(t.Palette.Selected).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(t.Palette.Foreground)

	var content []string
	if t.Title != "" {
		content = append(content, lipgloss.NewStyle().Foreground(t.Palette.Cyber).Bold(true).Render(t.Title))
	}

	header := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		header = append(header, pad(strings.ToUpper(col.Title), col.Width))
	}
	content = append(content, headerStyle.Render(strings.Join(header, " ")))

	if len(t.Rows) == 0 {
		content = append(content, headerStyle.UnsetBold().Render("(empty)"))
		return lipgloss.JoinVertical(lipgloss.Left, content...)
	}

	start, end := t.visibleRange()
	for i := start; i < end; i++ {
		cells := make([]string, 0, len(t.Columns))
		for c, col := range t.Columns {
			var cell Cell
			if c < len(t.Rows[i]) {
				cell = t.Rows[i][c]
			}
			text := pad(cell.Text, col.Width)
			if cell.Color != nil {
				text = lipgloss.NewStyle().Foreground(*cell.Color).Render(text)
			}
			cells = append(cells, text)
		}
		line := strings.Join(cells, " ")
		if i == t.Selected {
			line = selectedStyle.Render("▶ " + line)
		} else {
			line = normalStyle.Render("  " + line)
		}
		content = append(content, line)
	}

	if end-start < len(t.Rows) {
		content = append(content, headerStyle.UnsetBold().Render(fmt.Sprintf("(%d-%d of %d)", start+1, end, len(t.Rows))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

// visibleRange keeps the selected row on screen
func (t *Table) visibleRange() (int, int) {
	if t.Height <= 0 || len(t.Rows) <= t.Height {
		return 0, len(t.Rows)
	}
	start := 0
	if t.Selected >= t.Height {
		start = t.Selected - t.Height + 1
	}
	return start, min(start+t.Height, len(t.Rows))
}

// pad truncates or right-pads s to width display cells
func pad(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = ansi.Truncate(s, width, "…")
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}
