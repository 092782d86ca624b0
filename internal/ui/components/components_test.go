package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

var testPalette = Palette{
	Cyber:      lipgloss.AdaptiveColor{Light: "#0088AA", Dark: "#00E5FF"},
	Safe:       lipgloss.AdaptiveColor{Light: "#008800", Dark: "#00FF88"},
	Warning:    lipgloss.AdaptiveColor{Light: "#AA6600", Dark: "#FFB300"},
	Danger:     lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF3355"},
	Border:     lipgloss.AdaptiveColor{Light: "#999999", Dark: "#334455"},
	Foreground: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
	Muted:      lipgloss.AdaptiveColor{Light: "#666666", Dark: "#778899"},
	Selected:   lipgloss.AdaptiveColor{Light: "#DDEEFF", Dark: "#123456"},
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{4281, "4,281"},
		{1234567, "1,234,567"},
		{-4281, "-4,281"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{-5, "  0%"},
		{37.6, " 38%"},
		{100, "100%"},
		{250, "100%"},
	}
	for _, tt := range tests {
		out := NewProgressBar(20, testPalette).SetPercent(tt.pct).Render()
		if !strings.HasSuffix(out, tt.want) {
			t.Errorf("SetPercent(%v) = %q, want suffix %q", tt.pct, out, tt.want)
		}
		if w := lipgloss.Width(out); w != 25 {
			t.Errorf("SetPercent(%v) width = %d", tt.pct, w)
		}
	}
}

func TestMeterClamps(t *testing.T) {
	for _, pct := range []int{-10, 0, 55, 100, 140} {
		if w := lipgloss.Width(Meter(10, pct, testPalette.Safe, testPalette)); w != 10 {
			t.Errorf("Meter(%d) width = %d", pct, w)
		}
	}
}

func TestTableScrollsToSelection(t *testing.T) {
	table := NewTable("Roster", []Column{{Title: "ID", Width: 6}, {Title: "Name", Width: 8}}, testPalette)
	for _, id := range []string{"G-001", "G-002", "G-003", "G-004", "G-005"} {
		table.AddRow(Text(id), Text("a very long guard name"))
	}
	table.Height = 2
	table.SetSelected(3)

	out := table.Render()
	if strings.Contains(out, "G-001") || !strings.Contains(out, "G-004") {
		t.Errorf("selected row not visible:\n%s", out)
	}
	if !strings.Contains(out, "(3-4 of 5)") {
		t.Errorf("missing scroll indicator:\n%s", out)
	}
	if !strings.Contains(out, "a very …") {
		t.Errorf("long cell not truncated:\n%s", out)
	}
}

func TestEmptyTable(t *testing.T) {
	out := NewTable("", []Column{{Title: "ID", Width: 4}}, testPalette).Render()
	if !strings.Contains(out, "(empty)") {
		t.Errorf("got %q", out)
	}
}

func TestBarChartShare(t *testing.T) {
	chart := NewBarChart(1000, 10, testPalette)
	chart.AddRow(BarRow{Label: "Elderly", Value: 342, Color: testPalette.Warning, Share: 50})
	out := chart.Render()
	if strings.Count(out, "▰") != 5 {
		t.Errorf("share not applied: %q", out)
	}
	if !strings.Contains(out, "342") {
		t.Errorf("value missing: %q", out)
	}
}

func TestStatsDashboardColumns(t *testing.T) {
	dash := NewStatsDashboard(2)
	for _, title := range []string{"Live", "Gates", "Guards"} {
		dash.AddCard(NewStatsCard(title, "1", "", testPalette))
	}
	dash.SetCardWidth(16)
	out := dash.Render()
	for _, title := range []string{"LIVE", "GATES", "GUARDS"} {
		if !strings.Contains(out, title) {
			t.Errorf("card %q missing", title)
		}
	}
}
