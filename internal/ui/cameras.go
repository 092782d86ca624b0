package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/emoji"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/ui/components"
)

const (
	feedCols = 48
	feedRows = 12
)

func renderCameras(st *state.AppState, width int) string {
	styles := GetStyles()

	return strings.Join([]string{
		renderCameraTiles(st, width),
		columns(width, renderSelectedFeed(st), renderDetectionStats()),
		renderZoneMap(),
		styles.Muted.Render("←/→ select camera"),
	}, "\n\n")
}

// renderCameraTiles draws one tile per gate with the overlay clock
func renderCameraTiles(st *state.AppState, width int) string {
	styles := GetStyles()
	clock := formatClock(st.CameraSeconds())

	tiles := make([]string, 0, len(st.Gates()))
	for i, g := range st.Gates() {
		tone := LevelTone(string(g.Status))
		border := styles.Theme.Border
		if i == st.SelectedGateIndex() {
			border = styles.Theme.Cyber
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			styles.Danger.Render(emoji.GetEmoji("rec")+" REC")+" "+styles.Muted.Render(clock),
			styles.Cyber.Render(g.CameraID),
			styles.Body.Render(g.ShortName()),
			styles.Tone(tone).Render(fmt.Sprintf("%d ppl", g.Count)),
		)
		tiles = append(tiles, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(max(width/4-4, 16)).
			Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// renderSelectedFeed draws the enlarged feed with the detection overlay
func renderSelectedFeed(st *state.AppState) string {
	styles := GetStyles()
	gate := st.SelectedGate()

	frame := make([][]string, feedRows)
	for y := range frame {
		frame[y] = strings.Split(strings.Repeat("·", feedCols), "")
	}
	for _, box := range fixtures.DetectionBoxes() {
		x := min(box.X*feedCols/100, feedCols-1)
		y := min(box.Y*feedRows/100, feedRows-1)
		label := "[" + box.Kind + "]"
		for i, r := range label {
			if x+i >= feedCols {
				break
			}
			frame[y][x+i] = styles.Tone(box.Tone).Render(string(r))
		}
	}
	rows := make([]string, 0, feedRows)
	for _, row := range frame {
		rows = append(rows, strings.Join(row, ""))
	}

	header := styles.Danger.Render(emoji.GetEmoji("live")+" LIVE · "+gate.CameraID) + "  " +
		styles.Safe.Render("AI DETECTION: ON")
	footer := fmt.Sprintf("%s %s\n%s",
		styles.Muted.Render("CROWD COUNT"),
		styles.Tone(LevelTone(string(gate.Status))).Render(components.FormatNumber(gate.Count)),
		styles.Muted.Render(fmt.Sprintf("Capacity: %d · %d%% full", gate.Capacity, gate.DensityPct())))

	return lipgloss.JoinVertical(lipgloss.Left,
		section(gate.Name),
		header,
		styles.Muted.Render(strings.Join(rows, "\n")),
		footer,
	)
}

func renderDetectionStats() string {
	styles := GetStyles()
	lines := []string{section("Detection Stats")}
	for _, s := range fixtures.DetectionStats() {
		lines = append(lines, fmt.Sprintf("%-13s %s", s.Label, styles.Cyber.Render(fmt.Sprint(s.Count))))
	}
	return strings.Join(lines, "\n")
}

func renderZoneMap() string {
	styles := GetStyles()
	cells := make([]string, 0, len(fixtures.Zones()))
	for _, z := range fixtures.Zones() {
		cells = append(cells, lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(toneColor(z.Tone())).
			Padding(0, 1).
			Render(fmt.Sprintf("Zone %s\n%s", z.Name, styles.Tone(z.Tone()).Render(fmt.Sprintf("%d%%", z.Risk)))))
	}
	return section("Zone Risk Map") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// formatClock renders elapsed seconds as HH:MM:SS
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// gateLabel is used by views that list gates by camera
func gateLabel(g common.Gate) string {
	return g.CameraID + " " + g.ShortName()
}
