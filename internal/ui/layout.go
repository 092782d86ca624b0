package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/emoji"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/ui/components"
)

const (
	sidebarOpenWidth      = 26
	sidebarCollapsedWidth = 9
	tickerSeparator       = "   ·   "
)

// SidebarWidth returns the rendered width of the sidebar
func SidebarWidth(open bool) int {
	if open {
		return sidebarOpenWidth
	}
	return sidebarCollapsedWidth
}

// RenderSidebar draws the logo, the navigation list and the emergency toggle
func RenderSidebar(st *state.AppState, height int) string {
	styles := GetStyles()
	open := st.SidebarOpen()

	var lines []string
	if open {
		lines = append(lines,
			styles.Title.Render("CrowdGuardAI"),
			styles.Muted.Render("v2.4.1 · ")+styles.Safe.Render("LIVE"),
			"")
	} else {
		lines = append(lines, styles.Title.Render("CG"), "", "")
	}

	for i, v := range common.AllViews {
		label := fmt.Sprintf("%d %s", i+1, emoji.GetEmoji(v.String()))
		if open {
			label += " " + v.Label()
		}
		if v == st.ActiveView() {
			lines = append(lines, styles.Selected.Render(label+" ›"))
		} else {
			lines = append(lines, styles.Body.Render(label))
		}
	}

	lines = append(lines, "")
	button := emoji.GetEmoji("power")
	if open {
		button += " Emergency Mode"
	}
	if st.Emergency() {
		button = emoji.GetEmoji("emergency")
		if open {
			button += " EMERGENCY ON"
		}
		lines = append(lines, styles.Banner.Render(button))
	} else {
		lines = append(lines, styles.Danger.UnsetBold().Render(button))
	}

	return styles.Sidebar.
		Width(SidebarWidth(open) - 1).
		Height(max(height, len(lines))).
		Render(strings.Join(lines, "\n"))
}

// RenderHeader draws the view label, clock, ticker and crowd total
func RenderHeader(st *state.AppState, width int) string {
	styles := GetStyles()

	left := styles.Title.Render(st.ActiveView().Label()) + "  " +
		styles.Muted.Render(st.DisplayedTime().Format("15:04:05")+" · PSG Yuktha 2026")

	right := styles.Cyber.Render("TOTAL: " + components.FormatNumber(st.LiveCount()))
	if st.Emergency() {
		right = styles.Banner.Render(emoji.GetEmoji("emergency")+" EMERGENCY") + " " + right
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	top := left + strings.Repeat(" ", gap) + right

	return top + "\n" + styles.Warning.UnsetBold().Render(Ticker(st, width))
}

// Ticker returns the scrolling alert ticker, width cells wide. The scroll
// offset follows the displayed time so the ticker moves with the clock.
func Ticker(st *state.AppState, width int) string {
	if width <= 0 {
		return ""
	}
	line := []rune(strings.Join(fixtures.TickerMessages(), tickerSeparator) + tickerSeparator)
	offset := int(st.DisplayedTime().Unix()) % len(line)
	if offset < 0 {
		offset += len(line)
	}
	rotated := string(line[offset:]) + string(line[:offset])
	for lipgloss.Width(rotated) < width {
		rotated += rotated
	}
	out := ansi.Truncate(rotated, width, "")
	// a wide rune cut at the edge leaves one cell short
	return out + strings.Repeat(" ", width-lipgloss.Width(out))
}

// RenderStatus draws the status line
func RenderStatus(status state.Status) string {
	if status.Text == "" {
		return ""
	}
	styles := GetStyles()
	return styles.Tone(LevelTone(string(status.Level))).Render(status.Text)
}

// helpLines lists the key bindings of each view
var helpLines = map[common.ViewID]string{
	common.ViewCameras: "←/→ camera",
	common.ViewGuards:  "n register · d remove · ↑/↓ select",
	common.ViewDemo:    "o open video · x cancel · c connect stream",
}

// RenderHelp draws the key bindings for view
func RenderHelp(view common.ViewID) string {
	styles := GetStyles()
	help := "1-8 views · tab next · s sidebar · e emergency · q quit"
	if extra, ok := helpLines[view]; ok {
		help = extra + " · " + help
	}
	return styles.Muted.Render(help)
}
