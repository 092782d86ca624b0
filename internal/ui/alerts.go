package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
)

// alertSummary is a headline counter of the alert center
type alertSummary struct {
	Label string
	Count int
	Tone  fixtures.Tone
}

// summarizeAlerts counts alerts the way the alert center groups them:
// safe and info both count as informational
func summarizeAlerts(list []common.Alert) []alertSummary {
	counts := lo.CountValuesBy(list, func(a common.Alert) common.AlertLevel { return a.Level })
	return []alertSummary{
		{Label: "Critical", Count: counts[common.AlertDanger], Tone: fixtures.ToneDanger},
		{Label: "Warnings", Count: counts[common.AlertWarning], Tone: fixtures.ToneWarning},
		{Label: "Info", Count: counts[common.AlertSafe] + counts[common.AlertInfo], Tone: fixtures.ToneSafe},
	}
}

func renderAlerts(st *state.AppState, width int) string {
	styles := GetStyles()
	list := allAlerts(st)

	cards := lo.Map(summarizeAlerts(list), func(s alertSummary, _ int) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(toneColor(s.Tone)).
			Padding(0, 2).
			Render(styles.Tone(s.Tone).Render(fmt.Sprint(s.Count)) + "\n" + styles.Muted.Render(s.Label+" Alerts"))
	})

	lines := []string{section("All Incidents (View History)")}
	for _, a := range list {
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(renderAlertLine(a, styles)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n" + strings.Join(lines, "\n")
}
