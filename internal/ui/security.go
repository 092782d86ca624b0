package ui

import (
	"fmt"
	"strings"

	"github.com/yildizm/CrowdGuard/internal/emoji"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/ui/components"
)

// stackIcons are the emoji keys of the OS security stack rows, in order
var stackIcons = []string{"lock", "shield", "robot", "key", "stream", "disk"}

func renderSecurity(st *state.AppState, width int) string {
	return strings.Join([]string{
		renderSecurityLayers(st.ScanPct()),
		columns(width, renderThreats(), renderSecurityStack()),
		renderCameraAudit(st),
	}, "\n\n")
}

func renderSecurityLayers(scanPct int) string {
	styles := GetStyles()
	lines := make([]string, 0, len(fixtures.SecurityLayers()))
	for _, layer := range fixtures.SecurityLayers() {
		line := fmt.Sprintf("%s %s", padRight(layer.Name, 24), styles.Safe.Render(layer.Status))
		if layer.Status == "SCANNING" {
			line = fmt.Sprintf("%s %s %s", padRight(layer.Name, 24), styles.Warning.Render(layer.Status),
				components.NewProgressBar(20, palette()).SetColor(styles.Theme.Warning).SetPercent(float64(scanPct)).Render())
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderThreats() string {
	chart := components.NewBarChart(100, 16, palette())
	for _, t := range fixtures.Threats() {
		chart.AddRow(components.BarRow{
			Label: t.Name,
			Value: t.Level,
			Color: toneColor(t.Tone()),
			Note:  t.Status,
		})
	}
	return section("Threat Detection Matrix") + "\n" + chart.Render()
}

func renderSecurityStack() string {
	styles := GetStyles()
	lines := []string{section("OS Security Stack")}
	for i, l := range fixtures.SecurityStack() {
		icon := ""
		if i < len(stackIcons) {
			icon = emoji.GetEmoji(stackIcons[i]) + " "
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", icon, padRight(l.Layer, 28), styles.Safe.Render(l.Status)))
	}
	return strings.Join(lines, "\n")
}

func renderCameraAudit(st *state.AppState) string {
	p := palette()
	table := components.NewTable("Camera Security Audit", []components.Column{
		{Title: "Camera", Width: 16},
		{Title: "Location", Width: 22},
		{Title: "Stream", Width: 10},
		{Title: "Auth", Width: 9},
		{Title: "Storage", Width: 8},
	}, p)
	for _, g := range st.Gates() {
		table.AddRow(
			components.Colored(gateLabel(g), p.Cyber),
			components.Text(g.Name),
			components.Colored("ENCRYPTED", p.Safe),
			components.Colored("VERIFIED", p.Safe),
			components.Colored("SECURE", p.Safe),
		)
	}
	return table.Render()
}
