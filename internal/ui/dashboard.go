package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/emoji"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/ui/components"
)

// trendWindow is the number of hourly samples shown on the dashboard
const trendWindow = 16

// recentAlerts is the number of alerts listed on the dashboard
const recentAlerts = 5

func renderDashboard(st *state.AppState, width int) string {
	styles := GetStyles()
	var blocks []string

	if st.Emergency() {
		banner := emoji.GetEmoji("emergency") + " EMERGENCY MODE ACTIVE — ALL UNITS DEPLOYED — EVACUATION IN PROGRESS"
		blocks = append(blocks, styles.Banner.Render(banner))
	}

	blocks = append(blocks,
		renderKPIs(st, width),
		section("Gate Status"),
		renderGateCards(st.Gates(), width),
		columns(width, renderTrend(st), renderRadar()),
		columns(width, renderPriorityShares(), renderRecentAlerts(st)),
	)

	return strings.Join(blocks, "\n")
}

func renderKPIs(st *state.AppState, width int) string {
	p := palette()
	kpis := append([]fixtures.KPI{{
		Label: "Total Crowd",
		Value: components.FormatNumber(st.LiveCount()),
		Sub:   "Live count",
		Tone:  fixtures.ToneCyber,
	}}, fixtures.StaticKPIs()...)

	cols := 4
	if width < 4*20 {
		cols = 2
	}
	dash := components.NewStatsDashboard(cols)
	for _, k := range kpis {
		dash.AddCard(components.NewStatsCard(k.Label, k.Value, k.Sub, p).SetColor(toneColor(k.Tone)))
	}
	dash.SetCardWidth(max(width/cols-2, 16))
	return dash.Render()
}

func renderGateCards(gates []common.Gate, width int) string {
	styles := GetStyles()
	p := palette()
	nameWidth := min(max(width/4, 12), 24)

	lines := lo.Map(gates, func(g common.Gate, _ int) string {
		tone := LevelTone(string(g.Status))
		return fmt.Sprintf("%s %s %s %s %s",
			styles.Body.Render(padRight(g.Name, nameWidth)),
			styles.Muted.Render(fmt.Sprintf("%5d/%-5d", g.Count, g.Capacity)),
			components.Meter(20, g.DensityPct(), toneColor(tone), p),
			styles.Tone(tone).Render(fmt.Sprintf("%3d%%", g.DensityPct())),
			styles.Tone(tone).Render(strings.ToUpper(string(g.Status))),
		)
	})
	return strings.Join(lines, "\n")
}

func renderTrend(st *state.AppState) string {
	points := st.Trend()
	points = points[:min(trendWindow, len(points))]

	chart := components.NewTrendChart("Crowd Density Trend (24h)",
		lo.Map(points, func(t fixtures.TrendPoint, _ int) string { return t.Hour }), palette())
	chart.AddSeries(components.Series{
		Label:  "Total",
		Values: lo.Map(points, func(t fixtures.TrendPoint, _ int) float64 { return float64(t.Total) }),
		Color:  toneColor(fixtures.ToneCyber),
	})
	chart.AddSeries(components.Series{
		Label:  "Risk",
		Values: lo.Map(points, func(t fixtures.TrendPoint, _ int) float64 { return float64(t.Risk) }),
		Color:  toneColor(fixtures.ToneDanger),
	})
	return chart.Render()
}

func renderRadar() string {
	chart := components.NewBarChart(100, 16, palette())
	for _, r := range fixtures.Radar() {
		chart.AddRow(components.BarRow{Label: r.Subject, Value: r.Score, Color: toneColor(fixtures.ToneCyber)})
	}
	return section("AI Risk Radar") + "\n" + chart.Render()
}

func renderPriorityShares() string {
	chart := components.NewBarChart(100, 12, palette())
	for _, s := range fixtures.PriorityShares() {
		chart.AddRow(components.BarRow{
			Label: s.Label,
			Value: s.Count,
			Color: toneColor(s.Tone),
			Note:  fmt.Sprintf("%d%%", s.Pct),
			Share: s.Pct,
		})
	}
	return section("Priority Group Detection") + "\n" + chart.Render()
}

func renderRecentAlerts(st *state.AppState) string {
	styles := GetStyles()
	list := allAlerts(st)

	header := section("Recent Alerts") + " " + styles.Danger.Render(fmt.Sprintf("%d active", len(list)))
	lines := []string{header}
	for _, a := range list[:min(recentAlerts, len(list))] {
		lines = append(lines, renderAlertLine(a, styles))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderAlertLine renders "time LEVEL message" colored by level
func renderAlertLine(a common.Alert, styles *Styles) string {
	tone := LevelTone(string(a.Level))
	return fmt.Sprintf("%s %s %s",
		styles.Muted.Render(a.Timestamp),
		styles.Tone(tone).Render(fmt.Sprintf("%-7s", strings.ToUpper(string(a.Level)))),
		styles.Body.Render(a.Message))
}

// padRight pads s with spaces to width display cells
func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}
