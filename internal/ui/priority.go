package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CrowdGuard/internal/emoji"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/ui/components"
)

func renderPriority(_ *state.AppState, width int) string {
	return strings.Join([]string{
		renderPriorityCards(width),
		renderStages(),
		renderDistribution(),
	}, "\n\n")
}

func renderPriorityCards(width int) string {
	styles := GetStyles()
	groups := fixtures.PriorityGroups()
	cardWidth := max(width/2-4, 30)

	cards := make([]string, 0, len(groups))
	for _, g := range groups {
		lines := []string{
			styles.Body.Render(g.Label) + "  " + styles.Tone(g.Tone).Render(fmt.Sprint(g.Count)),
		}
		for _, rule := range g.Rules {
			lines = append(lines, styles.Tone(g.Tone).Render(emoji.GetEmoji("check"))+" "+styles.Muted.Render(rule))
		}
		cards = append(cards, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(toneColor(g.Tone)).
			Padding(0, 1).
			Width(cardWidth).
			Render(strings.Join(lines, "\n")))
	}

	var rows []string
	for i := 0; i < len(cards); i += 2 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:min(i+2, len(cards))]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderStages() string {
	styles := GetStyles()
	lines := []string{section("Stage-Wise Priority Flow Protocol")}
	for i, s := range fixtures.Stages() {
		connector := " "
		if i < len(fixtures.Stages())-1 {
			connector = "│"
		}
		lines = append(lines,
			styles.Cyber.Render(fmt.Sprintf("(%d)", s.Number))+" "+styles.Body.Bold(true).Render(s.Name),
			styles.Cyber.Render(" "+connector+" ")+" "+styles.Muted.Render(s.Description))
	}
	return strings.Join(lines, "\n")
}

func renderDistribution() string {
	p := palette()
	table := components.NewTable("Priority Group Distribution Over Time", []components.Column{
		{Title: "Gate", Width: 8},
		{Title: "Children", Width: 9},
		{Title: "Disabled", Width: 9},
		{Title: "Senior", Width: 7},
		{Title: "Medical", Width: 8},
	}, p)
	for _, d := range fixtures.Distribution() {
		table.AddRow(
			components.Text(d.Gate),
			components.Colored(fmt.Sprint(d.Children), p.Cyber),
			components.Colored(fmt.Sprint(d.Disabled), p.Warning),
			components.Colored(fmt.Sprint(d.Senior), p.Safe),
			components.Colored(fmt.Sprint(d.Medical), p.Danger),
		)
	}
	return table.Render()
}
