package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/ui/components"
)

func renderGuards(st *state.AppState, _ int) string {
	styles := GetStyles()
	p := palette()

	table := components.NewTable("Registered Guards & Assignments", []components.Column{
		{Title: "Guard ID", Width: 8},
		{Title: "Full Name", Width: 16},
		{Title: "Mobile", Width: 16},
		{Title: "Assigned Gate", Width: 13},
		{Title: "Status", Width: 9},
	}, p)
	for _, g := range st.Guards() {
		table.AddRow(
			components.Colored(g.ID, p.Cyber),
			components.Text(g.Name),
			components.Text(g.Phone),
			components.Colored(g.AssignedGate, p.Cyber),
			components.Colored(string(g.Status), guardStatusColor(g.Status, p)),
		)
	}
	table.SetSelected(st.GuardCursor())
	table.Height = 12

	return strings.Join([]string{
		section("Register New Guard"),
		styles.Muted.Render("n  + Assign Gate    d  Remove    ↑/↓  select"),
		"",
		table.Render(),
	}, "\n")
}

func guardStatusColor(s common.GuardStatus, p components.Palette) lipgloss.AdaptiveColor {
	switch s {
	case common.GuardOnDuty:
		return p.Safe
	case common.GuardOnPatrol:
		return p.Warning
	default:
		return p.Muted
	}
}
