package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CrowdGuard/internal/emoji"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
)

func renderEmergency(st *state.AppState, width int) string {
	styles := GetStyles()

	title := styles.Cyber.Bold(true).Render("EMERGENCY CONTROL")
	subtitle := "CrowdGuardAI Emergency Response Module"
	button := styles.Muted.Render("[e] " + emoji.GetEmoji("emergency") + " ACTIVATE EMERGENCY")
	if st.Emergency() {
		title = styles.Danger.Render(emoji.GetEmoji("emergency") + " EMERGENCY ACTIVE")
		subtitle = "Evacuation protocols deployed — all units mobilized"
		button = styles.Banner.Render("[e] " + emoji.GetEmoji("stop") + " DEACTIVATE")
	}

	return strings.Join([]string{
		title + "\n" + styles.Muted.Render(subtitle),
		section("Emergency Demo Mode") + "\n" +
			styles.Muted.Render("Activates all alert systems, deploys all guards, and initiates evacuation routing") + "\n" +
			button,
		columns(width, renderRoutes(), renderContacts()),
	}, "\n\n")
}

func renderRoutes() string {
	styles := GetStyles()
	lines := []string{section("Evacuation Route Matrix")}
	for _, r := range fixtures.Routes() {
		tone := styles.Tone(r.Tone)
		lines = append(lines, fmt.Sprintf("%s %s %s %s %s",
			tone.Render(padRight(r.Name, 8)),
			tone.Render(padRight("["+r.Priority+"]", 11)),
			styles.Body.Render(padRight(r.From, 20)),
			tone.Render(emoji.GetEmoji("arrow")),
			styles.Body.Render(r.To)))
	}
	return strings.Join(lines, "\n")
}

func renderContacts() string {
	styles := GetStyles()
	lines := []string{section("Emergency Response Contacts")}
	for _, c := range fixtures.Contacts() {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			emoji.GetEmoji("phone"),
			styles.Body.Render(padRight(c.Role, 16)),
			styles.Tone(c.Tone).Render(c.Number)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
