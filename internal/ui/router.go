package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/ui/components"
)

// Panel is the rendered content area of one view
type Panel struct {
	Title string
	Body  string
}

// renderer draws the body of a view. Renderers read the state and never
// change it.
type renderer func(st *state.AppState, width int) string

var renderers = map[common.ViewID]renderer{
	common.ViewDashboard: renderDashboard,
	common.ViewCameras:   renderCameras,
	common.ViewPriority:  renderPriority,
	common.ViewSecurity:  renderSecurity,
	common.ViewGuards:    renderGuards,
	common.ViewAlerts:    renderAlerts,
	common.ViewEmergency: renderEmergency,
	common.ViewDemo:      renderDemo,
}

// Render returns the panel for view
func Render(view common.ViewID, st *state.AppState, width int) Panel {
	r, ok := renderers[view]
	if !ok {
		view, r = common.ViewDashboard, renderDashboard
	}
	return Panel{
		Title: view.Label(),
		Body:  r(st, max(width, 20)),
	}
}

// section renders a block heading
func section(title string) string {
	return GetStyles().Subheader.Render(title)
}

// columns places blocks side by side when they fit in width and stacks them
// otherwise
func columns(width int, blocks ...string) string {
	total := 0
	for _, b := range blocks {
		total += lipgloss.Width(b) + 2
	}
	if total > width {
		return strings.Join(blocks, "\n\n")
	}
	spaced := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			spaced = append(spaced, "  ")
		}
		spaced = append(spaced, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}

// allAlerts returns feed alerts, newest first, followed by the incident history
func allAlerts(st *state.AppState) []common.Alert {
	return append(st.FeedAlerts(), fixtures.Alerts()...)
}

// palette returns the component palette of the active theme
func palette() components.Palette {
	theme := GetTheme()
	return theme.Palette()
}

// toneColor returns the active theme's color for tone
func toneColor(tone fixtures.Tone) lipgloss.AdaptiveColor {
	theme := GetTheme()
	return theme.ToneColor(tone)
}

// riskTone maps an analysis risk level to a display tone
func riskTone(r common.RiskLevel) fixtures.Tone {
	switch r {
	case common.RiskLow:
		return fixtures.ToneSafe
	case common.RiskModerate:
		return fixtures.ToneWarning
	default:
		return fixtures.ToneDanger
	}
}
