package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
)

// formAction is what a key press asks of the owner of an input
type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// textField is a single-line text input
type textField struct {
	label       string
	placeholder string
	value       []rune
}

// handleKey edits the field; it reports whether the key was consumed
func (f *textField) handleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		f.value = append(f.value, msg.Runes...)
	case tea.KeySpace:
		f.value = append(f.value, ' ')
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			f.value = f.value[:len(f.value)-1]
		}
	case tea.KeyCtrlU:
		f.value = nil
	default:
		return false
	}
	return true
}

func (f *textField) String() string { return string(f.value) }

func (f *textField) render(focused bool) string {
	styles := GetStyles()
	text := styles.Body.Render(f.String())
	if len(f.value) == 0 {
		text = styles.Muted.Render(f.placeholder)
	}
	if focused {
		text += styles.Cyber.Render("▏")
		return styles.Cyber.Render(padRight(f.label, 8)) + " " + text
	}
	return styles.Muted.Render(padRight(f.label, 8)) + " " + text
}

// guardForm collects the fields of a new guard. The gate is picked from the
// fixture gates with ←/→.
type guardForm struct {
	name  textField
	phone textField
	gates []string
	gate  int
	focus int // 0 name, 1 phone, 2 gate
	err   string
}

func newGuardForm() *guardForm {
	return &guardForm{
		name:  textField{label: "Name", placeholder: "Full Name"},
		phone: textField{label: "Mobile", placeholder: "Mobile Number"},
		gates: fixtures.GateShortNames(),
	}
}

func (f *guardForm) Gate() string { return f.gates[f.gate] }

func (f *guardForm) handleKey(msg tea.KeyMsg) formAction {
	switch msg.String() {
	case "esc":
		return formCancel
	case "enter":
		return formSubmit
	case "tab", "down":
		f.focus = (f.focus + 1) % 3
		return formNone
	case "shift+tab", "up":
		f.focus = (f.focus + 2) % 3
		return formNone
	}

	switch f.focus {
	case 0:
		f.name.handleKey(msg)
	case 1:
		f.phone.handleKey(msg)
	case 2:
		switch msg.String() {
		case "left", "h":
			f.gate = (f.gate + len(f.gates) - 1) % len(f.gates)
		case "right", "l", " ":
			f.gate = (f.gate + 1) % len(f.gates)
		}
	}
	return formNone
}

func (f *guardForm) View(width int) string {
	styles := GetStyles()

	gate := styles.Body.Render("‹ " + f.Gate() + " ›")
	gateLabel := styles.Muted.Render(padRight("Gate", 8))
	if f.focus == 2 {
		gate = styles.Cyber.Render("‹ " + f.Gate() + " ›")
		gateLabel = styles.Cyber.Render(padRight("Gate", 8))
	}

	lines := []string{
		styles.Title.Render("Register New Guard"),
		f.name.render(f.focus == 0),
		f.phone.render(f.focus == 1),
		gateLabel + " " + gate,
	}
	if f.err != "" {
		lines = append(lines, styles.Danger.Render(f.err))
	}
	lines = append(lines, styles.Muted.Render("tab next field · enter + Assign Gate · esc cancel"))

	return styles.Form.Width(min(width-2, 60)).Render(strings.Join(lines, "\n"))
}

// promptKind identifies what a submitted prompt does
type promptKind int

const (
	promptVideo promptKind = iota
	promptStream
)

// prompt asks for one line of input
type prompt struct {
	kind  promptKind
	title string
	field textField
}

func newVideoPrompt() *prompt {
	return &prompt{
		kind:  promptVideo,
		title: "Add Video",
		field: textField{label: "Path", placeholder: "~/Videos/crowd.mp4"},
	}
}

func newStreamPrompt() *prompt {
	return &prompt{
		kind:  promptStream,
		title: "Connect Stream",
		field: textField{label: "URL", placeholder: "rtsp://camera-ip:554/stream"},
	}
}

func (p *prompt) Value() string { return strings.TrimSpace(p.field.String()) }

func (p *prompt) handleKey(msg tea.KeyMsg) formAction {
	switch msg.String() {
	case "esc":
		return formCancel
	case "enter":
		return formSubmit
	}
	p.field.handleKey(msg)
	return formNone
}

func (p *prompt) View(width int) string {
	styles := GetStyles()
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(p.title),
		p.field.render(true),
		styles.Muted.Render("enter submit · esc cancel"),
	)
	return styles.Form.Width(min(width-2, 70)).Render(body)
}
