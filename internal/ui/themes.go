package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/ui/components"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Tone colors
	Cyber   lipgloss.AdaptiveColor
	Safe    lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Danger  lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Highlight  lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given [light, dark] colors
func buildTheme(name string, cyber, safe, warning, danger, border, foreground, muted, highlight, selected [2]string) Theme {
	return Theme{
		Name:       name,
		Cyber:      lipgloss.AdaptiveColor{Light: cyber[0], Dark: cyber[1]},
		Safe:       lipgloss.AdaptiveColor{Light: safe[0], Dark: safe[1]},
		Warning:    lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Danger:     lipgloss.AdaptiveColor{Light: danger[0], Dark: danger[1]},
		Border:     lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Foreground: lipgloss.AdaptiveColor{Light: foreground[0], Dark: foreground[1]},
		Muted:      lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Highlight:  lipgloss.AdaptiveColor{Light: highlight[0], Dark: highlight[1]},
		Selected:   lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#0891B2", "#00E5FF"}, [2]string{"#059669", "#22C55E"}, [2]string{"#D97706", "#F5A524"},
		[2]string{"#DC2626", "#FF3B3B"}, [2]string{"#CBD5E1", "#1E3A44"}, [2]string{"#0F172A", "#E2E8F0"},
		[2]string{"#64748B", "#7C8AA0"}, [2]string{"#FEF3C7", "#3B1010"}, [2]string{"#CFFAFE", "#0B3B46"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#0000AA", "#00FFFF"}, [2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"},
		[2]string{"#CC0000", "#FF4444"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#444444", "#BBBBBB"}, [2]string{"#FFFF00", "#444444"}, [2]string{"#CCCCCC", "#333333"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"},
		[2]string{"#C53030", "#FC8181"}, [2]string{"#E2E8F0", "#2D3748"}, [2]string{"#2D3748", "#F7FAFC"},
		[2]string{"#A0AEC0", "#718096"}, [2]string{"#F7FAFC", "#2D3748"}, [2]string{"#EDF2F7", "#2D3748"})
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

var colorDisabled bool

// SetColorDisabled turns ANSI colors off for every renderer
func SetColorDisabled(disabled bool) {
	colorDisabled = disabled
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return colorDisabled || os.Getenv("NO_COLOR") != ""
}

// ToneColor maps a fixture tone to a theme color
func (t *Theme) ToneColor(tone fixtures.Tone) lipgloss.AdaptiveColor {
	switch tone {
	case fixtures.ToneSafe:
		return t.Safe
	case fixtures.ToneWarning:
		return t.Warning
	case fixtures.ToneDanger:
		return t.Danger
	case fixtures.ToneMuted:
		return t.Muted
	default:
		return t.Cyber
	}
}

// LevelTone maps alert and gate levels to a tone
func LevelTone(level string) fixtures.Tone {
	switch level {
	case string(common.AlertDanger):
		return fixtures.ToneDanger
	case string(common.AlertWarning):
		return fixtures.ToneWarning
	case string(common.AlertSafe):
		return fixtures.ToneSafe
	default:
		return fixtures.ToneCyber
	}
}

// Palette converts the theme for the components package
func (t *Theme) Palette() components.Palette {
	return components.Palette{
		Cyber:      t.Cyber,
		Safe:       t.Safe,
		Warning:    t.Warning,
		Danger:     t.Danger,
		Border:     t.Border,
		Foreground: t.Foreground,
		Muted:      t.Muted,
		Selected:   t.Selected,
	}
}

// Common styles based on current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Cyber).
			Bold(true),

		Subheader: lipgloss.NewStyle().
			Foreground(theme.Cyber).
			Bold(true).
			Underline(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Safe: lipgloss.NewStyle().
			Foreground(theme.Safe).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Danger: lipgloss.NewStyle().
			Foreground(theme.Danger).
			Bold(true),

		Cyber: lipgloss.NewStyle().
			Foreground(theme.Cyber),

		Selected: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Cyber).
			Bold(true),

		Banner: lipgloss.NewStyle().
			Background(theme.Highlight).
			Foreground(theme.Danger).
			Bold(true).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Form: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Cyber).
			Padding(0, 1),
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	// Base styles
	Title     lipgloss.Style
	Subheader lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style

	// Tone styles
	Safe    lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Cyber   lipgloss.Style

	// Interactive styles
	Selected lipgloss.Style
	Banner   lipgloss.Style

	// Layout styles
	Panel   lipgloss.Style
	Sidebar lipgloss.Style
	Form    lipgloss.Style
}

// Tone returns the bold style for a tone
func (s *Styles) Tone(tone fixtures.Tone) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Theme.ToneColor(tone)).Bold(true)
}
