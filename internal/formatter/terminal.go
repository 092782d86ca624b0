package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/go-termfmt"
)

// maxTextAlerts bounds the incident list of the text format
const maxTextAlerts = 10

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(s *Snapshot) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, s)
	f.writeOverview(&b, s)
	f.writeGates(&b, s.Gates)
	if len(s.Guards) > 0 {
		f.writeGuards(&b, s.Guards)
	}
	if len(s.Alerts) > 0 {
		f.writeAlerts(&b, s)
	}
	f.writePriority(&b, s)
	f.writeTextRecommendations(&b, s)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeHeader(b *strings.Builder, s *Snapshot) {
	header := "CrowdGuardAI Snapshot · " + s.GeneratedAt.Format("2006-01-02 15:04:05")
	width := len([]rune(header))

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

// writeOverview writes the headline numbers as a tree
func (f *terminalFormatter) writeOverview(b *strings.Builder, s *Snapshot) {
	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " Overview\n")

	emergency := "off"
	if s.Emergency {
		emergency = "ACTIVE"
	}
	items := []termfmt.TreeItem{
		{Label: "View", Value: s.View.Label()},
		{Label: "Live Count", Value: formatNumber(s.LiveCount)},
		{Label: "Gates", Value: fmt.Sprintf("%d (%d over capacity)", len(s.Gates), len(overCapacity(s.Gates)))},
		{Label: "Guards", Value: fmt.Sprint(len(s.Guards))},
		{Label: "Emergency", Value: emergency},
	}
	if peak, ok := s.PeakHour(); ok {
		items = append(items, termfmt.TreeItem{Label: "Peak Hour", Value: fmt.Sprintf("%s (%s)", peak.Hour, formatNumber(peak.Total))})
	}
	items[len(items)-1].Last = true

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeGates writes one tree item per gate with a density bar
func (f *terminalFormatter) writeGates(b *strings.Builder, gates []common.Gate) {
	b.WriteString(termfmt.GetEmoji("insights", f.opts) + " Gates\n")

	items := make([]termfmt.TreeItem, 0, len(gates))
	for i, g := range gates {
		density := float64(g.DensityPct()) / 100
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%s %s", levelEmoji(gateLevel(g.Status), f.opts), g.Name),
			Value: fmt.Sprintf("%s / %s", formatNumber(g.Count), formatNumber(g.Capacity)),
			Children: []termfmt.TreeItem{
				{Label: termfmt.CreateConfidenceBar(min(density, 1), f.opts), Value: fmt.Sprintf("%d%% full · %s", g.DensityPct(), g.CameraID)},
			},
			Last: i == len(gates)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeGuards(b *strings.Builder, guards []common.Guard) {
	b.WriteString(termfmt.GetEmoji("target", f.opts) + " Guards\n")

	for i, g := range guards {
		branch := "├─"
		if i == len(guards)-1 {
			branch = "└─"
		}
		fmt.Fprintf(b, "%s %s %-14s %-7s %s\n", branch, g.ID, g.Name, g.AssignedGate, g.Status)
	}
	b.WriteString("\n")
}

// writeAlerts writes the level counts and the most recent incidents
func (f *terminalFormatter) writeAlerts(b *strings.Builder, s *Snapshot) {
	counts := s.AlertCounts()
	fmt.Fprintf(b, "%s Alerts (%d critical, %d warnings, %d info)\n",
		termfmt.GetEmoji("warning", f.opts),
		counts[common.AlertDanger], counts[common.AlertWarning],
		counts[common.AlertSafe]+counts[common.AlertInfo])

	shown := s.Alerts[:min(len(s.Alerts), maxTextAlerts)]
	for i, a := range shown {
		branch := "├─"
		if i == len(shown)-1 {
			branch = "└─"
		}
		fmt.Fprintf(b, "%s %s %s %s\n", branch, levelEmoji(a.Level, f.opts), a.Timestamp, a.Message)
	}
	if more := len(s.Alerts) - len(shown); more > 0 {
		fmt.Fprintf(b, "   … %d more\n", more)
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writePriority(b *strings.Builder, s *Snapshot) {
	if len(s.Priority) == 0 {
		return
	}
	b.WriteString(termfmt.GetEmoji("summary", f.opts) + " Priority Groups\n")

	items := make([]termfmt.TreeItem, 0, len(s.Priority))
	for i, p := range s.Priority {
		items = append(items, termfmt.TreeItem{
			Label: p.Label,
			Value: fmt.Sprintf("%s (%d%%)", formatNumber(p.Count), p.Pct),
			Last:  i == len(s.Priority)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

// writeTextRecommendations writes the top three recommendations
func (f *terminalFormatter) writeTextRecommendations(b *strings.Builder, s *Snapshot) {
	b.WriteString("\n" + termfmt.GetEmoji("recommendations", f.opts) + " Recommendations\n")

	for i, rec := range generateRecommendations(s) {
		if i == 3 {
			break
		}
		b.WriteString("• " + rec + "\n")
	}
}
