package formatter

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(s *Snapshot) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# CrowdGuardAI Snapshot\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))

	f.writeTableOfContents(&b, s)
	f.writeSummaryTable(&b, s)
	f.writeGateTable(&b, s.Gates)

	if len(s.Guards) > 0 {
		f.writeGuardTable(&b, s.Guards)
	}
	if len(s.Alerts) > 0 {
		f.writeAlertTable(&b, s.Alerts)
	}
	if len(s.Trend) > 0 {
		f.writeTrendSection(&b, s.Trend)
	}

	f.writeRecommendations(&b, s)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, s *Snapshot) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Summary](#summary)\n")
	b.WriteString("- [Gates](#gates)\n")

	if len(s.Guards) > 0 {
		b.WriteString("- [Guards](#guards)\n")
	}
	if len(s.Alerts) > 0 {
		b.WriteString("- [Alerts](#alerts)\n")
	}
	if len(s.Trend) > 0 {
		b.WriteString("- [Crowd Trend](#crowd-trend)\n")
	}

	b.WriteString("- [Recommendations](#recommendations)\n\n")
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, s *Snapshot) {
	b.WriteString("## Summary\n\n")

	counts := s.AlertCounts()
	emergency := "Off"
	if s.Emergency {
		emergency = "**ACTIVE**"
	}

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| View | %s |\n", s.View.Label())
	fmt.Fprintf(b, "| Live Count | %s |\n", formatNumber(s.LiveCount))
	fmt.Fprintf(b, "| Emergency Mode | %s |\n", emergency)
	fmt.Fprintf(b, "| Guards | %d |\n", len(s.Guards))
	fmt.Fprintf(b, "| Critical Alerts | %d |\n", counts[common.AlertDanger])
	fmt.Fprintf(b, "| Warnings | %d |\n\n", counts[common.AlertWarning])
}

func (f *markdownFormatter) writeGateTable(b *strings.Builder, gates []common.Gate) {
	b.WriteString("## Gates\n\n")
	b.WriteString("| Gate | Camera | Count | Capacity | Density | Status |\n")
	b.WriteString("|------|--------|------:|---------:|--------:|--------|\n")
	for _, g := range gates {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %d%% | %s |\n",
			escapeCell(g.Name), g.CameraID, formatNumber(g.Count), formatNumber(g.Capacity), g.DensityPct(), g.Status)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeGuardTable(b *strings.Builder, guards []common.Guard) {
	b.WriteString("## Guards\n\n")
	b.WriteString("| ID | Name | Gate | Status | Phone |\n")
	b.WriteString("|----|------|------|--------|-------|\n")
	for _, g := range guards {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			g.ID, escapeCell(g.Name), g.AssignedGate, g.Status, escapeCell(g.Phone))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeAlertTable(b *strings.Builder, alerts []common.Alert) {
	b.WriteString("## Alerts\n\n")
	b.WriteString("| Time | Level | Message |\n")
	b.WriteString("|------|-------|---------|\n")
	for _, a := range alerts {
		fmt.Fprintf(b, "| %s | %s | %s |\n", a.Timestamp, a.Level, escapeCell(a.Message))
	}
	b.WriteString("\n")
}

// writeTrendSection writes the hourly totals as an ASCII chart
func (f *markdownFormatter) writeTrendSection(b *strings.Builder, trend []fixtures.TrendPoint) {
	b.WriteString("## Crowd Trend\n\n")
	b.WriteString("```\n")

	peak := lo.MaxBy(trend, func(x, y fixtures.TrendPoint) bool { return x.Total > y.Total }).Total
	for _, p := range trend {
		barLength := 20
		if peak > 0 {
			barLength = p.Total * 20 / peak
		}
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 20-barLength)
		fmt.Fprintf(b, "%5s │%s│ %s people · risk %d\n", p.Hour, bar, formatNumber(p.Total), p.Risk)
	}
	b.WriteString("```\n\n")
}

func (f *markdownFormatter) writeRecommendations(b *strings.Builder, s *Snapshot) {
	b.WriteString("## Recommendations\n\n")

	for i, rec := range generateRecommendations(s) {
		fmt.Fprintf(b, "%d. %s\n", i+1, rec)
	}

	b.WriteString("\n---\n")
	b.WriteString("*Report generated by CrowdGuardAI*\n")
}

// escapeCell keeps a value from breaking the table layout
func escapeCell(s string) string {
	return strings.NewReplacer("|", "\\|", "\n", " ").Replace(s)
}
