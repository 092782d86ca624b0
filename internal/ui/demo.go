package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/yildizm/CrowdGuard/internal/emoji"
	"github.com/yildizm/CrowdGuard/internal/pipeline"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/ui/components"
)

func renderDemo(st *state.AppState, width int) string {
	styles := GetStyles()
	session := st.Upload()

	blocks := []string{
		section(emoji.GetEmoji("upload")+" Upload Video for AI Analysis") + "\n" +
			styles.Muted.Render("Upload a crowd video — our AI will detect people, identify priority groups & assess risk") + "\n" +
			styles.Cyber.Render("[o] + Add Video") + "  " + styles.Muted.Render("[x] cancel"),
	}

	if session.State != pipeline.StateIdle {
		blocks = append(blocks, renderUploadProgress(session, width))
	}
	if session.State == pipeline.StateComplete && session.Result != nil {
		blocks = append(blocks, renderAnalysisResult(session, width))
	}

	rtsp := section(emoji.GetEmoji("stream")+" RTSP Camera Setup") + "\n" +
		styles.Cyber.Render("[c] Connect Stream") + "  " + styles.Muted.Render("rtsp://camera-ip:554/stream") + "\n"
	if st.Stream() != "" {
		rtsp += styles.Safe.Render("Connected: "+st.Stream()) + "\n"
	}
	rtsp += styles.Muted.Render("Connect live RTSP streams from IP cameras for real-time AI crowd analysis")
	blocks = append(blocks, rtsp)

	return strings.Join(blocks, "\n\n")
}

// uploadLabel is the caption above the progress bar
func uploadLabel(s pipeline.Session) string {
	switch s.State {
	case pipeline.StateUploading:
		return "Uploading..."
	case pipeline.StateAnalysing:
		return emoji.GetEmoji("brain") + " Deep AI Scanning in progress..."
	case pipeline.StateFailed:
		return "Analysis failed"
	default:
		return "Upload Complete"
	}
}

func renderUploadProgress(s pipeline.Session, width int) string {
	styles := GetStyles()
	barWidth := min(max(width-20, 10), 50)

	lines := []string{
		styles.Body.Render(s.Video.Name) + " " + styles.Muted.Render(humanSize(s.Video.Size)),
		styles.Cyber.Render(uploadLabel(s)),
	}

	switch s.State {
	case pipeline.StateAnalysing:
		lines = append(lines,
			components.Indeterminate(barWidth, palette()),
			styles.Warning.Render(emoji.GetEmoji("power")+" Please wait... AI model processing frames"))
	case pipeline.StateFailed:
		lines = append(lines,
			components.NewProgressBar(barWidth, palette()).SetColor(styles.Theme.Danger).SetPercent(s.Progress).Render())
		if s.Err != nil {
			lines = append(lines, styles.Danger.Render(s.Err.Error()))
		}
	default:
		lines = append(lines,
			components.NewProgressBar(barWidth, palette()).SetPercent(math.Round(s.Progress)).Render())
	}
	return strings.Join(lines, "\n")
}

func renderAnalysisResult(s pipeline.Session, width int) string {
	styles := GetStyles()
	p := palette()
	r := s.Result

	dash := components.NewStatsDashboard(2)
	dash.AddCard(components.NewStatsCard("Detected People", components.FormatNumber(r.DetectedCount), s.Video.Name, p))
	dash.AddCard(components.NewStatsCard("Risk Level", r.RiskLevel.String(), "AI assessment", p).
		SetColor(toneColor(riskTone(r.RiskLevel))))
	dash.SetCardWidth(min(max(width/2-2, 18), 30))

	findings := make([]string, 0, len(r.PriorityFindings))
	for _, f := range r.PriorityFindings {
		findings = append(findings, styles.Warning.Render(emoji.GetEmoji("warning"))+" "+styles.Body.Render(f))
	}

	report := components.NewSummaryBox("Analysis Report", min(width, 40), p)
	for _, g := range r.Breakdown() {
		report.AddKeyValue(g.Label, fmt.Sprint(g.Count))
	}

	return strings.Join([]string{dash.Render(), strings.Join(findings, "\n"), report.Render()}, "\n")
}

// humanSize formats a byte count
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
