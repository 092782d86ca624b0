package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/go-promptfmt"
)

// PromptFormatter renders a snapshot as an incident review request for a
// language model
type PromptFormatter struct {
	// AlertSample caps the alerts included as context
	AlertSample int
}

// NewPrompt creates a prompt formatter
func NewPrompt() *PromptFormatter {
	return &PromptFormatter{AlertSample: 10}
}

// incidentReview is the response shape the model is asked for
type incidentReview struct {
	Summary   string `json:"summary"`
	RiskScore int    `json:"risk_score"` // 0-100 scale
	Gates     []struct {
		Gate   string `json:"gate"`
		Risk   string `json:"risk"` // "low", "medium", "high"
		Action string `json:"action"`
	} `json:"gates"`
	Actions []struct {
		Title    string `json:"title"`
		Priority string `json:"priority"` // "urgent", "high", "medium", "low"
		Owner    string `json:"owner"`
	} `json:"actions"`
}

// Format builds the prompt and returns its text
func (f *PromptFormatter) Format(s *Snapshot) ([]byte, error) {
	counts := s.AlertCounts()

	pb := promptfmt.New().
		System("You are a crowd safety officer reviewing live venue telemetry. Identify crowding risks and recommend concrete actions for stewards and guards.").
		User("Review this CrowdGuardAI snapshot taken at %s:\n\nLive Count: %s\nEmergency Mode: %v\nAlerts: %d critical, %d warnings",
			s.GeneratedAt.Format(time.RFC3339),
			formatNumber(s.LiveCount),
			s.Emergency,
			counts[common.AlertDanger],
			counts[common.AlertWarning])

	pb.AddContext("gates", f.gatesContext(s))
	if len(s.Guards) > 0 {
		pb.AddContext("guards", f.guardsContext(s))
	}
	if len(s.Alerts) > 0 {
		pb.AddContext("alerts", f.alertsContext(s))
	}
	if peak, ok := s.PeakHour(); ok {
		pb.AddContext("trend", fmt.Sprintf("Peak hour today: %s with %s people across all gates", peak.Hour, formatNumber(peak.Total)))
	}

	prompt := pb.ExpectJSON(&incidentReview{}).Build()
	return []byte(prompt.String() + "\n"), nil
}

func (f *PromptFormatter) gatesContext(s *Snapshot) string {
	var b strings.Builder
	b.WriteString("Gate Occupancy:\n")
	for _, g := range s.Gates {
		fmt.Fprintf(&b, "- %s (%s): %s of %s, %d%%, status %s\n",
			g.Name, g.CameraID, formatNumber(g.Count), formatNumber(g.Capacity), g.DensityPct(), g.Status)
	}
	return b.String()
}

func (f *PromptFormatter) guardsContext(s *Snapshot) string {
	var b strings.Builder
	b.WriteString("Guards:\n")
	for _, g := range s.Guards {
		fmt.Fprintf(&b, "- %s %s at %s (%s)\n", g.ID, g.Name, g.AssignedGate, g.Status)
	}
	return b.String()
}

func (f *PromptFormatter) alertsContext(s *Snapshot) string {
	var b strings.Builder
	b.WriteString("Recent Alerts:\n")
	for i, a := range s.Alerts {
		if i >= f.AlertSample {
			fmt.Fprintf(&b, "(%d older alerts omitted)\n", len(s.Alerts)-i)
			break
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n", a.Timestamp, a.Level, a.Message)
	}
	return b.String()
}
