package formatter

import (
	"encoding/json"
	"time"

	"github.com/samber/lo"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(s *Snapshot) ([]byte, error) {
	output := &SnapshotOutput{
		Summary:  createSummary(s),
		Gates:    createGateOutputs(s.Gates),
		Guards:   s.Guards,
		Alerts:   s.Alerts,
		Trend:    s.Trend,
		Priority: createPriorityOutputs(s.Priority),
	}

	return json.MarshalIndent(output, "", "  ")
}

// SnapshotOutput is the JSON document of a snapshot
type SnapshotOutput struct {
	Summary  *SummaryOutput        `json:"summary"`
	Gates    []*GateOutput         `json:"gates"`
	Guards   []common.Guard        `json:"guards"`
	Alerts   []common.Alert        `json:"alerts"`
	Trend    []fixtures.TrendPoint `json:"trend,omitempty"`
	Priority []*PriorityOutput     `json:"priority_groups,omitempty"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	GeneratedAt time.Time                 `json:"generated_at"`
	View        string                    `json:"view"`
	LiveCount   int                       `json:"live_count"`
	Emergency   bool                      `json:"emergency"`
	AlertCounts map[common.AlertLevel]int `json:"alert_counts"`
	PeakHour    *fixtures.TrendPoint      `json:"peak_hour,omitempty"`
}

// GateOutput is a gate with its derived density
type GateOutput struct {
	common.Gate
	DensityPct   int  `json:"density_pct"`
	OverCapacity bool `json:"over_capacity"`
}

// PriorityOutput is one priority group share
type PriorityOutput struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Pct   int    `json:"pct"`
}

func createSummary(s *Snapshot) *SummaryOutput {
	summary := &SummaryOutput{
		GeneratedAt: s.GeneratedAt,
		View:        s.View.String(),
		LiveCount:   s.LiveCount,
		Emergency:   s.Emergency,
		AlertCounts: s.AlertCounts(),
	}
	if peak, ok := s.PeakHour(); ok {
		summary.PeakHour = &peak
	}
	return summary
}

func createGateOutputs(gates []common.Gate) []*GateOutput {
	return lo.Map(gates, func(g common.Gate, _ int) *GateOutput {
		return &GateOutput{Gate: g, DensityPct: g.DensityPct(), OverCapacity: g.Count > g.Capacity}
	})
}

func createPriorityOutputs(shares []fixtures.PriorityShare) []*PriorityOutput {
	return lo.Map(shares, func(p fixtures.PriorityShare, _ int) *PriorityOutput {
		return &PriorityOutput{Label: p.Label, Count: p.Count, Pct: p.Pct}
	})
}
