package formatter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/CrowdGuard/internal/alerts"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
)

type fixedSource struct{ v float64 }

func (f fixedSource) Float64() float64 { return f.v }

type brokenFeed struct{}

func (brokenFeed) Name() string { return "broken" }
func (brokenFeed) Next(context.Context) ([]common.Alert, error) {
	return nil, errors.New("disk on fire")
}
func (brokenFeed) Close() error { return nil }

func newSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	opts := state.DefaultOptions()
	opts.Random = fixedSource{0.5}
	opts.Now = func() time.Time { return time.Date(2024, 3, 1, 14, 32, 7, 0, time.UTC) }

	snap, err := Collect(context.Background(), state.New(opts), alerts.NewFixtureFeed())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return snap
}

func TestCollect(t *testing.T) {
	snap := newSnapshot(t)

	if len(snap.Alerts) != len(fixtures.Alerts()) {
		t.Errorf("alerts = %d, want %d", len(snap.Alerts), len(fixtures.Alerts()))
	}
	if len(snap.Gates) != 4 || len(snap.Guards) != 4 || len(snap.Trend) != 24 {
		t.Errorf("gates=%d guards=%d trend=%d", len(snap.Gates), len(snap.Guards), len(snap.Trend))
	}
	if snap.LiveCount != state.InitialLiveCount {
		t.Errorf("live count = %d", snap.LiveCount)
	}

	counts := snap.AlertCounts()
	if counts[common.AlertDanger] != 2 || counts[common.AlertWarning] != 3 {
		t.Errorf("counts = %v", counts)
	}
}

func TestCollectFeedError(t *testing.T) {
	_, err := Collect(context.Background(), state.New(state.DefaultOptions()), brokenFeed{})
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Errorf("err = %v", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"", false},
		{"JSON", false},
		{"md", false},
		{"csv", false},
		{"prompt", false},
		{"xml", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := New(tt.format, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if !tt.wantErr && f == nil {
				t.Error("nil formatter")
			}
		})
	}
}

func TestTerminalFormat(t *testing.T) {
	out, err := NewTerminal(false).Format(newSnapshot(t))
	if err != nil {
		t.Fatal(err)
	}
	text := string(out)

	for _, want := range []string{
		"CrowdGuardAI Snapshot · 2024-03-01 14:32:07",
		"4,281",
		"Gate 3 – South",
		"1 over capacity",
		"Sanjai R",
		"2 critical, 3 warnings, 2 info",
		"Redirect arrivals away from Gate 3",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestTerminalAlertLimit(t *testing.T) {
	snap := newSnapshot(t)
	for i := 0; i < 8; i++ {
		snap.Alerts = append(snap.Alerts, common.Alert{Timestamp: "15:00:00", Message: "extra", Level: common.AlertInfo})
	}

	out, _ := NewTerminal(false).Format(snap)
	if !strings.Contains(string(out), "… 5 more") {
		t.Errorf("missing overflow line:\n%s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	out, err := NewJSON().Format(newSnapshot(t))
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Summary struct {
			View        string         `json:"view"`
			LiveCount   int            `json:"live_count"`
			AlertCounts map[string]int `json:"alert_counts"`
		} `json:"summary"`
		Gates []struct {
			ID           string `json:"id"`
			DensityPct   int    `json:"density_pct"`
			OverCapacity bool   `json:"over_capacity"`
		} `json:"gates"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if doc.Summary.View != "dashboard" || doc.Summary.LiveCount != 4281 {
		t.Errorf("summary = %+v", doc.Summary)
	}
	if doc.Summary.AlertCounts["danger"] != 2 {
		t.Errorf("alert counts = %v", doc.Summary.AlertCounts)
	}
	if len(doc.Gates) != 4 || doc.Gates[2].ID != "gate3" || doc.Gates[2].DensityPct != 122 || !doc.Gates[2].OverCapacity {
		t.Errorf("gates = %+v", doc.Gates)
	}
}

func TestMarkdownFormat(t *testing.T) {
	snap := newSnapshot(t)
	snap.Guards = append(snap.Guards, common.Guard{ID: "G-005", Name: "Pipe | Name", AssignedGate: "Gate 1"})

	out, err := NewMarkdown().Format(snap)
	if err != nil {
		t.Fatal(err)
	}
	md := string(out)

	for _, want := range []string{
		"# CrowdGuardAI Snapshot",
		"- [Crowd Trend](#crowd-trend)",
		"| Live Count | 4,281 |",
		"| Gate 3 – South | CAM-03 | 1,102 | 900 | 122% | danger |",
		"Pipe \\| Name",
		"## Recommendations",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestCSVFormat(t *testing.T) {
	out, err := NewCSV().Format(newSnapshot(t))
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("records = %d, want header + 4 gates", len(records))
	}
	// Gate 1 has one guard in the fixture roster
	if got := records[1][7]; got != "1" {
		t.Errorf("guards at gate1 = %s", got)
	}
}

func TestPromptFormat(t *testing.T) {
	snap := newSnapshot(t)
	f := NewPrompt()
	f.AlertSample = 3

	out, err := f.Format(snap)
	if err != nil {
		t.Fatal(err)
	}
	text := string(out)

	for _, want := range []string{
		"Live Count: 4,281",
		"2 critical, 3 warnings",
		"Gate 3 – South (CAM-03): 1,102 of 900, 122%",
		"(4 older alerts omitted)",
		"Peak hour today",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name  string
		snap  *Snapshot
		want  string
		count int
	}{
		{
			name:  "quiet",
			snap:  &Snapshot{Gates: []common.Gate{{Name: "Gate 1", Count: 10, Capacity: 100}}, Guards: []common.Guard{{AssignedGate: "Gate 1"}}},
			want:  "continue routine monitoring",
			count: 1,
		},
		{
			name:  "uncovered gate",
			snap:  &Snapshot{Gates: []common.Gate{{Name: "Gate 2 – North", Count: 10, Capacity: 100}}},
			want:  "Assign a guard to Gate 2",
			count: 1,
		},
		{
			name:  "emergency",
			snap:  &Snapshot{Emergency: true},
			want:  "emergency routes",
			count: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := generateRecommendations(tt.snap)
			if len(recs) != tt.count || !strings.Contains(recs[0], tt.want) {
				t.Errorf("recommendations = %v", recs)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4281: "-4,281"}
	for n, want := range tests {
		if got := formatNumber(n); got != want {
			t.Errorf("formatNumber(%d) = %q, want %q", n, got, want)
		}
	}
}
