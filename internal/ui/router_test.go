package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
)

func newRenderState(t *testing.T) *state.AppState {
	t.Helper()
	opts := state.DefaultOptions()
	opts.Random = fixedSource{0.5}
	opts.Now = func() time.Time { return testNow }
	return state.New(opts)
}

func TestRenderEveryView(t *testing.T) {
	st := newRenderState(t)

	tests := []struct {
		view common.ViewID
		want string
	}{
		{common.ViewDashboard, "Recent Alerts"},
		{common.ViewCameras, "AI DETECTION: ON"},
		{common.ViewPriority, "Priority"},
		{common.ViewSecurity, "SCANNING"},
		{common.ViewGuards, "Register New Guard"},
		{common.ViewAlerts, "All Incidents (View History)"},
		{common.ViewEmergency, "ACTIVATE EMERGENCY"},
		{common.ViewDemo, "RTSP Camera Setup"},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			p := Render(tt.view, st, 100)
			if p.Title != tt.view.Label() {
				t.Errorf("Title = %q, want %q", p.Title, tt.view.Label())
			}
			if !strings.Contains(p.Body, tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	st := newRenderState(t)
	before := st.Mutations().Get()

	for _, v := range common.AllViews {
		Render(v, st, 80)
	}
	RenderHeader(st, 80)
	RenderSidebar(st, 30)

	if st.Mutations().Get() != before {
		t.Error("rendering changed the state")
	}
}

func TestRenderUnknownViewFallsBack(t *testing.T) {
	st := newRenderState(t)
	if p := Render(common.ViewID(99), st, 80); p.Title != common.ViewDashboard.Label() {
		t.Errorf("Title = %q", p.Title)
	}
}

func TestEmergencyToggleChangesPanel(t *testing.T) {
	st := newRenderState(t)
	off := Render(common.ViewEmergency, st, 100).Body

	st.ToggleEmergency()
	on := Render(common.ViewEmergency, st, 100).Body
	if !strings.Contains(on, "DEACTIVATE") || strings.Contains(off, "DEACTIVATE") {
		t.Error("emergency button did not follow the state")
	}
	if !strings.Contains(RenderHeader(st, 100), "EMERGENCY") {
		t.Error("header missing emergency badge")
	}
}

func TestSummarizeAlerts(t *testing.T) {
	got := summarizeAlerts(fixtures.Alerts())
	want := map[string]int{"Critical": 2, "Warnings": 3, "Info": 2}

	if len(got) != len(want) {
		t.Fatalf("got %d summaries", len(got))
	}
	for _, s := range got {
		if s.Count != want[s.Label] {
			t.Errorf("%s = %d, want %d", s.Label, s.Count, want[s.Label])
		}
	}
}

func TestAllAlertsPutsFeedFirst(t *testing.T) {
	st := newRenderState(t)
	st.AppendFeedAlerts(common.Alert{Timestamp: "15:00:00", Message: "feed alert", Level: common.AlertWarning})

	list := allAlerts(st)
	if len(list) != len(fixtures.Alerts())+1 {
		t.Fatalf("len = %d", len(list))
	}
	if list[0].Message != "feed alert" {
		t.Errorf("first alert = %q", list[0].Message)
	}
}

func TestTickerWidth(t *testing.T) {
	st := newRenderState(t)
	for _, width := range []int{0, 1, 40, 500} {
		if got := lipgloss.Width(Ticker(st, width)); got != width {
			t.Errorf("Ticker(%d) width = %d", width, got)
		}
	}
}

func TestTickerMovesWithClock(t *testing.T) {
	st := newRenderState(t)
	before := Ticker(st, 60)

	st.ApplyClockTick(fixedSource{0.4}, testNow.Add(2*time.Second))
	if Ticker(st, 60) == before {
		t.Error("ticker did not scroll")
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{61, "00:01:01"},
		{3725, "01:02:05"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.seconds); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanSize(tt.n); got != tt.want {
			t.Errorf("humanSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSidebarCollapses(t *testing.T) {
	st := newRenderState(t)
	open := RenderSidebar(st, 20)
	st.ToggleSidebar()
	closed := RenderSidebar(st, 20)

	if !strings.Contains(open, "Dashboard") || strings.Contains(closed, "Dashboard") {
		t.Error("collapsed sidebar still shows labels")
	}
	if w := lipgloss.Width(closed); w > SidebarWidth(false) {
		t.Errorf("collapsed width = %d", w)
	}
}
