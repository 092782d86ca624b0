package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/pipeline"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/timers"
	"github.com/yildizm/CrowdGuard/internal/video"
)

type fixedSource struct{ v float64 }

func (f fixedSource) Float64() float64 { return f.v }

type stubEngine struct{}

func (stubEngine) Name() string { return "stub" }

func (stubEngine) Analyze(ctx context.Context, _ common.VideoHandle) (*common.AnalysisResult, error) {
	return &common.AnalysisResult{DetectedCount: 42, RiskLevel: common.RiskLow}, ctx.Err()
}

var testNow = time.Date(2024, 3, 1, 14, 32, 7, 0, time.UTC)

func newTestModel(t *testing.T) (*Model, *timers.Registry) {
	t.Helper()
	opts := state.DefaultOptions()
	opts.Random = fixedSource{0.5}
	opts.Now = func() time.Time { return testNow }
	st := state.New(opts)

	reg := timers.NewRegistry()
	machine := pipeline.New(reg, stubEngine{}, fixedSource{0.999}, pipeline.DefaultConfig(),
		pipeline.WithMutationCounter(st.Mutations()))

	m := NewModel(DefaultConfig(), Deps{
		State:    st,
		Timers:   reg,
		Pipeline: machine,
		Random:   fixedSource{0.5},
	})
	m.Init()
	return m, reg
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNumberKeysSwitchViews(t *testing.T) {
	m, _ := newTestModel(t)

	for i, v := range common.AllViews {
		m.Update(key(string(rune('1' + i))))
		if got := m.State().ActiveView(); got != v {
			t.Errorf("key %d: view = %s, want %s", i+1, got, v)
		}
	}

	m.Update(key("tab"))
	if got := m.State().ActiveView(); got != common.ViewDashboard {
		t.Errorf("tab from the last view = %s, want dashboard", got)
	}
}

func TestViewTimersFollowNavigation(t *testing.T) {
	tests := []struct {
		key  string
		kind timers.Kind
	}{
		{"2", timers.KindCameraClock},
		{"4", timers.KindSecurityScan},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			m, reg := newTestModel(t)
			m.Update(key("3"))
			if reg.LiveCount() != 1 {
				t.Fatalf("live timers on priority view = %d, want only the clock", reg.LiveCount())
			}

			_, cmd := m.Update(key(tt.key))
			if cmd == nil {
				t.Fatal("entering the view scheduled no tick")
			}
			if _, ok := reg.Current(tt.kind); !ok {
				t.Errorf("%s not acquired", tt.kind)
			}
			if reg.LiveCount() != 2 {
				t.Errorf("live timers = %d, want 2", reg.LiveCount())
			}

			m.Update(key("3"))
			if _, ok := reg.Current(tt.kind); ok {
				t.Errorf("%s still live after leaving the view", tt.kind)
			}
		})
	}
}

func TestClockRunsOnEveryView(t *testing.T) {
	m, reg := newTestModel(t)
	clock, ok := reg.Current(timers.KindClock)
	if !ok {
		t.Fatal("clock not started")
	}

	for i := range common.AllViews {
		m.Update(key(string(rune('1' + i))))
		if h, ok := reg.Current(timers.KindClock); !ok || h != clock {
			t.Fatalf("clock handle changed on view %d: %v, %v", i+1, h, ok)
		}
	}

	m.Update(key("6"))
	count := m.State().LiveCount()
	at := testNow.Add(2 * time.Second)
	_, cmd := m.Update(timers.Fired{Handle: clock, At: at})
	if cmd == nil {
		t.Error("clock tick on the alerts view not re-armed")
	}
	if got := m.State().LiveCount(); got != count+2 {
		t.Errorf("live count = %d, want %d", got, count+2)
	}
	if !m.State().DisplayedTime().Equal(at) {
		t.Errorf("displayed time = %v, want %v", m.State().DisplayedTime(), at)
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	t.Run("scan after leaving security", func(t *testing.T) {
		m, reg := newTestModel(t)
		m.Update(key("4"))
		scan, _ := reg.Current(timers.KindSecurityScan)
		m.Update(key("2"))

		mutations := m.State().Mutations()
		before := mutations.Get()
		_, cmd := m.Update(timers.Fired{Handle: scan, At: testNow})
		if cmd != nil {
			t.Error("stale tick was re-armed")
		}
		if mutations.Get() != before {
			t.Error("stale tick mutated state")
		}
	})

	t.Run("clock after shutdown", func(t *testing.T) {
		m, reg := newTestModel(t)
		clock, _ := reg.Current(timers.KindClock)
		count := m.State().LiveCount()
		m.Shutdown()

		_, cmd := m.Update(timers.Fired{Handle: clock, At: testNow.Add(time.Minute)})
		if cmd != nil {
			t.Error("stale tick was re-armed")
		}
		if m.State().LiveCount() != count {
			t.Error("stale tick changed the live count")
		}
		if !m.State().DisplayedTime().Equal(testNow) {
			t.Errorf("displayed time = %v", m.State().DisplayedTime())
		}
	})
}

func TestLiveClockTickUpdatesState(t *testing.T) {
	m, reg := newTestModel(t)
	clock, _ := reg.Current(timers.KindClock)

	at := testNow.Add(2 * time.Second)
	_, cmd := m.Update(timers.Fired{Handle: clock, At: at})
	if cmd == nil {
		t.Error("clock tick not re-armed")
	}
	if !m.State().DisplayedTime().Equal(at) {
		t.Errorf("displayed time = %v, want %v", m.State().DisplayedTime(), at)
	}
}

func TestCameraClockResetsOnEntry(t *testing.T) {
	m, reg := newTestModel(t)
	m.Update(key("2"))
	h, _ := reg.Current(timers.KindCameraClock)
	m.Update(timers.Fired{Handle: h, At: testNow})
	m.Update(timers.Fired{Handle: h, At: testNow})
	if got := m.State().CameraSeconds(); got != 2 {
		t.Fatalf("camera seconds = %d, want 2", got)
	}

	m.Update(key("1"))
	m.Update(key("2"))
	if got := m.State().CameraSeconds(); got != 0 {
		t.Errorf("camera seconds after re-entry = %d, want 0", got)
	}
	// the handle from the first visit is stale
	m.Update(timers.Fired{Handle: h, At: testNow})
	if got := m.State().CameraSeconds(); got != 0 {
		t.Errorf("stale camera tick advanced the clock to %d", got)
	}
}

func TestQuitReleasesEverything(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m, reg := newTestModel(t)
			m.Update(key("8"))
			m.selectVideo(common.VideoHandle{Name: "gate.mp4", Size: 1024}, "test")
			if _, ok := reg.Current(timers.KindUpload); !ok {
				t.Fatal("upload did not acquire a timer")
			}

			_, cmd := m.Update(key(k))
			if cmd == nil {
				t.Fatal("quit returned no command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("quit command did not quit")
			}
			if reg.LiveCount() != 0 {
				t.Errorf("live timers after quit = %d", reg.LiveCount())
			}
			s := m.State().Upload()
			if s.State != pipeline.StateFailed || s.Err == nil || s.Err.Kind != pipeline.ErrKindCancelled {
				t.Errorf("upload after quit = %+v", s)
			}
			if m.ctx.Err() == nil {
				t.Error("model context not cancelled")
			}
			if m.View() != "" {
				t.Error("view rendered after quit")
			}

			// a second shutdown is harmless
			m.Shutdown()
		})
	}
}

func TestCancelUploadKey(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(key("8"))

	m.Update(key("x"))
	if m.State().Status().Text != "" {
		t.Error("cancel with nothing running set a status")
	}

	m.selectVideo(common.VideoHandle{Name: "gate.mp4"}, "test")
	m.Update(key("x"))
	if got := m.State().Upload().State; got != pipeline.StateFailed {
		t.Errorf("state after cancel = %s", got)
	}
	if got := m.State().Status().Level; got != common.AlertWarning {
		t.Errorf("status level = %s", got)
	}
}

func TestPipelineSurvivesNavigation(t *testing.T) {
	m, reg := newTestModel(t)
	m.Update(key("8"))
	m.selectVideo(common.VideoHandle{Name: "gate.mp4"}, "test")

	m.Update(key("1"))
	for i := 0; m.State().Upload().State == pipeline.StateUploading; i++ {
		if i > 100 {
			t.Fatal("upload never finished")
		}
		h, ok := reg.Current(timers.KindUpload)
		if !ok {
			t.Fatal("upload timer released by navigation")
		}
		m.Update(timers.Fired{Handle: h, At: testNow})
	}

	h, _ := reg.Current(timers.KindAnalysis)
	_, cmd := m.Update(timers.Fired{Handle: h, At: testNow})
	if cmd == nil {
		t.Fatal("analysis delay produced no engine call")
	}
	m.Update(cmd())

	s := m.State().Upload()
	if s.State != pipeline.StateComplete || s.Result.DetectedCount != 42 {
		t.Fatalf("session = %+v", s)
	}
	if !strings.Contains(m.State().Status().Text, "42 people") {
		t.Errorf("status = %q", m.State().Status().Text)
	}
}

func TestGuardForm(t *testing.T) {
	t.Run("submit assigns a guard", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.Update(key("5"))
		m.Update(key("n"))
		if m.form == nil {
			t.Fatal("form not opened")
		}

		typeText(m, "Priya S")
		m.Update(key("tab"))
		typeText(m, "+91 90000 00000")
		m.Update(key("tab"))
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m.Update(key("enter"))

		if m.form != nil {
			t.Fatalf("form still open: %q", m.form.err)
		}
		guards := m.State().Guards()
		last := guards[len(guards)-1]
		if last.ID != "G-005" || last.Name != "Priya S" || last.AssignedGate != "Gate 2" {
			t.Errorf("new guard = %+v", last)
		}
		if last.Status != common.GuardOnDuty {
			t.Errorf("status = %s", last.Status)
		}
	})

	t.Run("missing name keeps the form open", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.Update(key("5"))
		m.Update(key("n"))
		m.Update(key("enter"))

		if m.form == nil || m.form.err == "" {
			t.Fatal("validation error not shown")
		}
		if len(m.State().Guards()) != 4 {
			t.Errorf("roster changed: %d guards", len(m.State().Guards()))
		}
	})

	t.Run("keys go to the form", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.Update(key("5"))
		m.Update(key("n"))
		m.Update(key("3"))
		if m.State().ActiveView() != common.ViewGuards {
			t.Error("typing in the form switched views")
		}
		m.Update(key("esc"))
		if m.form != nil {
			t.Error("esc did not close the form")
		}
	})

	t.Run("leaving the view discards the form", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.Update(key("5"))
		m.Update(key("n"))
		m.switchView(common.ViewAlerts)
		if m.form != nil {
			t.Error("form survived navigation")
		}
	})
}

func TestRemoveHighlightedGuard(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(key("5"))
	m.Update(key("j"))
	m.Update(key("d"))

	for _, g := range m.State().Guards() {
		if g.ID == "G-002" {
			t.Fatal("G-002 still on the roster")
		}
	}
	if !strings.Contains(m.State().Status().Text, "G-002") {
		t.Errorf("status = %q", m.State().Status().Text)
	}
}

func TestStreamResult(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(streamResultMsg{url: "bad", err: errors.New("stream refused")})
	if m.State().Stream() != "" || m.State().Status().Level != common.AlertDanger {
		t.Errorf("failed connect: stream=%q status=%+v", m.State().Stream(), m.State().Status())
	}

	handle, err := video.NewStubSource().Connect(context.Background(), "rtsp://10.0.0.5:554/gate1")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	m.Update(streamResultMsg{url: handle.URL, handle: handle})
	if m.State().Stream() != handle.URL {
		t.Errorf("stream = %q", m.State().Stream())
	}
	if !strings.Contains(m.State().Status().Text, "10.0.0.5") {
		t.Errorf("status = %q", m.State().Status().Text)
	}
}

func TestViewRendersEveryPanel(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})

	for i := range common.AllViews {
		m.Update(key(string(rune('1' + i))))
		if out := m.View(); !strings.Contains(out, "TOTAL:") {
			t.Errorf("view %d missing header", i+1)
		}
	}
}
