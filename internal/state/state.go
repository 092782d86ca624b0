package state

import (
	"math"
	"slices"
	"time"

	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/monitor"
	"github.com/yildizm/CrowdGuard/internal/pipeline"
)

// InitialLiveCount is the crowd total shown before the first tick
const InitialLiveCount = 4281

// maxFeedAlerts bounds the alerts kept from external feeds
const maxFeedAlerts = 500

// Options configures a new AppState
type Options struct {
	InitialView      common.ViewID
	InitialLiveCount int
	ClampLiveCount   bool
	Now              func() time.Time
	Random           common.RandomSource // used once for the crowd trend
}

// DefaultOptions returns the dashboard defaults
func DefaultOptions() Options {
	return Options{
		InitialView:      common.ViewDashboard,
		InitialLiveCount: InitialLiveCount,
		ClampLiveCount:   true,
		Now:              time.Now,
	}
}

// Status is the one-line message shown under the content panel
type Status struct {
	Text  string
	Level common.AlertLevel
}

// AppState holds everything the dashboard shows. It is owned by the update
// loop and changed only through its methods.
type AppState struct {
	activeView    common.ViewID
	sidebarOpen   bool
	emergency     bool
	liveCount     int
	clamp         bool
	displayedTime time.Time

	gates        []common.Gate
	selectedGate int

	guards       []common.Guard
	nextGuardSeq int
	guardCursor  int

	upload *pipeline.Machine

	cameraSeconds int
	scanPct       int

	feedAlerts []common.Alert
	trend      []fixtures.TrendPoint
	status     Status
	stream     string

	mutations *monitor.Counter
}

// New creates the initial state from the fixtures
func New(opts Options) *AppState {
	if !opts.InitialView.Valid() {
		opts.InitialView = common.ViewDashboard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Random == nil {
		opts.Random = common.NewRandomSource(0)
	}

	guards := fixtures.Guards()
	return &AppState{
		activeView:    opts.InitialView,
		sidebarOpen:   true,
		liveCount:     opts.InitialLiveCount,
		clamp:         opts.ClampLiveCount,
		displayedTime: opts.Now(),
		gates:         fixtures.Gates(),
		guards:        guards,
		nextGuardSeq:  highestGuardSeq(guards) + 1,
		trend:         fixtures.CrowdTrend(opts.Random),
		mutations:     monitor.NewCounter("state_mutations"),
	}
}

// AttachPipeline sets the machine whose session the video view shows
func (s *AppState) AttachPipeline(m *pipeline.Machine) {
	s.upload = m
}

// Pipeline returns the attached machine, or nil
func (s *AppState) Pipeline() *pipeline.Machine { return s.upload }

// Upload returns the current upload session
func (s *AppState) Upload() pipeline.Session {
	if s.upload == nil {
		return pipeline.Session{State: pipeline.StateIdle}
	}
	return s.upload.Session()
}

// Mutations counts every state change, including pipeline changes
func (s *AppState) Mutations() *monitor.Counter { return s.mutations }

func (s *AppState) mutated() { s.mutations.Inc() }

func (s *AppState) ActiveView() common.ViewID    { return s.activeView }
func (s *AppState) SidebarOpen() bool            { return s.sidebarOpen }
func (s *AppState) Emergency() bool              { return s.emergency }
func (s *AppState) LiveCount() int               { return s.liveCount }
func (s *AppState) DisplayedTime() time.Time     { return s.displayedTime }
func (s *AppState) SelectedGateIndex() int       { return s.selectedGate }
func (s *AppState) CameraSeconds() int           { return s.cameraSeconds }
func (s *AppState) ScanPct() int                 { return s.scanPct }
func (s *AppState) Status() Status               { return s.status }
func (s *AppState) GuardCursor() int             { return s.guardCursor }
func (s *AppState) Gates() []common.Gate         { return slices.Clone(s.gates) }
func (s *AppState) Guards() []common.Guard       { return slices.Clone(s.guards) }
func (s *AppState) FeedAlerts() []common.Alert   { return slices.Clone(s.feedAlerts) }
func (s *AppState) Trend() []fixtures.TrendPoint { return slices.Clone(s.trend) }
func (s *AppState) Stream() string               { return s.stream }

// SelectedGate returns the gate whose feed is enlarged on the cameras view
func (s *AppState) SelectedGate() common.Gate { return s.gates[s.selectedGate] }

// SetActiveView switches the visible panel. Values outside the view
// enumeration are ignored.
func (s *AppState) SetActiveView(v common.ViewID) bool {
	if !v.Valid() {
		return false
	}
	s.activeView = v
	s.mutated()
	return true
}

// ToggleSidebar flips between the expanded and collapsed sidebar
func (s *AppState) ToggleSidebar() {
	s.sidebarOpen = !s.sidebarOpen
	s.mutated()
}

// ToggleEmergency flips the emergency flag
func (s *AppState) ToggleEmergency() {
	s.SetEmergency(!s.emergency)
}

// SetEmergency sets the emergency flag
func (s *AppState) SetEmergency(on bool) {
	s.emergency = on
	s.mutated()
}

// SelectGate selects a camera feed by index; out of range is ignored
func (s *AppState) SelectGate(i int) bool {
	if i < 0 || i >= len(s.gates) {
		return false
	}
	s.selectedGate = i
	s.mutated()
	return true
}

// CycleGate moves the gate selection by delta, wrapping around
func (s *AppState) CycleGate(delta int) {
	n := len(s.gates)
	s.SelectGate(((s.selectedGate+delta)%n + n) % n)
}

// ApplyClockTick adds floor(r*20-8) to the live count and refreshes the
// displayed time. It returns the applied delta.
func (s *AppState) ApplyClockTick(rng common.RandomSource, now time.Time) int {
	delta := int(math.Floor(rng.Float64()*20 - 8))
	s.liveCount += delta
	if s.clamp && s.liveCount < 0 {
		s.liveCount = 0
	}
	s.displayedTime = now
	s.mutated()
	return delta
}

// ResetCameraClock restarts the camera overlay clock
func (s *AppState) ResetCameraClock() {
	s.cameraSeconds = 0
	s.mutated()
}

// AdvanceCameraClock adds one second to the camera overlay clock
func (s *AppState) AdvanceCameraClock() {
	s.cameraSeconds++
	s.mutated()
}

// AdvanceScan moves the security scan sweep by one percent
func (s *AppState) AdvanceScan() {
	s.scanPct = (s.scanPct + 1) % 101
	s.mutated()
}

// ApplyGateSnapshot replaces gate counts from a telemetry snapshot. Gates
// are matched by ID; status and capacity are kept.
func (s *AppState) ApplyGateSnapshot(snapshot []common.Gate) int {
	updated := 0
	for _, g := range snapshot {
		idx := slices.IndexFunc(s.gates, func(cur common.Gate) bool { return cur.ID == g.ID })
		if idx < 0 || s.gates[idx].Count == g.Count {
			continue
		}
		s.gates[idx].Count = g.Count
		updated++
	}
	if updated > 0 {
		s.mutated()
	}
	return updated
}

// AppendFeedAlerts adds alerts from an external feed, newest first
func (s *AppState) AppendFeedAlerts(alerts ...common.Alert) {
	if len(alerts) == 0 {
		return
	}
	for _, a := range alerts {
		s.feedAlerts = append([]common.Alert{a}, s.feedAlerts...)
	}
	if len(s.feedAlerts) > maxFeedAlerts {
		s.feedAlerts = s.feedAlerts[:maxFeedAlerts]
	}
	s.mutated()
}

// SetStream records the URL of the connected camera stream
func (s *AppState) SetStream(url string) {
	s.stream = url
	s.mutated()
}

// SetStatus replaces the status line
func (s *AppState) SetStatus(text string, level common.AlertLevel) {
	s.status = Status{Text: text, Level: level}
	s.mutated()
}

// ClearStatus empties the status line
func (s *AppState) ClearStatus() {
	if s.status.Text == "" {
		return
	}
	s.SetStatus("", "")
}
