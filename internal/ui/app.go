package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CrowdGuard/internal/alerts"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/logger"
	"github.com/yildizm/CrowdGuard/internal/pipeline"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/telemetry"
	"github.com/yildizm/CrowdGuard/internal/timers"
	"github.com/yildizm/CrowdGuard/internal/video"
	"github.com/yildizm/CrowdGuard/internal/watch"
)

// Config holds the periods of the view-scoped tasks
type Config struct {
	ClockPeriod       time.Duration
	CameraClockPeriod time.Duration
	ScanPeriod        time.Duration
	ConnectTimeout    time.Duration
}

// DefaultConfig returns the standard periods
func DefaultConfig() Config {
	return Config{
		ClockPeriod:       2 * time.Second,
		CameraClockPeriod: time.Second,
		ScanPeriod:        80 * time.Millisecond,
		ConnectTimeout:    10 * time.Second,
	}
}

// Deps are the collaborators of the dashboard model. State, Timers and
// Pipeline are required; the rest are optional.
type Deps struct {
	State     *state.AppState
	Timers    *timers.Registry
	Pipeline  *pipeline.Machine
	Random    common.RandomSource // drives the clock ticker
	Snapshots <-chan telemetry.Snapshot
	Feeds     []alerts.Feed
	Intake    VideoIntake
	Streams   video.Source
	Logger    *logger.Logger
}

// Model is the bubbletea model of the dashboard
type Model struct {
	cfg      Config
	state    *state.AppState
	timers   *timers.Registry
	pipeline *pipeline.Machine
	rng      common.RandomSource
	log      *logger.Logger

	snapshots <-chan telemetry.Snapshot
	feeds     []alerts.Feed
	intake    VideoIntake
	streams   video.Source

	ctx    context.Context
	cancel context.CancelFunc

	width    int
	height   int
	ready    bool
	quitting bool

	// live handles of the view-scoped tasks
	clock       timers.Handle
	cameraClock timers.Handle
	scan        timers.Handle

	form   *guardForm
	prompt *prompt
}

// NewModel creates the dashboard model
func NewModel(cfg Config, deps Deps) *Model {
	if deps.Random == nil {
		deps.Random = common.NewRandomSource(0)
	}
	if deps.Streams == nil {
		deps.Streams = video.NewStubSource()
	}
	deps.State.AttachPipeline(deps.Pipeline)

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		cfg:       cfg,
		state:     deps.State,
		timers:    deps.Timers,
		pipeline:  deps.Pipeline,
		rng:       deps.Random,
		log:       deps.Logger,
		snapshots: deps.Snapshots,
		feeds:     deps.Feeds,
		intake:    deps.Intake,
		streams:   deps.Streams,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// State returns the application state
func (m *Model) State() *state.AppState { return m.state }

// Init enters the initial view and starts listening to the external sources
func (m *Model) Init() tea.Cmd {
	// the header clock runs on every view until Shutdown
	m.clock = m.timers.Acquire(timers.KindClock)
	cmds := []tea.Cmd{
		timers.After(m.clock, m.cfg.ClockPeriod),
		m.enterView(m.state.ActiveView()),
		waitForSnapshot(m.snapshots),
		waitForVideo(m.ctx, m.intake),
	}
	for _, feed := range m.feeds {
		cmds = append(cmds, readFeed(m.ctx, feed))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case timers.Fired:
		return m.handleFired(msg)
	case pipeline.ResultMsg:
		return m.handleAnalysisResult(msg)
	case snapshotMsg:
		return m.handleSnapshot(msg)
	case feedAlertsMsg:
		return m.handleFeedAlerts(msg)
	case feedClosedMsg:
		return m.handleFeedClosed(msg)
	case videoDroppedMsg:
		return m.handleVideoDropped(msg)
	case intakeClosedMsg:
		return m.handleIntakeClosed(msg)
	case streamResultMsg:
		return m.handleStreamResult(msg)
	}

	return m, nil
}

// View renders the sidebar, header, active panel and status line
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoadingScreen()
	}

	styles := GetStyles()
	sidebarWidth := SidebarWidth(m.state.SidebarOpen())
	contentWidth := max(m.width-sidebarWidth-1, 20)

	panel := Render(m.state.ActiveView(), m.state, contentWidth-4)
	content := []string{
		RenderHeader(m.state, contentWidth),
		styles.Panel.Width(contentWidth - 2).Render(panel.Body),
	}
	if m.form != nil {
		content = append(content, m.form.View(contentWidth))
	}
	if m.prompt != nil {
		content = append(content, m.prompt.View(contentWidth))
	}
	content = append(content, RenderStatus(m.state.Status()), RenderHelp(m.state.ActiveView()))

	main := lipgloss.NewStyle().
		MaxHeight(max(m.height, 1)).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))

	return lipgloss.JoinHorizontal(lipgloss.Top, RenderSidebar(m.state, m.height), " ", main)
}

func (m *Model) renderLoadingScreen() string {
	styles := GetStyles()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		styles.Title.Render("Initializing CrowdGuardAI..."))
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.handleQuit()
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}

	switch key := msg.String(); key {
	case "q":
		return m.handleQuit()
	case "1", "2", "3", "4", "5", "6", "7", "8":
		return m, m.switchView(common.AllViews[key[0]-'1'])
	case "tab":
		return m, m.switchView(m.state.ActiveView().Next())
	case "shift+tab":
		return m, m.switchView(m.state.ActiveView().Prev())
	case "s":
		m.state.ToggleSidebar()
		return m, nil
	case "e":
		return m.handleEmergency()
	}

	return m.handleViewKey(msg)
}

// handleViewKey handles the keys that only apply to the active view
func (m *Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state.ActiveView() {
	case common.ViewCameras:
		switch msg.String() {
		case "left", "h":
			m.state.CycleGate(-1)
		case "right", "l":
			m.state.CycleGate(1)
		}
	case common.ViewGuards:
		switch msg.String() {
		case "up", "k":
			m.state.MoveGuardCursor(-1)
		case "down", "j":
			m.state.MoveGuardCursor(1)
		case "n":
			m.form = newGuardForm()
		case "d":
			return m.handleRemoveGuard()
		}
	case common.ViewDemo:
		switch msg.String() {
		case "o":
			m.prompt = newVideoPrompt()
		case "c":
			m.prompt = newStreamPrompt()
		case "x":
			if m.pipeline.Cancel("cancelled by user") {
				m.state.SetStatus("Analysis cancelled", common.AlertWarning)
			}
		}
	}
	return m, nil
}

func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.Shutdown()
	m.quitting = true
	return m, tea.Quit
}

// Shutdown cancels the live pipeline run, releases every timer and stops the
// external sources. It is safe to call more than once.
func (m *Model) Shutdown() {
	if m.pipeline.Cancel("shutdown") {
		m.log.Info("cancelled running analysis on shutdown")
	}
	m.timers.ReleaseAll()
	m.clock, m.cameraClock, m.scan = timers.Handle{}, timers.Handle{}, timers.Handle{}
	m.cancel()
}

func (m *Model) handleEmergency() (tea.Model, tea.Cmd) {
	m.state.ToggleEmergency()
	if m.state.Emergency() {
		m.log.Warn("emergency mode activated")
	} else {
		m.log.Info("emergency mode deactivated")
	}
	return m, nil
}

// switchView leaves the active view and enters v, moving the view-scoped
// timers with it
func (m *Model) switchView(v common.ViewID) tea.Cmd {
	current := m.state.ActiveView()
	if v == current || !v.Valid() {
		return nil
	}
	m.leaveView(current)
	m.state.SetActiveView(v)
	m.state.ClearStatus()
	return m.enterView(v)
}

func (m *Model) enterView(v common.ViewID) tea.Cmd {
	switch v {
	case common.ViewCameras:
		m.state.ResetCameraClock()
		m.cameraClock = m.timers.Acquire(timers.KindCameraClock)
		return timers.After(m.cameraClock, m.cfg.CameraClockPeriod)
	case common.ViewSecurity:
		m.scan = m.timers.Acquire(timers.KindSecurityScan)
		return timers.After(m.scan, m.cfg.ScanPeriod)
	}
	return nil
}

func (m *Model) leaveView(v common.ViewID) {
	switch v {
	case common.ViewCameras:
		m.timers.Release(m.cameraClock)
	case common.ViewSecurity:
		m.timers.Release(m.scan)
	case common.ViewGuards:
		m.form = nil
	case common.ViewDemo:
		m.prompt = nil
	}
}

// handleFired applies a tick of the clock or a view-scoped task and re-arms
// it. Ticks of released handles are dropped.
func (m *Model) handleFired(msg timers.Fired) (tea.Model, tea.Cmd) {
	if cmd, ok := m.pipeline.HandleFired(msg); ok {
		return m, cmd
	}
	if !m.timers.Live(msg.Handle) {
		m.log.Debug("dropping stale %s tick", msg.Handle.Kind)
		return m, nil
	}

	switch msg.Handle.Kind {
	case timers.KindClock:
		m.state.ApplyClockTick(m.rng, msg.At)
		return m, timers.After(msg.Handle, m.cfg.ClockPeriod)
	case timers.KindCameraClock:
		m.state.AdvanceCameraClock()
		return m, timers.After(msg.Handle, m.cfg.CameraClockPeriod)
	case timers.KindSecurityScan:
		m.state.AdvanceScan()
		return m, timers.After(msg.Handle, m.cfg.ScanPeriod)
	}
	return m, nil
}

func (m *Model) handleAnalysisResult(msg pipeline.ResultMsg) (tea.Model, tea.Cmd) {
	if !m.pipeline.HandleResult(msg) {
		return m, nil
	}
	session := m.pipeline.Session()
	switch session.State {
	case pipeline.StateComplete:
		m.state.SetStatus(fmt.Sprintf("Analysis complete: %d people, risk %s",
			session.Result.DetectedCount, session.Result.RiskLevel), common.AlertSafe)
	case pipeline.StateFailed:
		m.state.SetStatus(session.Err.Error(), common.AlertDanger)
	}
	return m, nil
}

// selectVideo starts a pipeline run for v
func (m *Model) selectVideo(v common.VideoHandle, origin string) tea.Cmd {
	cmd := m.pipeline.Select(v)
	m.state.SetStatus(fmt.Sprintf("Uploading %s (%s)", v.Name, origin), common.AlertInfo)
	return cmd
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.form.handleKey(msg) {
	case formCancel:
		m.form = nil
	case formSubmit:
		guard, err := m.state.AssignGuard(m.form.name.String(), m.form.phone.String(), m.form.Gate())
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.log.Info("guard %s assigned to %s", guard.ID, guard.AssignedGate)
		m.state.SetStatus(fmt.Sprintf("Guard %s (%s) assigned to %s", guard.ID, guard.Name, guard.AssignedGate), common.AlertSafe)
	}
	return m, nil
}

func (m *Model) handleRemoveGuard() (tea.Model, tea.Cmd) {
	guard, ok := m.state.HighlightedGuard()
	if !ok {
		return m, nil
	}
	if err := m.state.RemoveGuard(guard.ID); err != nil {
		m.state.SetStatus(err.Error(), common.AlertDanger)
		return m, nil
	}
	m.state.SetStatus(fmt.Sprintf("Guard %s removed", guard.ID), common.AlertWarning)
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.prompt
	switch p.handleKey(msg) {
	case formCancel:
		m.prompt = nil
	case formSubmit:
		m.prompt = nil
		switch p.kind {
		case promptVideo:
			return m.submitVideo(p.Value())
		case promptStream:
			m.state.SetStatus("Connecting to "+p.Value()+"...", common.AlertInfo)
			return m, connectStream(m.ctx, m.streams, p.Value(), m.cfg.ConnectTimeout)
		}
	}
	return m, nil
}

func (m *Model) submitVideo(path string) (tea.Model, tea.Cmd) {
	v, warning, err := watch.ResolveVideo(path)
	if err != nil {
		m.state.SetStatus(err.Error(), common.AlertDanger)
		return m, nil
	}
	cmd := m.selectVideo(v, "file")
	if warning != "" {
		m.state.SetStatus(warning, common.AlertWarning)
	}
	return m, cmd
}

func (m *Model) handleSnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if n := m.state.ApplyGateSnapshot(msg.snapshot.Gates); n > 0 {
		m.log.Debug("telemetry updated %d gates", n)
	}
	return m, waitForSnapshot(m.snapshots)
}

func (m *Model) handleFeedAlerts(msg feedAlertsMsg) (tea.Model, tea.Cmd) {
	m.state.AppendFeedAlerts(msg.alerts...)
	return m, readFeed(m.ctx, msg.feed)
}

func (m *Model) handleFeedClosed(msg feedClosedMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, io.EOF), errors.Is(msg.err, context.Canceled):
		m.log.Debug("alert feed %s closed", msg.feed.Name())
	default:
		m.log.Error("alert feed %s failed: %v", msg.feed.Name(), msg.err)
		m.state.SetStatus(fmt.Sprintf("Alert feed %s stopped: %v", msg.feed.Name(), msg.err), common.AlertWarning)
	}
	return m, nil
}

func (m *Model) handleVideoDropped(msg videoDroppedMsg) (tea.Model, tea.Cmd) {
	return m, tea.Batch(m.selectVideo(msg.video, "drop folder"), waitForVideo(m.ctx, m.intake))
}

func (m *Model) handleIntakeClosed(msg intakeClosedMsg) (tea.Model, tea.Cmd) {
	if !errors.Is(msg.err, context.Canceled) && !errors.Is(msg.err, io.EOF) {
		m.log.Error("video intake stopped: %v", msg.err)
	}
	return m, nil
}

func (m *Model) handleStreamResult(msg streamResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("stream connect failed: %v", msg.err)
		m.state.SetStatus(msg.err.Error(), common.AlertDanger)
		return m, nil
	}
	id := msg.handle.ID
	if len(id) > 8 {
		id = id[:8]
	}
	m.state.SetStream(msg.handle.URL)
	m.state.SetStatus(fmt.Sprintf("Stream %s connected (%s)", msg.handle.Host, strings.ToUpper(id)), common.AlertSafe)
	return m, nil
}

// Run starts the dashboard and blocks until it quits
func Run(cfg Config, deps Deps) error {
	m := NewModel(cfg, deps)
	defer m.Shutdown()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
