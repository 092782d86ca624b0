package pipeline

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/yildizm/CrowdGuard/internal/analysis"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/logger"
	"github.com/yildizm/CrowdGuard/internal/monitor"
	"github.com/yildizm/CrowdGuard/internal/timers"
)

// State is the phase of the upload/analysis simulation
type State int

const (
	StateIdle State = iota
	StateUploading
	StateAnalysing
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUploading:
		return "uploading"
	case StateAnalysing:
		return "analysing"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Active reports whether a run is in flight
func (s State) Active() bool {
	return s == StateUploading || s == StateAnalysing
}

// Config holds the simulation timings
type Config struct {
	UploadTick    time.Duration
	AnalysisDelay time.Duration
	MaxIncrement  float64
	EngineTimeout time.Duration
}

// DefaultConfig returns the standard timings
func DefaultConfig() Config {
	return Config{
		UploadTick:    200 * time.Millisecond,
		AnalysisDelay: 5 * time.Second,
		MaxIncrement:  15,
		EngineTimeout: 30 * time.Second,
	}
}

// ResultMsg carries an engine outcome back into the update loop
type ResultMsg struct {
	Run    uuid.UUID
	Result *common.AnalysisResult
	Err    error
}

// Session is a read-only view of the current run
type Session struct {
	State     State
	Run       uuid.UUID
	Video     common.VideoHandle
	Progress  float64
	Result    *common.AnalysisResult
	Err       *PipelineError
	StartedAt time.Time
}

// Stat counter names
const (
	StatStarted    = "runs_started"
	StatCompleted  = "runs_completed"
	StatFailed     = "runs_failed"
	StatSuperseded = "runs_superseded"
	StatStale      = "stale_messages"
)

// Option customizes a Machine
type Option func(*Machine)

// WithMutationCounter makes every state change increment c
func WithMutationCounter(c *monitor.Counter) Option {
	return func(m *Machine) { m.mutations = c }
}

// WithLogger sets the machine's logger
func WithLogger(l *logger.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// Machine drives one video at a time through upload and analysis. It is not
// safe for concurrent use; all methods run on the update loop.
type Machine struct {
	cfg    Config
	timers *timers.Registry
	engine analysis.Engine
	rng    common.RandomSource
	base   context.Context

	state     State
	run       uuid.UUID
	video     common.VideoHandle
	acc       float64
	progress  float64
	result    *common.AnalysisResult
	err       *PipelineError
	startedAt time.Time

	upload   timers.Handle
	delay    timers.Handle
	cancelFn context.CancelFunc

	stats     *monitor.CounterSet
	mutations *monitor.Counter
	durations *monitor.Timer
	log       *logger.Logger
	now       func() time.Time
}

// New creates an idle machine
func New(reg *timers.Registry, engine analysis.Engine, rng common.RandomSource, cfg Config, opts ...Option) *Machine {
	m := &Machine{
		cfg:       cfg,
		timers:    reg,
		engine:    engine,
		rng:       rng,
		base:      context.Background(),
		stats:     monitor.NewCounterSet(StatStarted, StatCompleted, StatFailed, StatSuperseded, StatStale),
		durations: monitor.NewTimer("run_duration"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns a snapshot of the current run
func (m *Machine) Session() Session {
	return Session{
		State:     m.state,
		Run:       m.run,
		Video:     m.video,
		Progress:  m.progress,
		Result:    m.result,
		Err:       m.err,
		StartedAt: m.startedAt,
	}
}

// State returns the current phase
func (m *Machine) State() State { return m.state }

// Stats returns the run counters
func (m *Machine) Stats() map[string]int64 { return m.stats.Snapshot() }

// Durations times completed runs from selection to result
func (m *Machine) Durations() *monitor.Timer { return m.durations }

// Select starts a new run for video, superseding an unfinished one
func (m *Machine) Select(video common.VideoHandle) tea.Cmd {
	if m.state.Active() {
		old := m.run
		m.stopRun()
		m.stats.Get(StatSuperseded).Inc()
		m.log.WarnWithFields("run superseded", []logger.Field{
			logger.Error(&PipelineError{Kind: ErrKindSuperseded, Run: old, Reason: "new video selected"}),
		})
	}

	m.run = uuid.New()
	m.video = video
	m.state = StateUploading
	m.acc = 0
	m.progress = 0
	m.result = nil
	m.err = nil
	m.startedAt = m.now()
	m.upload = m.timers.Acquire(timers.KindUpload)
	m.stats.Get(StatStarted).Inc()
	m.mutated()

	m.log.InfoWithFields("upload started", []logger.Field{
		logger.F("run", m.run.String()),
		logger.F("file", video.Name),
		logger.F("size", video.Size),
	})
	return timers.After(m.upload, m.cfg.UploadTick)
}

// HandleFired advances the run when one of its timers elapses. The second
// return value reports whether the message belonged to the pipeline.
func (m *Machine) HandleFired(f timers.Fired) (tea.Cmd, bool) {
	switch f.Handle.Kind {
	case timers.KindUpload:
		if m.state != StateUploading || f.Handle != m.upload || !m.timers.Live(f.Handle) {
			m.stats.Get(StatStale).Inc()
			return nil, true
		}
		return m.uploadTick(), true
	case timers.KindAnalysis:
		if m.state != StateAnalysing || f.Handle != m.delay || !m.timers.Live(f.Handle) {
			m.stats.Get(StatStale).Inc()
			return nil, true
		}
		m.timers.Release(m.delay)
		return m.invokeEngine(), true
	default:
		return nil, false
	}
}

func (m *Machine) uploadTick() tea.Cmd {
	m.acc += m.rng.Float64() * m.cfg.MaxIncrement
	m.progress = min(m.acc, 100)
	m.mutated()

	if m.acc < 100 {
		return timers.After(m.upload, m.cfg.UploadTick)
	}

	m.timers.Release(m.upload)
	m.state = StateAnalysing
	m.delay = m.timers.Acquire(timers.KindAnalysis)
	m.mutated()
	m.log.Debug("upload finished for run %s, analysing", shortID(m.run))
	return timers.After(m.delay, m.cfg.AnalysisDelay)
}

func (m *Machine) invokeEngine() tea.Cmd {
	var ctx context.Context
	var cancel context.CancelFunc
	if m.cfg.EngineTimeout > 0 {
		ctx, cancel = context.WithTimeout(m.base, m.cfg.EngineTimeout)
	} else {
		ctx, cancel = context.WithCancel(m.base)
	}
	m.cancelFn = cancel

	run, video, engine := m.run, m.video, m.engine
	return func() tea.Msg {
		res, err := engine.Analyze(ctx, video)
		return ResultMsg{Run: run, Result: res, Err: err}
	}
}

// HandleResult stores the engine outcome of the current run. Results for any
// other run, or arriving after the run ended, are dropped.
func (m *Machine) HandleResult(msg ResultMsg) bool {
	if msg.Run != m.run || m.state != StateAnalysing {
		m.stats.Get(StatStale).Inc()
		return false
	}
	m.releaseContext()

	if msg.Err != nil {
		m.fail(&PipelineError{Kind: ErrKindEngineFailure, Run: m.run, Cause: msg.Err})
		return true
	}
	if msg.Result == nil {
		m.fail(&PipelineError{Kind: ErrKindEngineFailure, Run: m.run, Reason: "engine returned no result"})
		return true
	}

	m.result = msg.Result
	m.state = StateComplete
	m.stats.Get(StatCompleted).Inc()
	elapsed := m.now().Sub(m.startedAt)
	m.durations.Record(elapsed)
	m.mutated()
	m.log.InfoWithFields("analysis complete", []logger.Field{
		logger.F("run", m.run.String()),
		logger.Duration(elapsed),
		logger.Count(msg.Result.DetectedCount),
		logger.F("risk", msg.Result.RiskLevel.String()),
	})
	return true
}

// Cancel ends an in-flight run as failed. It reports whether a run was
// cancelled.
func (m *Machine) Cancel(reason string) bool {
	if !m.state.Active() {
		return false
	}
	run := m.run
	m.stopRun()
	m.fail(&PipelineError{Kind: ErrKindCancelled, Run: run, Reason: reason})
	return true
}

func (m *Machine) fail(err *PipelineError) {
	m.err = err
	m.state = StateFailed
	m.stats.Get(StatFailed).Inc()
	m.mutated()
	m.log.Warn("%v", err)
}

// stopRun releases the timers and engine context of the current run
func (m *Machine) stopRun() {
	m.timers.Release(m.upload)
	m.timers.Release(m.delay)
	m.releaseContext()
}

func (m *Machine) releaseContext() {
	if m.cancelFn != nil {
		m.cancelFn()
		m.cancelFn = nil
	}
}

func (m *Machine) mutated() {
	if m.mutations != nil {
		m.mutations.Inc()
	}
}
