package timers

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind names a periodic or delayed task
type Kind string

const (
	KindClock        Kind = "clock"
	KindCameraClock  Kind = "camera_clock"
	KindSecurityScan Kind = "security_scan"
	KindUpload       Kind = "upload"
	KindAnalysis     Kind = "analysis"
)

// Handle identifies one acquisition of a task. A handle stays live until it is
// released or superseded by a newer acquisition of the same kind.
type Handle struct {
	Kind Kind
	Seq  uint64
}

// IsZero reports whether h was never acquired
func (h Handle) IsZero() bool {
	return h.Seq == 0
}

// Fired is delivered when the timer behind a handle elapses
type Fired struct {
	Handle Handle
	At     time.Time
}

// Registry tracks the live handle of every task kind
type Registry struct {
	mu   sync.Mutex
	seq  uint64
	live map[Kind]uint64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{live: make(map[Kind]uint64)}
}

// Acquire creates a new live handle for kind, superseding any earlier one
func (r *Registry) Acquire(kind Kind) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.live[kind] = r.seq
	return Handle{Kind: kind, Seq: r.seq}
}

// Release marks h dead. It reports whether h was live; releasing a dead or
// superseded handle does nothing.
func (r *Registry) Release(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.IsZero() || r.live[h.Kind] != h.Seq {
		return false
	}
	delete(r.live, h.Kind)
	return true
}

// ReleaseKind releases whatever handle of kind is live
func (r *Registry) ReleaseKind(kind Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live[kind]; !ok {
		return false
	}
	delete(r.live, kind)
	return true
}

// ReleaseAll releases every live handle
func (r *Registry) ReleaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.live = make(map[Kind]uint64)
}

// Live reports whether h may still act
func (r *Registry) Live(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return !h.IsZero() && r.live[h.Kind] == h.Seq
}

// Current returns the live handle of kind, if any
func (r *Registry) Current(kind Kind) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq, ok := r.live[kind]
	if !ok {
		return Handle{}, false
	}
	return Handle{Kind: kind, Seq: seq}, true
}

// LiveCount returns the number of live handles
func (r *Registry) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.live)
}

// After schedules a single Fired message for h after d
func After(h Handle, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return Fired{Handle: h, At: t}
	})
}
