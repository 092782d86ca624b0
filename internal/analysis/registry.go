package analysis

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/yildizm/CrowdGuard/internal/common"
)

// Options configures engine construction
type Options struct {
	Seed             uint64
	BreakerThreshold int // zero disables the breaker
	BreakerCooldown  time.Duration
}

// Factory builds an engine from options
type Factory func(opts Options) (Engine, error)

// Registry maps engine names to factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with the built-in engines
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("simulated", func(opts Options) (Engine, error) {
		return NewSimulatedEngine(common.NewRandomSource(opts.Seed)), nil
	})
	return r
}

// Register adds a factory under name
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("analysis engine %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Names returns the registered engine names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build creates the named engine, wrapped in a breaker when configured
func (r *Registry) Build(name string, opts Options) (Engine, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, name)
	}

	engine, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis engine %s: %w", name, err)
	}
	if opts.BreakerThreshold > 0 {
		engine = NewBreakerEngine(engine, opts.BreakerThreshold, opts.BreakerCooldown)
	}
	return engine, nil
}
