package monitor

import (
	"sync/atomic"
)

// Counter is a thread-safe counter metric
type Counter struct {
	value int64
	name  string
}

// NewCounter creates a new counter metric
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Add adds the given value to the counter
func (c *Counter) Add(value int64) {
	atomic.AddInt64(&c.value, value)
}

// Get returns the current counter value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

// Reset resets the counter to 0
func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

// CounterSet groups named counters so they can be reported together
type CounterSet struct {
	counters map[string]*Counter
	order    []string
}

// NewCounterSet creates counters for the given names
func NewCounterSet(names ...string) *CounterSet {
	cs := &CounterSet{counters: make(map[string]*Counter, len(names))}
	for _, name := range names {
		cs.counters[name] = NewCounter(name)
		cs.order = append(cs.order, name)
	}
	return cs
}

// Get returns the counter with the given name, or nil
func (cs *CounterSet) Get(name string) *Counter {
	return cs.counters[name]
}

// Snapshot returns the current value of every counter in creation order
func (cs *CounterSet) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(cs.order))
	for _, name := range cs.order {
		out[name] = cs.counters[name].Get()
	}
	return out
}
