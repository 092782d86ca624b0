package monitor

import (
	"math"
	"sync/atomic"
	"time"
)

// Timer accumulates durations. It is safe for concurrent use.
type Timer struct {
	count     int64
	totalTime int64
	minTime   int64
	maxTime   int64
	name      string
}

// NewTimer creates an empty timer
func NewTimer(name string) *Timer {
	return &Timer{name: name, minTime: math.MaxInt64}
}

// Record adds one measurement. Negative durations count as zero.
func (t *Timer) Record(d time.Duration) {
	nanos := max(d.Nanoseconds(), 0)

	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTime, nanos)

	for {
		current := atomic.LoadInt64(&t.minTime)
		if nanos >= current || atomic.CompareAndSwapInt64(&t.minTime, current, nanos) {
			break
		}
	}
	for {
		current := atomic.LoadInt64(&t.maxTime)
		if nanos <= current || atomic.CompareAndSwapInt64(&t.maxTime, current, nanos) {
			break
		}
	}
}

// Count returns the number of measurements
func (t *Timer) Count() int64 {
	return atomic.LoadInt64(&t.count)
}

// Min returns the shortest measurement, or zero before the first one
func (t *Timer) Min() time.Duration {
	v := atomic.LoadInt64(&t.minTime)
	if v == math.MaxInt64 {
		return 0
	}
	return time.Duration(v)
}

// Max returns the longest measurement
func (t *Timer) Max() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.maxTime))
}

// Avg returns the mean measurement
func (t *Timer) Avg() time.Duration {
	count := atomic.LoadInt64(&t.count)
	if count == 0 {
		return 0
	}
	return time.Duration(atomic.LoadInt64(&t.totalTime) / count)
}

// Name returns the timer name
func (t *Timer) Name() string {
	return t.name
}
