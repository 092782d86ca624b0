package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/logger"
	"github.com/yildizm/CrowdGuard/internal/monitor"
)

// Snapshot is one poll result
type Snapshot struct {
	Gates []common.Gate
	At    time.Time
}

// Collector polls a source on an interval in its own goroutine
type Collector struct {
	source   Source
	interval time.Duration
	out      chan Snapshot
	log      *logger.Logger

	polls   *monitor.Counter
	errors  *monitor.Counter
	dropped *monitor.Counter

	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mutex   sync.Mutex
}

// NewCollector creates a stopped collector
func NewCollector(source Source, interval time.Duration, log *logger.Logger) *Collector {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Collector{
		source:   source,
		interval: interval,
		out:      make(chan Snapshot, 1),
		log:      log,
		polls:    monitor.NewCounter("telemetry_polls"),
		errors:   monitor.NewCounter("telemetry_errors"),
		dropped:  monitor.NewCounter("telemetry_dropped"),
	}
}

// Snapshots delivers poll results. A slow reader only sees the latest one.
func (c *Collector) Snapshots() <-chan Snapshot { return c.out }

// Start begins polling until ctx is done or Stop is called
func (c *Collector) Start(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.running {
		return nil
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.running = true

	c.wg.Add(1)
	go c.poll(ctx)
	return nil
}

// Stop halts polling and waits for the goroutine to exit
func (c *Collector) Stop() error {
	c.mutex.Lock()
	if !c.running {
		c.mutex.Unlock()
		return nil
	}
	c.running = false
	c.cancel()
	c.mutex.Unlock()

	c.wg.Wait()
	return nil
}

// IsRunning returns true while the collector polls
func (c *Collector) IsRunning() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.running
}

// Polls returns how many polls succeeded
func (c *Collector) Polls() int64 { return c.polls.Get() }

func (c *Collector) poll(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.collect(ctx)
		}
	}
}

func (c *Collector) collect(ctx context.Context) {
	gates, err := c.source.Gates(ctx)
	if err != nil {
		if ctx.Err() == nil {
			c.errors.Inc()
			c.log.Warn("telemetry poll from %s failed: %v", c.source.Name(), err)
		}
		return
	}
	c.polls.Inc()

	snap := Snapshot{Gates: gates, At: time.Now()}
	select {
	case c.out <- snap:
		return
	default:
	}

	// replace the unread snapshot with the newer one
	select {
	case <-c.out:
		c.dropped.Inc()
	default:
	}
	select {
	case c.out <- snap:
	default:
		c.dropped.Inc()
	}
}
