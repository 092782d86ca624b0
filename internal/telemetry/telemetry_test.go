package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
)

type fixedSource struct{ v float64 }

func (f fixedSource) Float64() float64 { return f.v }

func TestStaticSource(t *testing.T) {
	gates, err := StaticSource{}.Gates(context.Background())
	if err != nil {
		t.Fatalf("Gates: %v", err)
	}
	if len(gates) != 4 || gates[2].Count != 1102 {
		t.Errorf("gates = %+v", gates)
	}
}

func TestJitterSource(t *testing.T) {
	tests := []struct {
		name  string
		r     float64
		delta int
	}{
		{"down", 0, -10},
		{"still", 0.5, 0},
		{"up", 0.99999, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewJitterSource(fixedSource{tt.r}, 10)
			gates, err := src.Gates(context.Background())
			if err != nil {
				t.Fatalf("Gates: %v", err)
			}
			for i, g := range fixtures.Gates() {
				if gates[i].Count != g.Count+tt.delta {
					t.Errorf("%s count = %d, want %d", g.ID, gates[i].Count, g.Count+tt.delta)
				}
				if gates[i].Status != g.Status {
					t.Errorf("%s status changed", g.ID)
				}
			}
		})
	}
}

func TestJitterNeverNegative(t *testing.T) {
	src := NewJitterSource(fixedSource{0}, 50)
	for i := 0; i < 10; i++ {
		gates, _ := src.Gates(context.Background())
		for _, g := range gates {
			if g.Count < 0 {
				t.Fatalf("%s count = %d", g.ID, g.Count)
			}
		}
	}
}

func TestNewSource(t *testing.T) {
	if _, err := NewSource("jitter", fixedSource{0.5}, 5); err != nil {
		t.Errorf("jitter: %v", err)
	}
	if _, err := NewSource("mqtt", nil, 0); err == nil {
		t.Error("unknown source accepted")
	}
}

type countingSource struct {
	err error
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) Gates(ctx context.Context) ([]common.Gate, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []common.Gate{{ID: "gate1", Count: 7}}, nil
}

func TestCollectorDeliversSnapshots(t *testing.T) {
	c := NewCollector(&countingSource{}, 5*time.Millisecond, nil)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Stop()

	if !c.IsRunning() {
		t.Error("collector not running after Start")
	}

	select {
	case snap := <-c.Snapshots():
		if len(snap.Gates) != 1 || snap.Gates[0].Count != 7 {
			t.Errorf("snapshot = %+v", snap)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestCollectorStop(t *testing.T) {
	c := NewCollector(&countingSource{err: errors.New("offline")}, time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.Start(ctx)
	c.Start(ctx)
	time.Sleep(10 * time.Millisecond)
	if err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if c.IsRunning() {
		t.Error("collector still running")
	}
	if c.Polls() != 0 {
		t.Errorf("failed polls counted as successes: %d", c.Polls())
	}
	if err := c.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}
