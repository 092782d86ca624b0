package telemetry

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
)

// Source reports gate occupancy
type Source interface {
	Name() string
	Gates(ctx context.Context) ([]common.Gate, error)
}

// StaticSource always reports the fixture gates
type StaticSource struct{}

// Name returns "static"
func (StaticSource) Name() string { return "static" }

// Gates returns a copy of the fixture gates
func (StaticSource) Gates(ctx context.Context) ([]common.Gate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fixtures.Gates(), nil
}

// JitterSource random-walks gate counts around their previous values
type JitterSource struct {
	mu     sync.Mutex
	rng    common.RandomSource
	spread int
	gates  []common.Gate
}

// NewJitterSource starts from the fixture gates and moves each count by at
// most spread per poll
func NewJitterSource(rng common.RandomSource, spread int) *JitterSource {
	if spread <= 0 {
		spread = 10
	}
	return &JitterSource{rng: rng, spread: spread, gates: fixtures.Gates()}
}

// Name returns "jitter"
func (j *JitterSource) Name() string { return "jitter" }

// Gates moves every count by a value in [-spread, spread] and never below zero
func (j *JitterSource) Gates(ctx context.Context) ([]common.Gate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	span := float64(2*j.spread + 1)
	j.gates = lo.Map(j.gates, func(g common.Gate, _ int) common.Gate {
		g.Count = max(g.Count+common.FloorInt(j.rng, span, float64(-j.spread)), 0)
		return g
	})
	return slices.Clone(j.gates), nil
}

// NewSource builds a source by name
func NewSource(name string, rng common.RandomSource, spread int) (Source, error) {
	switch name {
	case "", "static":
		return StaticSource{}, nil
	case "jitter":
		return NewJitterSource(rng, spread), nil
	default:
		return nil, fmt.Errorf("unknown telemetry source: %s", name)
	}
}
