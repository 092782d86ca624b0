package analysis

import (
	"context"
	"errors"
	"sync"

	"github.com/yildizm/CrowdGuard/internal/common"
)

// Engine turns a selected video into an analysis result
type Engine interface {
	// Name identifies the engine in logs and errors
	Name() string

	// Analyze blocks until the result is ready or ctx is done
	Analyze(ctx context.Context, video common.VideoHandle) (*common.AnalysisResult, error)
}

// Findings reported by the simulated engine for every video
var simulatedFindings = []string{
	"2 children detected",
	"1 wheelchair user detected",
	"Stampede risk: Zone C",
}

// SimulatedEngine fabricates a plausible result from a random source
type SimulatedEngine struct {
	mu  sync.Mutex
	rng common.RandomSource
}

// NewSimulatedEngine creates a simulated engine drawing from rng
func NewSimulatedEngine(rng common.RandomSource) *SimulatedEngine {
	return &SimulatedEngine{rng: rng}
}

// Name returns "simulated"
func (e *SimulatedEngine) Name() string { return "simulated" }

// Analyze draws a head count in [200, 999] and a uniform risk level
func (e *SimulatedEngine) Analyze(ctx context.Context, video common.VideoHandle) (*common.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, NewAnalysisError(ErrKindTimeout, e.Name(), "analysis deadline exceeded", err)
		}
		return nil, err
	}

	e.mu.Lock()
	count := common.FloorInt(e.rng, 800, 200)
	risk := common.FloorInt(e.rng, float64(len(common.RiskLevels)), 0)
	e.mu.Unlock()

	findings := make([]string, len(simulatedFindings))
	copy(findings, simulatedFindings)

	return &common.AnalysisResult{
		DetectedCount:    count,
		RiskLevel:        common.RiskLevels[risk],
		PriorityFindings: findings,
	}, nil
}
