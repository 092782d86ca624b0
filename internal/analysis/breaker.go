package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"github.com/yildizm/CrowdGuard/internal/common"
)

// BreakerEngine fails fast with ErrKindUnavailable once the wrapped engine
// has failed threshold times in a row. After cooldown one trial call is let
// through.
type BreakerEngine struct {
	next Engine
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerEngine wraps next with a circuit breaker
func NewBreakerEngine(next Engine, threshold int, cooldown time.Duration) *BreakerEngine {
	if threshold <= 0 {
		threshold = 3
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "analysis-" + next.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		// a cancelled run says nothing about engine health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &BreakerEngine{next: next, cb: cb}
}

// Name returns the wrapped engine's name
func (b *BreakerEngine) Name() string { return b.next.Name() }

// State reports the breaker state, e.g. "closed" or "open"
func (b *BreakerEngine) State() string { return b.cb.State().String() }

// Analyze runs the wrapped engine through the breaker
func (b *BreakerEngine) Analyze(ctx context.Context, video common.VideoHandle) (*common.AnalysisResult, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Analyze(ctx, video)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, NewAnalysisError(ErrKindUnavailable, b.Name(), "engine temporarily disabled after repeated failures", err)
		}
		return nil, err
	}
	return res.(*common.AnalysisResult), nil
}
