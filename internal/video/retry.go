package video

import (
	"context"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/yildizm/CrowdGuard/internal/logger"
)

// RetryingSource retries retryable connection failures with exponential
// backoff. Other errors are returned after the first attempt.
type RetryingSource struct {
	next     Source
	attempts uint
	delay    time.Duration
	log      *logger.Logger
}

// NewRetryingSource wraps next
func NewRetryingSource(next Source, attempts uint, delay time.Duration, log *logger.Logger) *RetryingSource {
	if attempts == 0 {
		attempts = 1
	}
	return &RetryingSource{next: next, attempts: attempts, delay: delay, log: log}
}

// Connect calls the wrapped source until it succeeds, fails permanently or
// runs out of attempts
func (s *RetryingSource) Connect(ctx context.Context, rawURL string) (*StreamHandle, error) {
	var (
		handle   *StreamHandle
		lastErr  error
		fatalErr error
	)

	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
			s.log.Debug("stream connect attempt %d failed: %v", n+1, err)
			if s.delay > 0 {
				return s.delay << min(n, 10)
			}
			return retry.BackOffDelay(n, err, config)
		}),
	)

	err := r.Do(func() error {
		h, err := s.next.Connect(ctx, rawURL)
		if err == nil {
			handle = h
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			// stop retrying; reported below
			fatalErr = err
			return nil
		}
		return err
	})

	if fatalErr != nil {
		return nil, fatalErr
	}
	if err != nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	return handle, nil
}
