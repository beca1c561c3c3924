package crawl

import (
	"context"
	"log/slog"
	"time"
)

// AttemptFunc is one fallible attempt of a retried operation.
type AttemptFunc func(ctx context.Context) error

// RetryIfFunc decides whether an error is worth another attempt.
type RetryIfFunc func(err error) bool

// DefaultBackoffDelays returns the inter-attempt delays used around browser
// interactions: exponential from 5 minutes, capped at 60 minutes, for 10
// total attempts. The windows are large because transient anti-bot
// interventions clear on their own given enough time.
func DefaultBackoffDelays() []time.Duration {
	const (
		min      = 5 * time.Minute
		max      = 60 * time.Minute
		attempts = 10
	)
	delays := make([]time.Duration, 0, attempts-1)
	d := min
	for i := 0; i < attempts-1; i++ {
		delays = append(delays, d)
		d *= 2
		if d > max {
			d = max
		}
	}
	return delays
}

// Retry runs fn with exponential backoff. It makes len(delays)+1 total
// attempts, sleeping delays[i] after the i-th failure. When retryIf is
// non-nil, errors it rejects are returned immediately. The final error is
// returned unchanged, with no wrapping.
//
// The logger, if provided, records every attempt and the delay before the
// next one.
func Retry(ctx context.Context, op string, fn AttemptFunc, retryIf RetryIfFunc, logger *slog.Logger, delays []time.Duration) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if logger != nil {
			logger.Debug("attempt starting", "op", op, "attempt", attempt, "max_attempts", maxAttempts)
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if retryIf != nil && !retryIf(err) {
			return err
		}
		if attempt >= maxAttempts {
			break
		}

		delay := delays[attempt-1]
		if logger != nil {
			logger.Warn("attempt failed, backing off",
				"op", op,
				"attempt", attempt,
				"delay", delay,
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}
