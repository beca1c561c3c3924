package ozonkw

import (
	"context"
	"time"
)

// ManualGate blocks crawl progress until a condition an external operator
// controls becomes true. Production implementations poll while a human acts
// out-of-band (e.g., completes a login in the visible browser window); test
// implementations may resolve instantly.
type ManualGate interface {
	// AwaitCondition blocks until pred reports true, re-evaluating it every
	// pollInterval. There is no timeout; only context cancellation or a
	// predicate error ends the wait early.
	AwaitCondition(ctx context.Context, pred func(ctx context.Context) (bool, error), pollInterval time.Duration) error
}
