package crawl

import (
	"context"
	"time"

	"github.com/msaveliev/ozonkw"
)

// Compile-time interface verification.
var _ ozonkw.ManualGate = (*PollGate)(nil)

// PollGate is the production ManualGate: it re-evaluates the predicate on an
// interval while a human operator acts out-of-band (e.g., logs in through
// the visible browser window). It never times out.
type PollGate struct{}

// AwaitCondition blocks until pred reports true, checking every pollInterval.
func (PollGate) AwaitCondition(ctx context.Context, pred func(ctx context.Context) (bool, error), pollInterval time.Duration) error {
	for {
		ok, err := pred(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
