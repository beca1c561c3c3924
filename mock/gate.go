package mock

import (
	"context"
	"time"

	"github.com/msaveliev/ozonkw"
)

var _ ozonkw.ManualGate = (*Gate)(nil)

// Gate is a mock implementation of ozonkw.ManualGate.
type Gate struct {
	AwaitConditionFn func(ctx context.Context, pred func(ctx context.Context) (bool, error), pollInterval time.Duration) error
}

func (g *Gate) AwaitCondition(ctx context.Context, pred func(ctx context.Context) (bool, error), pollInterval time.Duration) error {
	return g.AwaitConditionFn(ctx, pred, pollInterval)
}

// ResolvedGate is a ManualGate that reports success without blocking,
// for tests where the operator condition is already satisfied.
type ResolvedGate struct{}

var _ ozonkw.ManualGate = ResolvedGate{}

func (ResolvedGate) AwaitCondition(ctx context.Context, pred func(ctx context.Context) (bool, error), pollInterval time.Duration) error {
	return nil
}
