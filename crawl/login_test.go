package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/msaveliev/ozonkw"
	"github.com/msaveliev/ozonkw/crawl"
	"github.com/msaveliev/ozonkw/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginGate_AlreadyAuthenticated(t *testing.T) {
	t.Parallel()

	session := &mock.Session{
		CurrentURLFn: func(ctx context.Context) (string, error) {
			return crawl.SearchQueriesURL + "?__сыр", nil
		},
		ReloadFn: func(ctx context.Context) error {
			t.Fatal("reload must not be called when already authenticated")
			return nil
		},
	}
	gate := &crawl.LoginGate{
		Gate: &mock.Gate{
			AwaitConditionFn: func(ctx context.Context, pred func(ctx context.Context) (bool, error), pollInterval time.Duration) error {
				t.Fatal("manual gate must not be entered when already authenticated")
				return nil
			},
		},
	}

	err := gate.Ensure(context.Background(), session)

	assert.NoError(t, err)
}

func TestLoginGate_RateLimitExhaustsRetries(t *testing.T) {
	t.Parallel()

	reloads := 0
	session := &mock.Session{
		CurrentURLFn: func(ctx context.Context) (string, error) {
			return crawl.RequestsLimitURL, nil
		},
		ReloadFn: func(ctx context.Context) error {
			reloads++
			return nil
		},
	}
	gate := &crawl.LoginGate{
		Gate:        mock.ResolvedGate{},
		RetryDelays: instantDelays(9),
	}

	err := gate.Ensure(context.Background(), session)

	require.Error(t, err)
	assert.Equal(t, ozonkw.ERATELIMIT, ozonkw.ErrorCode(err))
	assert.Equal(t, 10, reloads, "limit check should be retried 10 times")
}

func TestLoginGate_RateLimitClears(t *testing.T) {
	t.Parallel()

	// The session sits on the limit page for two reloads, then recovers
	// straight into the authenticated area.
	reloads := 0
	session := &mock.Session{
		CurrentURLFn: func(ctx context.Context) (string, error) {
			if reloads < 2 {
				return crawl.RequestsLimitURL, nil
			}
			return crawl.SearchQueriesURL, nil
		},
		ReloadFn: func(ctx context.Context) error {
			reloads++
			return nil
		},
	}
	gate := &crawl.LoginGate{
		Gate:        mock.ResolvedGate{},
		RetryDelays: instantDelays(9),
	}

	err := gate.Ensure(context.Background(), session)

	assert.NoError(t, err)
	assert.Equal(t, 2, reloads)
}

func TestLoginGate_BlocksUntilManualLogin(t *testing.T) {
	t.Parallel()

	loggedIn := false
	session := &mock.Session{
		CurrentURLFn: func(ctx context.Context) (string, error) {
			if loggedIn {
				return crawl.SearchQueriesURL, nil
			}
			return "https://www.ozon.ru/", nil
		},
		ReloadFn: func(ctx context.Context) error { return nil },
	}

	gateEntered := 0
	gate := &crawl.LoginGate{
		Gate: &mock.Gate{
			AwaitConditionFn: func(ctx context.Context, pred func(ctx context.Context) (bool, error), pollInterval time.Duration) error {
				gateEntered++

				// Before the operator acts, the predicate must report false.
				ok, err := pred(ctx)
				require.NoError(t, err)
				assert.False(t, ok)

				// Operator completes the login out-of-band.
				loggedIn = true

				ok, err = pred(ctx)
				require.NoError(t, err)
				assert.True(t, ok)
				return nil
			},
		},
		RetryDelays: instantDelays(9),
	}

	err := gate.Ensure(context.Background(), session)

	assert.NoError(t, err)
	assert.Equal(t, 1, gateEntered)
}

func TestPollGate_ResolvesWhenConditionBecomesTrue(t *testing.T) {
	t.Parallel()

	calls := 0
	pred := func(ctx context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	}

	err := crawl.PollGate{}.AwaitCondition(context.Background(), pred, time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestPollGate_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pred := func(ctx context.Context) (bool, error) { return false, nil }
	err := crawl.PollGate{}.AwaitCondition(ctx, pred, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
}
