package crawl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/msaveliev/ozonkw"
)

// DefaultLoginPollInterval is how often the gate re-checks the session's
// location while waiting for a manual login.
const DefaultLoginPollInterval = 5 * time.Second

// LoginGate blocks crawl progress until the session is authenticated.
//
// The authentication status of a session is observable only through its
// current location: a location under the search-queries prefix means the
// operator's cookies are valid. A session parked on the requests-limit page
// is rate limited, which the gate retries with long backoff before giving up.
type LoginGate struct {
	Gate   ozonkw.ManualGate
	Logger *slog.Logger

	// PollInterval between manual-login checks. Defaults to
	// DefaultLoginPollInterval.
	PollInterval time.Duration

	// RetryDelays override the rate-limit backoff schedule. Tests inject
	// near-zero delays here. Defaults to DefaultBackoffDelays.
	RetryDelays []time.Duration

	// AuthenticatedPrefix and RateLimitURL override the production
	// locations. Defaults to SearchQueriesURL and RequestsLimitURL.
	AuthenticatedPrefix string
	RateLimitURL        string
}

// Ensure blocks until the session is authenticated. It is called exactly
// once per crawl run, before the first extraction; the session stays
// authenticated across subsequent expansions and the gate is not re-entered
// unless a depth-pause policy explicitly asks for it.
//
// Returns ERATELIMIT if the requests-limit page persists through the whole
// backoff schedule.
func (g *LoginGate) Ensure(ctx context.Context, session ozonkw.BrowserSession) error {
	prefix := g.AuthenticatedPrefix
	if prefix == "" {
		prefix = SearchQueriesURL
	}
	limitURL := g.RateLimitURL
	if limitURL == "" {
		limitURL = RequestsLimitURL
	}
	poll := g.PollInterval
	if poll <= 0 {
		poll = DefaultLoginPollInterval
	}

	current, err := session.CurrentURL(ctx)
	if err != nil {
		return err
	}
	if strings.HasPrefix(current, prefix) {
		return nil
	}

	for !strings.HasPrefix(current, prefix) {
		if err := g.checkRequestsLimit(ctx, session, limitURL); err != nil {
			return err
		}

		// A reload during the limit check may have restored the session.
		current, err = session.CurrentURL(ctx)
		if err != nil {
			return err
		}
		if strings.HasPrefix(current, prefix) {
			break
		}

		if g.Logger != nil {
			g.Logger.Warn("user is not logged in to Ozon", "url", current)
			g.Logger.Info("please log in to Ozon with your credentials")
		}
		err = g.Gate.AwaitCondition(ctx, func(ctx context.Context) (bool, error) {
			u, err := session.CurrentURL(ctx)
			if err != nil {
				return false, err
			}
			return strings.HasPrefix(u, prefix), nil
		}, poll)
		if err != nil {
			return err
		}

		current, err = session.CurrentURL(ctx)
		if err != nil {
			return err
		}
	}

	if g.Logger != nil {
		g.Logger.Info("user successfully logged in")
	}
	return nil
}

// checkRequestsLimit reloads the page and raises ERATELIMIT if the site has
// parked the session on the requests-limit page. The condition is retried
// with the full backoff schedule; anything else passes through untouched.
func (g *LoginGate) checkRequestsLimit(ctx context.Context, session ozonkw.BrowserSession, limitURL string) error {
	delays := g.RetryDelays
	if delays == nil {
		delays = DefaultBackoffDelays()
	}

	check := func(ctx context.Context) error {
		if err := session.Reload(ctx); err != nil {
			return err
		}
		u, err := session.CurrentURL(ctx)
		if err != nil {
			return err
		}
		if u == limitURL {
			if g.Logger != nil {
				g.Logger.Warn("request limit exceeded", "url", u)
			}
			return ozonkw.Errorf(ozonkw.ERATELIMIT, "Ozon request limit reached")
		}
		return nil
	}

	retryIf := func(err error) bool {
		return ozonkw.ErrorCode(err) == ozonkw.ERATELIMIT
	}

	return Retry(ctx, "requests-limit check", check, retryIf, g.Logger, delays)
}
