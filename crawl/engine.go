// Package crawl implements the keyword-expansion crawl engine: one
// authenticated browser session driven sequentially across a seed keyword
// and its depth-1 candidates, emitting a lazy stream of analytics records.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/msaveliev/ozonkw"
	"golang.org/x/time/rate"
)

// Frontier sizing for keyword deduplication.
const (
	frontierExpectedKeywords  = 10000
	frontierFalsePositiveRate = 0.01
)

// DefaultSettleDelay is the pause between re-pointing the session at a new
// keyword and invoking extraction, letting client-side state settle.
const DefaultSettleDelay = 10 * time.Second

// DepthFailurePolicy controls what happens when a depth-1 expansion fails
// after its whole retry schedule.
type DepthFailurePolicy int

const (
	// DepthAbort propagates the failure and aborts the entire run. This is
	// the default: completeness signaling over best-effort partial harvests.
	DepthAbort DepthFailurePolicy = iota

	// DepthPause re-enters the login gate (blocking on the operator) and
	// then retries the candidate, indefinitely.
	DepthPause
)

// EmitFunc receives records as the engine produces them.
type EmitFunc func(rec ozonkw.Record) error

// Engine owns the frontier of keywords to crawl, the visited set, and the
// depth/threshold policy. It orchestrates the login gate and the query
// executor per keyword over a single exclusively-owned browser session.
//
// An Engine value describes one crawl run; Run must not be called twice.
type Engine struct {
	Sessions ozonkw.SessionProvider
	Executor *QueryExecutor
	Login    *LoginGate
	Logger   *slog.Logger

	// SeedKeyword is trimmed before use. Empty is accepted and produces an
	// unfiltered top-queries view.
	SeedKeyword string

	// DepthEnabled turns on one-level expansion of qualifying candidates.
	DepthEnabled bool

	// PopularityThreshold is the minimum Count for a batch row's query to
	// become a candidate. Applied to candidates only, never to the seed.
	PopularityThreshold int

	// DepthFailure selects the policy for repeated depth-1 failures.
	DepthFailure DepthFailurePolicy

	// SettleDelay between candidate navigations. Defaults to
	// DefaultSettleDelay.
	SettleDelay time.Duration

	// OnIdle, if set, is invoked when the frontier drains and the run is
	// about to finish.
	OnIdle func()
}

// Run acquires a session, authenticates it once, expands the seed keyword
// and (if enabled) every qualifying candidate at depth 1, calling emit for
// each record in production order. The session is released on return.
//
// Records from the seed expansion are fully emitted before any depth-1
// record. An unrecoverable failure on any expansion aborts the run unless
// DepthPause is selected.
func (e *Engine) Run(ctx context.Context, emit EmitFunc) error {
	if e.PopularityThreshold < 0 {
		return ozonkw.Errorf(ozonkw.EINVALID, "popularity threshold must be non-negative")
	}
	seed := strings.TrimSpace(e.SeedKeyword)

	session, err := e.Sessions.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring session: %w", err)
	}
	defer func() {
		if rerr := e.Sessions.Release(session); rerr != nil && e.Logger != nil {
			e.Logger.Warn("releasing session", "err", rerr)
		}
	}()

	if err := session.Navigate(ctx, QueryURL(seed)); err != nil {
		return fmt.Errorf("navigating to seed keyword: %w", err)
	}
	if err := e.Login.Ensure(ctx, session); err != nil {
		return err
	}

	frontier := NewFrontier(frontierExpectedKeywords, frontierFalsePositiveRate)
	// The seed joins the visited set the moment its expansion begins, so it
	// can never be re-queued as its own candidate.
	frontier.MarkSeen(seed)

	records, err := e.Executor.Extract(ctx, session, seed)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if rec.Count >= e.PopularityThreshold {
			frontier.Push(rec.Query)
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
	if e.Logger != nil {
		e.Logger.Debug("seed expansion complete",
			"keyword", seed,
			"records", len(records),
			"candidates", frontier.Len(),
		)
	}

	if !e.DepthEnabled {
		e.idle()
		return nil
	}

	settle := e.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	limiter := rate.NewLimiter(rate.Every(settle), 1)
	_ = limiter.Allow() // drain the initial token so every Wait paces a full interval

	for {
		keyword, ok := frontier.Pop()
		if !ok {
			break
		}

		// Change the address bar without a reload; the analytics app is a
		// single-page application and a full navigation would drop its state.
		if err := e.pushState(ctx, session, QueryURL(keyword)); err != nil {
			return fmt.Errorf("navigating to candidate %q: %w", keyword, err)
		}
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		records, err := e.expandCandidate(ctx, session, keyword)
		if err != nil {
			return err
		}
		for _, rec := range records {
			// The candidate's own top row duplicates what the seed batch
			// already reported.
			if rec.Query == keyword {
				continue
			}
			if err := emit(rec); err != nil {
				return err
			}
		}
	}

	e.idle()
	return nil
}

// expandCandidate extracts one candidate keyword, applying the configured
// depth-failure policy.
func (e *Engine) expandCandidate(ctx context.Context, session ozonkw.BrowserSession, keyword string) ([]ozonkw.Record, error) {
	for {
		records, err := e.Executor.Extract(ctx, session, keyword)
		if err == nil {
			return records, nil
		}
		if e.DepthFailure != DepthPause {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if e.Logger != nil {
			e.Logger.Error("depth expansion failed, pausing for operator",
				"keyword", keyword,
				"err", err,
			)
		}
		// Park on the login gate: the usual cause is a lost session, and the
		// gate blocks until the operator restores it.
		if gerr := e.Login.Ensure(ctx, session); gerr != nil {
			return nil, gerr
		}
	}
}

// pushState changes the page location without reloading.
func (e *Engine) pushState(ctx context.Context, session ozonkw.BrowserSession, url string) error {
	js := fmt.Sprintf("() => window.history.pushState(null, '', %q)", url)
	_, err := session.Eval(ctx, js)
	return err
}

func (e *Engine) idle() {
	if e.Logger != nil {
		e.Logger.Info("frontier empty, crawl run finished")
	}
	if e.OnIdle != nil {
		e.OnIdle()
	}
}
