// Package slog provides logging decorators for domain interfaces.
package slog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/msaveliev/ozonkw"
)

// Ensure LoggingSession implements ozonkw.BrowserSession.
var _ ozonkw.BrowserSession = (*LoggingSession)(nil)

// LoggingSession wraps a BrowserSession with debug logging.
type LoggingSession struct {
	next   ozonkw.BrowserSession
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next ozonkw.BrowserSession, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// CurrentURL delegates to the wrapped session.
func (s *LoggingSession) CurrentURL(ctx context.Context) (string, error) {
	return s.next.CurrentURL(ctx)
}

// Navigate logs the target URL and delegates to the wrapped session.
func (s *LoggingSession) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

// Reload logs the reload and delegates to the wrapped session.
func (s *LoggingSession) Reload(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("reload",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Reload(ctx)
}

// Eval logs the evaluation size and delegates to the wrapped session.
func (s *LoggingSession) Eval(ctx context.Context, js string) (result json.RawMessage, err error) {
	defer func(begin time.Time) {
		s.logger.Info("eval",
			"script_bytes", len(js),
			"result_bytes", len(result),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Eval(ctx, js)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}

// Ensure LoggingSessionProvider implements ozonkw.SessionProvider.
var _ ozonkw.SessionProvider = (*LoggingSessionProvider)(nil)

// LoggingSessionProvider wraps a SessionProvider so that every acquired
// session is decorated with a LoggingSession.
type LoggingSessionProvider struct {
	next   ozonkw.SessionProvider
	logger *slog.Logger
}

// NewLoggingSessionProvider creates a new LoggingSessionProvider.
func NewLoggingSessionProvider(next ozonkw.SessionProvider, logger *slog.Logger) *LoggingSessionProvider {
	return &LoggingSessionProvider{next: next, logger: logger}
}

// Acquire acquires a session from the wrapped provider and decorates it.
func (p *LoggingSessionProvider) Acquire(ctx context.Context) (ozonkw.BrowserSession, error) {
	session, err := p.next.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return NewLoggingSession(session, p.logger), nil
}

// Release unwraps the decorated session and releases the original.
func (p *LoggingSessionProvider) Release(s ozonkw.BrowserSession) error {
	if wrapped, ok := s.(*LoggingSession); ok {
		return p.next.Release(wrapped.next)
	}
	return p.next.Release(s)
}
