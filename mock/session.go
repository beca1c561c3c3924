package mock

import (
	"context"
	"encoding/json"

	"github.com/msaveliev/ozonkw"
)

var _ ozonkw.BrowserSession = (*Session)(nil)

// Session is a mock implementation of ozonkw.BrowserSession.
type Session struct {
	CurrentURLFn func(ctx context.Context) (string, error)
	NavigateFn   func(ctx context.Context, url string) error
	ReloadFn     func(ctx context.Context) error
	EvalFn       func(ctx context.Context, js string) (json.RawMessage, error)
	CloseFn      func() error
}

func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	return s.CurrentURLFn(ctx)
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) Reload(ctx context.Context) error {
	return s.ReloadFn(ctx)
}

func (s *Session) Eval(ctx context.Context, js string) (json.RawMessage, error) {
	return s.EvalFn(ctx, js)
}

func (s *Session) Close() error {
	return s.CloseFn()
}

var _ ozonkw.SessionProvider = (*SessionProvider)(nil)

// SessionProvider is a mock implementation of ozonkw.SessionProvider.
type SessionProvider struct {
	AcquireFn func(ctx context.Context) (ozonkw.BrowserSession, error)
	ReleaseFn func(s ozonkw.BrowserSession) error
}

func (p *SessionProvider) Acquire(ctx context.Context) (ozonkw.BrowserSession, error) {
	return p.AcquireFn(ctx)
}

func (p *SessionProvider) Release(s ozonkw.BrowserSession) error {
	return p.ReleaseFn(s)
}
