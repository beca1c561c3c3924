package slog_test

import (
	"bytes"
	"context"
	"encoding/json"
	stdslog "log/slog"
	"testing"

	"github.com/msaveliev/ozonkw"
	"github.com/msaveliev/ozonkw/mock"
	ozslog "github.com/msaveliev/ozonkw/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSession_LogsEval(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

	inner := &mock.Session{
		EvalFn: func(ctx context.Context, js string) (json.RawMessage, error) {
			return json.RawMessage(`[{"query":"сыр"}]`), nil
		},
	}
	session := ozslog.NewLoggingSession(inner, logger)

	result, err := session.Eval(context.Background(), "() => 1")

	require.NoError(t, err)
	assert.JSONEq(t, `[{"query":"сыр"}]`, string(result))
	assert.Contains(t, buf.String(), "msg=eval")
	assert.Contains(t, buf.String(), "script_bytes=7")
}

func TestLoggingSessionProvider_WrapsAndUnwraps(t *testing.T) {
	t.Parallel()

	inner := &mock.Session{}
	var released ozonkw.BrowserSession
	provider := ozslog.NewLoggingSessionProvider(&mock.SessionProvider{
		AcquireFn: func(ctx context.Context) (ozonkw.BrowserSession, error) {
			return inner, nil
		},
		ReleaseFn: func(s ozonkw.BrowserSession) error {
			released = s
			return nil
		},
	}, stdslog.New(stdslog.DiscardHandler))

	session, err := provider.Acquire(context.Background())

	require.NoError(t, err)
	assert.IsType(t, &ozslog.LoggingSession{}, session)

	require.NoError(t, provider.Release(session))
	assert.Same(t, inner, released)
}

func TestLoggingSession_DelegatesCurrentURL(t *testing.T) {
	t.Parallel()

	inner := &mock.Session{
		CurrentURLFn: func(ctx context.Context) (string, error) {
			return "https://data.ozon.ru/app/search-queries", nil
		},
	}
	session := ozslog.NewLoggingSession(inner, stdslog.New(stdslog.DiscardHandler))

	url, err := session.CurrentURL(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "https://data.ozon.ru/app/search-queries", url)
}
