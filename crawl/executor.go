package crawl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/msaveliev/ozonkw"
)

// DefaultScriptRetries is the in-page retry budget handed to the rendered
// extraction script.
const DefaultScriptRetries = 5

// QueryExecutor renders and runs the extraction script for one keyword
// against a session, validates the shape of the result, and maps it into
// typed records. The whole operation is wrapped in the long backoff retry
// policy; a persistently failing keyword can stall the crawl for hours
// before aborting, which is preferred over abandoning it prematurely.
type QueryExecutor struct {
	Renderer ozonkw.ScriptRenderer
	Logger   *slog.Logger

	// ScriptRetries is the in-page retry budget. Defaults to
	// DefaultScriptRetries.
	ScriptRetries int

	// RetryDelays override the backoff schedule. Defaults to
	// DefaultBackoffDelays.
	RetryDelays []time.Duration

	// Now returns the stamp time for records. Defaults to time.Now.
	Now func() time.Time
}

// Extract runs the extraction script for keyword and returns the full batch
// of records, all-or-nothing: partial batches are never returned from a
// failed attempt.
//
// Any failure is retried with the backoff schedule except ETEMPLATE, which
// signals a deployment defect and aborts immediately. After the final
// attempt the original error is returned unchanged.
func (e *QueryExecutor) Extract(ctx context.Context, session ozonkw.BrowserSession, keyword string) ([]ozonkw.Record, error) {
	delays := e.RetryDelays
	if delays == nil {
		delays = DefaultBackoffDelays()
	}

	var records []ozonkw.Record
	attempt := func(ctx context.Context) error {
		batch, err := e.extractOnce(ctx, session, keyword)
		if err != nil {
			return err
		}
		records = batch
		return nil
	}

	retryIf := func(err error) bool {
		return ozonkw.ErrorCode(err) != ozonkw.ETEMPLATE
	}

	if err := Retry(ctx, "extract "+keyword, attempt, retryIf, e.Logger, delays); err != nil {
		return nil, err
	}
	return records, nil
}

// extractOnce is a single attempt: render, evaluate, validate, map.
func (e *QueryExecutor) extractOnce(ctx context.Context, session ozonkw.BrowserSession, keyword string) ([]ozonkw.Record, error) {
	retries := e.ScriptRetries
	if retries <= 0 {
		retries = DefaultScriptRetries
	}

	js, err := e.Renderer.Render(keyword, retries)
	if err != nil {
		return nil, err
	}

	if e.Logger != nil {
		e.Logger.Info("executing extraction script in the browser", "keyword", keyword)
	}
	begin := time.Now()
	raw, err := session.Eval(ctx, js)
	if err != nil {
		return nil, err
	}
	if e.Logger != nil {
		e.Logger.Info("extraction script finished", "keyword", keyword, "duration", time.Since(begin))
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
		return nil, ozonkw.Errorf(ozonkw.EEXTRACTION, "unexpected result shape: expected non-empty list")
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	records := make([]ozonkw.Record, 0, len(entries))
	for _, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil {
			return nil, ozonkw.Errorf(ozonkw.EEXTRACTION, "unexpected entry shape: expected object")
		}

		// Stamp the synthetic fields first, then overlay the page-provided
		// ones. The page wins on conflict, which keeps the mapping
		// forward-compatible with new upstream fields.
		rec := ozonkw.Record{
			QueryKeyword: keyword,
			ScrapedAt:    now().UTC(),
		}
		if err := json.Unmarshal(entry, &rec); err != nil {
			return nil, ozonkw.Errorf(ozonkw.EEXTRACTION, "unexpected entry field types: %v", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
