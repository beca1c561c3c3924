package ozonkw

import (
	"context"
	"encoding/json"
)

// BrowserSession is an opaque capability wrapping one persistent,
// profile-bound browser page. A session has exactly one owner at a time;
// callers must never issue two concurrent evaluations against it.
type BrowserSession interface {
	// CurrentURL reports the page's current location.
	CurrentURL(ctx context.Context) (string, error)

	// Navigate points the page at the URL and waits for the load event.
	Navigate(ctx context.Context, url string) error

	// Reload reloads the current page and waits for the load event.
	Reload(ctx context.Context) error

	// Eval evaluates a JavaScript function expression in the page, awaiting
	// its result if it returns a promise, and returns the JSON-encoded value.
	Eval(ctx context.Context, js string) (json.RawMessage, error)

	// Close releases the page and its browser.
	Close() error
}

// SessionProvider provisions browser sessions bound to a profile directory.
type SessionProvider interface {
	// Acquire launches a browser with a profile chosen from the pool and
	// returns a session pointed at the provider's start URL.
	Acquire(ctx context.Context) (BrowserSession, error)

	// Release returns a session to the provider, closing its browser.
	Release(s BrowserSession) error
}

// Viewport is the browser window size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// Geolocation is a geolocation override for the browser context.
type Geolocation struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

// SessionConfig holds browser-context parameters. It is constructed once per
// session acquisition and never mutated afterwards.
type SessionConfig struct {
	ExecutablePath string
	ProfileDir     string
	Headless       bool
	Viewport       Viewport
	Locale         string
	Geolocation    Geolocation
	TimezoneID     string
	Permissions    []string
	// ExtraArgs are additional Chromium switches in "name=value" form,
	// without leading dashes.
	ExtraArgs []string
}

// DefaultSessionConfig returns the browser-context parameters used for
// production crawls: a headful desktop profile pinned to Moscow.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Headless: false,
		Viewport: Viewport{Width: 1920, Height: 1080},
		Locale:   "en-US,en,ru",
		Geolocation: Geolocation{
			Latitude:  55.782463,
			Longitude: 37.596637,
			Accuracy:  90,
		},
		TimezoneID:  "Europe/Moscow",
		Permissions: []string{"geolocation"},
		ExtraArgs: []string{
			"disable-blink-features=AutomationControlled",
			"disk-cache-size=524288000", // 500 MB
		},
	}
}
