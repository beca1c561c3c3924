// Package rod provides a Chrome-backed BrowserSession implementation using
// go-rod. One session owns one profile-bound browser with exactly one page.
package rod

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/msaveliev/ozonkw"
)

// Compile-time interface verification.
var _ ozonkw.BrowserSession = (*Session)(nil)

// Session wraps one persistent, profile-bound browser page. It is not safe
// for concurrent use: the engine owns it exclusively and never issues two
// evaluations at once.
type Session struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
}

// CurrentURL reports the page's current location.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// Navigate points the page at the URL and waits for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

// Reload reloads the current page and waits for the load event.
func (s *Session) Reload(ctx context.Context) error {
	page := s.page.Context(ctx)
	if err := page.Reload(); err != nil {
		return err
	}
	return page.WaitLoad()
}

// Eval evaluates a JavaScript function expression in the page, awaiting its
// promise, and returns the JSON-encoded result value.
func (s *Session) Eval(ctx context.Context, js string) (json.RawMessage, error) {
	obj, err := s.page.Context(ctx).Evaluate(rod.Eval(js).ByPromise())
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj.Value)
}

// Close releases the page and its browser.
func (s *Session) Close() error {
	err := s.browser.Close()
	if s.launcher != nil {
		s.launcher.Kill()
	}
	return err
}

// Compile-time interface verification.
var _ ozonkw.SessionProvider = (*Provider)(nil)

// Provider provisions profile-bound browser sessions. Each Acquire picks a
// profile from the pool, launches Chrome against it with the configured
// browser-context parameters, and returns a session pointed at StartURL.
type Provider struct {
	Config   ozonkw.SessionConfig
	Profiles ozonkw.ProfileStore
	Selector ozonkw.ProfileSelector
	Logger   *slog.Logger

	// StartURL is where the page is pointed right after launch.
	StartURL string
}

// Acquire launches a browser session.
func (p *Provider) Acquire(ctx context.Context) (ozonkw.BrowserSession, error) {
	pool, err := p.Profiles.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	profile := p.Selector.Choose(pool)
	if profile == "" {
		return nil, ozonkw.Errorf(ozonkw.EINVALID, "no browser profile available")
	}
	if p.Logger != nil {
		p.Logger.Info("using browser profile directory", "profile", profile)
	}

	cfg := p.Config
	cfg.ProfileDir = profile

	lnchr := newLauncher(cfg)
	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	session := &Session{browser: browser, launcher: lnchr}
	if err := p.preparePage(ctx, session, cfg); err != nil {
		_ = session.Close()
		return nil, err
	}
	return session, nil
}

// Release closes the session's browser.
func (p *Provider) Release(s ozonkw.BrowserSession) error {
	return s.Close()
}

// newLauncher builds a launcher with the profile binding and the
// browser-context switches from the config.
func newLauncher(cfg ozonkw.SessionConfig) *launcher.Launcher {
	lnchr := launcher.New().
		Leakless(true).
		Headless(cfg.Headless)

	if cfg.ExecutablePath != "" {
		lnchr = lnchr.Bin(cfg.ExecutablePath)
	}
	if cfg.ProfileDir != "" {
		lnchr = lnchr.UserDataDir(cfg.ProfileDir)
	}
	if cfg.Locale != "" {
		lnchr = lnchr.Set("lang", cfg.Locale)
	}
	for _, arg := range cfg.ExtraArgs {
		name, value, _ := strings.Cut(arg, "=")
		lnchr = lnchr.Set(flagName(name), value)
	}
	return lnchr
}

func flagName(name string) flags.Flag {
	return flags.Flag(strings.TrimLeft(name, "-"))
}

// preparePage opens the single page, applies emulation overrides, and
// navigates to the start URL.
func (p *Provider) preparePage(ctx context.Context, session *Session, cfg ozonkw.SessionConfig) error {
	page, err := session.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	session.page = page

	if cfg.Viewport.Width > 0 && cfg.Viewport.Height > 0 {
		err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             cfg.Viewport.Width,
			Height:            cfg.Viewport.Height,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			return fmt.Errorf("setting viewport: %w", err)
		}
	}
	if cfg.TimezoneID != "" {
		err := proto.EmulationSetTimezoneOverride{TimezoneID: cfg.TimezoneID}.Call(page)
		if err != nil {
			return fmt.Errorf("setting timezone: %w", err)
		}
	}
	if cfg.Geolocation != (ozonkw.Geolocation{}) {
		err := proto.EmulationSetGeolocationOverride{
			Latitude:  &cfg.Geolocation.Latitude,
			Longitude: &cfg.Geolocation.Longitude,
			Accuracy:  &cfg.Geolocation.Accuracy,
		}.Call(page)
		if err != nil {
			return fmt.Errorf("setting geolocation: %w", err)
		}
	}
	if len(cfg.Permissions) > 0 {
		permissions := make([]proto.BrowserPermissionType, 0, len(cfg.Permissions))
		for _, perm := range cfg.Permissions {
			permissions = append(permissions, proto.BrowserPermissionType(perm))
		}
		err := proto.BrowserGrantPermissions{Permissions: permissions}.Call(session.browser)
		if err != nil {
			return fmt.Errorf("granting permissions: %w", err)
		}
	}

	if p.Logger != nil {
		// Surface in-page console output; the extraction script logs its
		// progress there.
		logger := p.Logger
		go page.EachEvent(func(e *proto.RuntimeConsoleAPICalled) {
			logger.Debug("browser console", "type", string(e.Type), "args", consoleArgs(e))
		})()
	}

	if p.StartURL != "" {
		if err := session.Navigate(ctx, p.StartURL); err != nil {
			return fmt.Errorf("navigating to start URL: %w", err)
		}
	}
	return nil
}

func consoleArgs(e *proto.RuntimeConsoleAPICalled) string {
	parts := make([]string, 0, len(e.Args))
	for _, arg := range e.Args {
		parts = append(parts, arg.Value.String())
	}
	return strings.Join(parts, " ")
}
