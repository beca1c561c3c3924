package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/msaveliev/ozonkw"
	"github.com/msaveliev/ozonkw/crawl"
	"github.com/msaveliev/ozonkw/fs"
	"github.com/msaveliev/ozonkw/rod"
	ozslog "github.com/msaveliev/ozonkw/slog"
	"github.com/msaveliev/ozonkw/sqlite"
	"github.com/msaveliev/ozonkw/template"
	"golang.org/x/sync/errgroup"
)

// Run wires the crawl engine and streams its records into the database.
func (c *CollectCmd) Run(deps *Dependencies) error {
	if err := c.validatePaths(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))

	db := sqlite.NewDB(c.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", c.DB, err)
	}
	defer db.Close()
	records := sqlite.NewRecordService(db)

	cfg := ozonkw.DefaultSessionConfig()
	cfg.ExecutablePath = c.Chrome
	cfg.Headless = c.Headless

	var provider ozonkw.SessionProvider = &rod.Provider{
		Config:   cfg,
		Profiles: &fs.ProfileStore{Dir: c.Profiles},
		Selector: fs.RandSelector{},
		Logger:   logger,
	}
	if c.Verbose {
		provider = ozslog.NewLoggingSessionProvider(provider, logger)
	}

	engine := &crawl.Engine{
		Sessions: provider,
		Executor: &crawl.QueryExecutor{
			Renderer: template.NewRenderer(c.Templates),
			Logger:   logger,
		},
		Login: &crawl.LoginGate{
			Gate:   crawl.PollGate{},
			Logger: logger,
		},
		Logger:              logger,
		SeedKeyword:         c.Keyword,
		DepthEnabled:        c.Depth,
		PopularityThreshold: c.PopularityThreshold,
		SettleDelay:         c.SettleDelay,
	}
	if c.PauseOnDepthFailure {
		engine.DepthFailure = crawl.DepthPause
	}

	// The engine produces a lazy record stream; persist it concurrently so
	// a slow disk never blocks the browser.
	g, ctx := errgroup.WithContext(deps.Ctx)
	stream := make(chan ozonkw.Record)

	g.Go(func() error {
		defer close(stream)
		return engine.Run(ctx, func(rec ozonkw.Record) error {
			select {
			case stream <- rec:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	written := 0
	g.Go(func() error {
		for rec := range stream {
			if err := records.WriteRecord(ctx, &rec); err != nil {
				return err
			}
			written++
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Collected %d records (run %s)\n", written, records.RunID())
	return nil
}

// validatePaths fails fast on absent environment prerequisites.
func (c *CollectCmd) validatePaths() error {
	if info, err := os.Stat(c.Chrome); err != nil || info.IsDir() {
		return ozonkw.Errorf(ozonkw.EINVALID, "chrome executable path %q is not set or invalid", c.Chrome)
	}
	if info, err := os.Stat(c.Profiles); err != nil || !info.IsDir() {
		return ozonkw.Errorf(ozonkw.EINVALID, "browser profile storage path %q is not set or invalid", c.Profiles)
	}
	if info, err := os.Stat(c.Templates); err != nil || !info.IsDir() {
		return ozonkw.Errorf(ozonkw.EINVALID, "template directory path %q is not set or invalid", c.Templates)
	}
	return nil
}
