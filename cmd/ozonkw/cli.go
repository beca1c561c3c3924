package main

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Dependencies holds the execution context for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Collect CollectCmd `cmd:"" help:"Run a keyword-expansion crawl"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

// CollectCmd is the "collect" subcommand.
type CollectCmd struct {
	Keyword             string        `arg:"" optional:"" help:"Seed search query (empty for the unfiltered top-queries view)"`
	Depth               bool          `short:"d" help:"Expand discovered queries one level deep"`
	PopularityThreshold int           `short:"t" default:"10" help:"Minimum popularity for a query to be expanded"`
	Chrome              string        `env:"GOOGLE_CHROME_EXECUTABLE_PATH" default:"/usr/bin/google-chrome" help:"Chrome executable path"`
	Profiles            string        `env:"BROWSER_PROFILE_STORAGE_DIR" required:"" help:"Browser profile storage directory"`
	Templates           string        `env:"OZONKW_TEMPLATES_DIR" default:"templates" help:"Extraction script templates directory"`
	DB                  string        `env:"OZONKW_DB" default:"ozonkw.db" help:"SQLite database path"`
	Headless            bool          `help:"Run the browser headless (manual login needs a visible window)"`
	PauseOnDepthFailure bool          `help:"Pause for the operator instead of aborting when a depth expansion fails"`
	SettleDelay         time.Duration `default:"10s" help:"Delay between switching keywords and extracting"`
	Verbose             bool          `short:"v" help:"Enable debug logging"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}

// Run prints the version.
func (c *VersionCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "ozonkw %s\n", Version)
	return nil
}
