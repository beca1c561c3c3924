package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCLI(t *testing.T, args ...string) *CLI {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return cli
}

func TestCollectCmd_Defaults(t *testing.T) {
	cli := parseCLI(t, "collect", "сыр", "--profiles", "/tmp/profiles")

	assert.Equal(t, "сыр", cli.Collect.Keyword)
	assert.False(t, cli.Collect.Depth)
	assert.Equal(t, 10, cli.Collect.PopularityThreshold)
	assert.Equal(t, "ozonkw.db", cli.Collect.DB)
	assert.Equal(t, 10*time.Second, cli.Collect.SettleDelay)
	assert.False(t, cli.Collect.PauseOnDepthFailure)
}

func TestCollectCmd_KeywordIsOptional(t *testing.T) {
	cli := parseCLI(t, "collect", "--profiles", "/tmp/profiles")

	assert.Empty(t, cli.Collect.Keyword)
}

func TestCollectCmd_Flags(t *testing.T) {
	cli := parseCLI(t, "collect", "сыр",
		"--profiles", "/tmp/profiles",
		"--depth",
		"--popularity-threshold", "0",
		"--pause-on-depth-failure",
		"--settle-delay", "1s",
	)

	assert.True(t, cli.Collect.Depth)
	assert.Zero(t, cli.Collect.PopularityThreshold)
	assert.True(t, cli.Collect.PauseOnDepthFailure)
	assert.Equal(t, time.Second, cli.Collect.SettleDelay)
}

func TestCollectCmd_ValidatesChromePath(t *testing.T) {
	dir := t.TempDir()
	cmd := &CollectCmd{
		Chrome:    filepath.Join(dir, "missing-chrome"),
		Profiles:  dir,
		Templates: dir,
	}

	err := cmd.Run(&Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	assert.ErrorContains(t, err, "chrome executable path")
}

func TestCollectCmd_ValidatesProfileStorage(t *testing.T) {
	dir := t.TempDir()
	chrome := filepath.Join(dir, "chrome")
	require.NoError(t, os.WriteFile(chrome, []byte("#!/bin/sh\n"), 0o755))

	cmd := &CollectCmd{
		Chrome:    chrome,
		Profiles:  filepath.Join(dir, "missing-profiles"),
		Templates: dir,
	}

	err := cmd.Run(&Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	assert.ErrorContains(t, err, "browser profile storage path")
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := &VersionCmd{}

	err := cmd.Run(&Dependencies{Stdout: &out})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "ozonkw")
}

func TestRun_NoCommand(t *testing.T) {
	var out, errOut bytes.Buffer

	err := Run(context.Background(), nil, &out, &errOut)

	assert.ErrorContains(t, err, "no command specified")
}
