package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/neet-pulse/internal/analysis"
	"github.com/phrazzld/neet-pulse/internal/app"
	"github.com/phrazzld/neet-pulse/internal/config"
	"github.com/phrazzld/neet-pulse/internal/generation"
	"github.com/phrazzld/neet-pulse/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests share the fatih/color NoColor global and so do not run in
// parallel.

func newTestCLI(t *testing.T, dir string) *cli {
	t.Helper()
	c := newCLI()
	c.in = strings.NewReader("")
	c.errOut = io.Discard
	c.loadConfig = func() (*config.Config, error) {
		cfg := config.Default()
		cfg.Storage.Path = dir
		return cfg, nil
	}
	c.now = func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) }
	return c
}

func execute(ctx context.Context, c *cli, args ...string) (string, error) {
	var out bytes.Buffer
	c.out = &out
	root := newRootCmd(c)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func runCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	return execute(context.Background(), newTestCLI(t, dir), args...)
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCmd(t, dir, args...)
	require.NoError(t, err, out)
	return out
}

func TestAddAndList(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, noRecordsText+"\n", mustRun(t, dir, "list"))

	out := mustRun(t, dir, "add", "--date", "2024-01-01", "--physics", "100", "--chemistry", "100", "--biology", "160")
	assert.Contains(t, out, "Saved MOCK-20240101 (2024-01-01): 360/720")
	assert.NotContains(t, out, "Trend:")

	out = mustRun(t, dir, "add", "--date", "2024-01-08", "--name", "Full Mock 2",
		"--physics", "120", "--chemistry", "120", "--biology", "200")
	assert.Contains(t, out, "Saved Full Mock 2 (2024-01-08): 440/720")
	assert.Contains(t, out, "Trend: +80 GAIN")

	out = mustRun(t, dir, "list")
	assert.Contains(t, out, "Full Mock 2")
	assert.Contains(t, out, "MOCK-20240101")
	assert.Contains(t, out, "+80 GAIN")
	assert.Less(t, strings.Index(out, "Full Mock 2"), strings.Index(out, "MOCK-20240101"), "newest first")
}

func TestAddDefaultsAndClamping(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "add", "--physics", "999", "--chemistry", "abc", "--biology", "12.7")
	assert.Contains(t, out, "Saved MOCK-20240315 (2024-03-15): 192/720")

	_, err := runCmd(t, dir, "add", "--date", "15/03/2024")
	assert.ErrorContains(t, err, "invalid date")
}

func savedID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if id, ok := strings.CutPrefix(line, "ID: "); ok {
			return id
		}
	}
	t.Fatalf("no ID in output: %s", out)
	return ""
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	id := savedID(t, mustRun(t, dir, "add", "--date", "2024-01-01", "--physics", "10"))

	c := newTestCLI(t, dir)
	c.in = strings.NewReader("n\n")
	out, err := execute(context.Background(), c, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out = mustRun(t, dir, "delete", "--yes", "missing-id")
	assert.Contains(t, out, "No record with id missing-id.")

	c = newTestCLI(t, dir)
	c.in = strings.NewReader("y\n")
	out, err = execute(context.Background(), c, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted. 0 records remain.")

	assert.Equal(t, noRecordsText+"\n", mustRun(t, dir, "list"))
}

func TestTarget(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "Target: 650/720\n", mustRun(t, dir, "target"))
	assert.Equal(t, "Target set to 700/720\n", mustRun(t, dir, "target", "700"))
	assert.Equal(t, "Target: 700/720\n", mustRun(t, dir, "target"))

	_, err := runCmd(t, dir, "target", "high")
	assert.ErrorContains(t, err, "whole number")

	_, err = runCmd(t, dir, "target", "800")
	assert.ErrorContains(t, err, "target score out of range")
}

func TestSummary(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "summary")
	assert.Contains(t, out, noRecordsText)
	assert.Contains(t, out, "650/720")

	mustRun(t, dir, "add", "--date", "2024-01-01", "--physics", "100", "--chemistry", "100", "--biology", "160")
	mustRun(t, dir, "add", "--date", "2024-01-08", "--physics", "120", "--chemistry", "120", "--biology", "200")

	out = mustRun(t, dir, "summary")
	assert.Contains(t, out, "440/720 (61.1%)")
	assert.Contains(t, out, "+80 GAIN")
	assert.Contains(t, out, "400 over 2 tests")
	assert.Contains(t, out, "650 (210 to go, 67.7%)")
	assert.Contains(t, out, "WEAKEST  Biology")
}

func TestAnalyzeOffline(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "analyze", "--raw")
	assert.Contains(t, out, analysis.InsufficientDataText)
	assert.Contains(t, out, "SELECTION PROBABILITY 0% (critical)")

	mustRun(t, dir, "add", "--date", "2024-01-01", "--physics", "10")
	out = mustRun(t, dir, "analyze", "--raw")
	assert.Contains(t, out, analysis.OfflineText)
}

func TestAnalyzeWithGenerator(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "--date", "2024-01-01", "--physics", "150", "--chemistry", "150", "--biology", "300")

	c := newTestCLI(t, dir)
	load := c.loadConfig
	c.loadConfig = func() (*config.Config, error) {
		cfg, err := load()
		cfg.LLM.GeminiAPIKey = "test-key"
		return cfg, err
	}
	var prompt string
	c.appOptions = []app.Option{app.WithGeneratorFactory(
		func(context.Context, *slog.Logger, config.LLMConfig) (generation.TextGenerator, error) {
			return generation.GeneratorFunc(func(_ context.Context, p string) (string, error) {
				prompt = p
				return "**Hold the line.**\n<PROBABILITY>72</PROBABILITY>", nil
			}), nil
		})}

	out, err := execute(context.Background(), c, "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "Hold the line.")
	assert.NotContains(t, out, "<PROBABILITY>")
	assert.Contains(t, out, "SELECTION PROBABILITY 72% (caution)")
	assert.Contains(t, prompt, "600/720")
}

func TestBackendOverride(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "--backend", "memory", "target", "500")
	assert.Equal(t, "Target: 650/720\n", mustRun(t, dir, "--backend", "memory", "target"),
		"memory storage does not outlive the command")

	_, err := runCmd(t, dir, "--backend", "redis", "list")
	assert.ErrorContains(t, err, "validation failed")
}

func TestTimer(t *testing.T) {
	c := newTestCLI(t, t.TempDir())
	c.newTicker = func(time.Duration) (<-chan time.Time, func()) {
		ch := make(chan time.Time, 3)
		for i := 0; i < 3; i++ {
			ch <- time.Time{}
		}
		close(ch)
		return ch, func() {}
	}

	out, err := execute(context.Background(), c, "timer")
	require.NoError(t, err)
	assert.Contains(t, out, "MOCK SYNC ACTIVE  03:20:00")
	assert.Contains(t, out, "\r03:19:57")
}

func TestTimerCanceled(t *testing.T) {
	c := newTestCLI(t, t.TempDir())
	c.newTicker = func(time.Duration) (<-chan time.Time, func()) {
		return make(chan time.Time), func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := execute(ctx, c, "timer", "--mode", "focus")
	require.NoError(t, err)
	assert.Contains(t, out, "FOCUS SYNC ACTIVE  50:00")
	assert.Contains(t, out, "Stopped with 50:00 remaining.")

	_, err = execute(context.Background(), newTestCLI(t, t.TempDir()), "timer", "--mode", "study")
	assert.ErrorIs(t, err, timer.ErrUnknownMode)
}
