package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/phrazzld/neet-pulse/internal/app"
	"github.com/phrazzld/neet-pulse/internal/config"
	"github.com/phrazzld/neet-pulse/internal/platform/logger"
	"github.com/spf13/cobra"
)

// cli carries the I/O streams, injectable collaborators and global flags
// shared by every subcommand.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	loadConfig func() (*config.Config, error)
	appOptions []app.Option
	newTicker  func(time.Duration) (<-chan time.Time, func())
	now        func() time.Time

	backend  string
	path     string
	logLevel string
	noColor  bool
}

func newCLI() *cli {
	return &cli{
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
		loadConfig: config.Load,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
		now: time.Now,
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "pulse",
		Short: "Track NEET practice test scores from the terminal",
		Long: `pulse records practice test scores, shows history and trends against
your target, requests an AI mentor assessment and runs the exam timer.

Configuration comes from config.yaml, a .env file and PULSE_* environment
variables; the flags below override the storage settings.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.noColor {
				color.NoColor = true
			}
		},
	}
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	root.PersistentFlags().StringVar(&c.backend, "backend", "", "storage backend: memory, file, sqlite or postgres")
	root.PersistentFlags().StringVar(&c.path, "path", "", "data directory or sqlite database file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level written to stderr")
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		newAddCmd(c),
		newListCmd(c),
		newDeleteCmd(c),
		newTargetCmd(c),
		newSummaryCmd(c),
		newAnalyzeCmd(c),
		newTimerCmd(c),
	)
	return root
}

// open loads configuration, applies flag overrides and builds the
// application dependencies. The caller must Close the result.
func (c *cli) open(ctx context.Context) (*app.Dependencies, *slog.Logger, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.backend != "" {
		cfg.Storage.Backend = c.backend
	}
	if c.path != "" {
		cfg.Storage.Path = c.path
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	log := logger.SetupWithWriter(c.logLevel, c.errOut)
	ctx = logger.WithLogger(ctx, log)

	deps, err := app.New(ctx, cfg, log, c.appOptions...)
	if err != nil {
		return nil, nil, err
	}
	return deps, log, nil
}

func (c *cli) close(deps *app.Dependencies, log *slog.Logger) {
	if err := deps.Close(); err != nil {
		log.Error("failed to close storage", "error", err)
	}
}
