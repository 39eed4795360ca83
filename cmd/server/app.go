package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/neet-pulse/internal/app"
	"github.com/phrazzld/neet-pulse/internal/config"
)

// application holds the shared dependencies and owns their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	deps   *app.Dependencies
}

func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...app.Option) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	deps, err := app.New(ctx, cfg, log, opts...)
	if err != nil {
		return nil, err
	}

	log.Info("Application initialized successfully")
	return &application{config: cfg, logger: log, deps: deps}, nil
}

// Run serves HTTP on the configured port until ctx ends.
func (a *application) Run(ctx context.Context) error {
	if err := a.startHTTPServer(ctx, a.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (a *application) cleanup() {
	if err := a.deps.Close(); err != nil {
		a.logger.Error("Error closing storage", "error", err)
	}
	a.logger.Info("Application shutdown completed")
}
