// Package app assembles the storage backend, record service and analyzer
// from configuration. Both the HTTP server and the terminal client start
// from here.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/neet-pulse/internal/analysis"
	"github.com/phrazzld/neet-pulse/internal/config"
	"github.com/phrazzld/neet-pulse/internal/events"
	"github.com/phrazzld/neet-pulse/internal/generation"
	"github.com/phrazzld/neet-pulse/internal/platform/backend"
	"github.com/phrazzld/neet-pulse/internal/platform/gemini"
	"github.com/phrazzld/neet-pulse/internal/service"
	"github.com/phrazzld/neet-pulse/internal/store"
)

// GeneratorFactory creates the text generator used for analysis.
type GeneratorFactory func(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (generation.TextGenerator, error)

// Dependencies holds the long-lived application components.
type Dependencies struct {
	Backend  store.Backend
	Records  service.RecordService
	Analyzer *analysis.Analyzer
	// Events receives a change event after every successful write. An
	// audit handler that logs each change is registered by default.
	Events *events.InMemoryEmitter

	// AnalysisEnabled is false when no API key is configured.
	AnalysisEnabled bool
}

// Option configures New.
type Option func(*options)

type options struct {
	newGenerator GeneratorFactory
}

// WithGeneratorFactory replaces the Gemini generator factory.
func WithGeneratorFactory(fn GeneratorFactory) Option {
	return func(o *options) {
		if fn != nil {
			o.newGenerator = fn
		}
	}
}

func newGeminiGenerator(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (generation.TextGenerator, error) {
	return gemini.NewGenerator(ctx, log, cfg)
}

// New opens the configured backend and builds the services on top of it.
// The caller must Close the result.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...Option) (*Dependencies, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	o := options{newGenerator: newGeminiGenerator}
	for _, opt := range opts {
		opt(&o)
	}

	kv, err := backend.Open(ctx, cfg.Storage, log.With(slog.String("component", "storage")))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	log.Info("storage opened", "backend", cfg.Storage.Backend)

	emitter := events.NewInMemoryEmitter(log)
	emitter.RegisterHandler(events.NewAuditHandler(log))

	records, err := service.NewRecordService(kv, log, service.WithEmitter(emitter))
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to create record service: %w", err)
	}

	analyzer, enabled, err := newAnalyzer(ctx, cfg.LLM, log, o.newGenerator)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	return &Dependencies{
		Backend:         kv,
		Records:         records,
		Analyzer:        analyzer,
		Events:          emitter,
		AnalysisEnabled: enabled,
	}, nil
}

func newAnalyzer(
	ctx context.Context,
	cfg config.LLMConfig,
	log *slog.Logger,
	factory GeneratorFactory,
) (*analysis.Analyzer, bool, error) {
	tmpl, err := analysis.LoadTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load prompt template: %w", err)
	}
	opts := []analysis.Option{
		analysis.WithTemplate(tmpl),
		analysis.WithTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second),
		analysis.WithLogger(log),
	}

	if !cfg.Enabled() {
		log.Warn("no Gemini API key configured; analysis will report offline")
		return analysis.NewAnalyzer(nil, opts...), false, nil
	}

	gen, err := factory(ctx, log.With(slog.String("component", "llm_generator")), cfg)
	if err != nil {
		return nil, false, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	log.Info("LLM generator initialized", "model", cfg.ModelName)
	return analysis.NewAnalyzer(gen, opts...), true, nil
}

// Close releases the storage backend.
func (d *Dependencies) Close() error {
	if d == nil || d.Backend == nil {
		return nil
	}
	return d.Backend.Close()
}
