package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/neet-pulse/internal/domain"
	"github.com/phrazzld/neet-pulse/internal/generation"
	"github.com/phrazzld/neet-pulse/internal/platform/logger"
)

// Fixed report texts for outcomes that carry no model narrative.
const (
	InsufficientDataText = "DATA VOID. INSUFFICIENT INPUTS FOR TACTICAL ANALYSIS."
	EmptyResponseText    = "SYSTEM ERROR: UNABLE TO GENERATE TACTICAL REPORT."
	OfflineText          = "CONNECTION FAILURE: AI MENTOR OFFLINE."
)

// DefaultTimeout bounds a single analysis, retries included.
const DefaultTimeout = 30 * time.Second

// Insight is the outcome of one analysis.
type Insight struct {
	Text        string `json:"text"`
	Probability int    `json:"probability"`
}

// Band returns the display band of the insight's probability.
func (i Insight) Band() Band {
	return BandFor(i.Probability)
}

// Analyzer produces Insights from test history.
type Analyzer struct {
	generator generation.TextGenerator
	template  *template.Template
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTemplate replaces the built-in prompt template.
func WithTemplate(tmpl *template.Template) Option {
	return func(a *Analyzer) {
		if tmpl != nil {
			a.template = tmpl
		}
	}
}

// WithTimeout sets the per-analysis deadline. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the analyzer's logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer returns an Analyzer calling gen. A nil gen is valid and makes
// every non-empty analysis report the offline fallback.
func NewAnalyzer(gen generation.TextGenerator, opts ...Option) *Analyzer {
	a := &Analyzer{
		generator: gen,
		template:  DefaultTemplate(),
		timeout:   DefaultTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(slog.String("component", "analyzer"))
	return a
}

// Analyze reports on records. The generator is not called when records is
// empty.
func (a *Analyzer) Analyze(ctx context.Context, records []domain.TestRecord) Insight {
	log := logger.FromContextOrDefault(ctx, a.logger)

	if len(records) == 0 {
		return Insight{Text: InsufficientDataText}
	}
	if a.generator == nil {
		log.WarnContext(ctx, "analysis requested without a configured generator")
		return Insight{Text: OfflineText}
	}

	prompt, err := BuildPrompt(a.template, records)
	if err != nil {
		log.ErrorContext(ctx, "failed to build analysis prompt", "error", err)
		return Insight{Text: OfflineText}
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.generator.GenerateText(callCtx, prompt)
	switch {
	case errors.Is(err, generation.ErrInvalidResponse):
		log.WarnContext(ctx, "generator returned an unusable response", "error", err)
		return Insight{Text: EmptyResponseText}
	case err != nil:
		log.ErrorContext(ctx, "analysis generation failed", "error", err)
		return Insight{Text: OfflineText}
	}

	if strings.TrimSpace(raw) == "" {
		return Insight{Text: EmptyResponseText}
	}

	text, probability := ParseProbability(raw)
	log.InfoContext(ctx, "analysis generated",
		"records", len(RecentRecords(records)),
		"probability", probability)
	return Insight{Text: text, Probability: probability}
}
