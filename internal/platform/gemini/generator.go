package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/neet-pulse/internal/config"
	"github.com/phrazzld/neet-pulse/internal/generation"
	"google.golang.org/genai"
)

// contentGenerator is the part of *genai.Models the generator calls.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.TextGenerator using the Gemini API.
type Generator struct {
	logger *slog.Logger
	config config.LLMConfig
	models contentGenerator

	// baseDelay is the first backoff interval; it doubles per attempt.
	baseDelay time.Duration
	jitter    func() float64
}

var _ generation.TextGenerator = (*Generator)(nil)

// NewGenerator creates a Generator with a live Gemini client.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	logger = logger.With(slog.String("component", "gemini"))

	cfg, err := validateConfig(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Initialized Gemini generator", "model", cfg.ModelName)
	return newGenerator(logger, cfg, client.Models), nil
}

func newGenerator(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) *Generator {
	return &Generator{
		logger:    logger,
		config:    cfg,
		models:    models,
		baseDelay: time.Duration(cfg.RetryDelaySeconds) * time.Second,
		jitter:    rand.Float64,
	}
}

// GenerateText sends prompt to the configured model, retrying transient
// failures up to MaxRetries times.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", generation.ErrGenerationFailed)
	}

	maxRetries := g.config.MaxRetries
	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		g.logger.InfoContext(ctx, "Making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		text, err := g.call(ctx, prompt)
		if err == nil {
			g.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attemptNum,
				"response_length", len(text))
			return text, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if !generation.IsRetryable(err) {
			g.logger.WarnContext(ctx, "Permanent error occurred, not retrying")
			return "", err
		}
		if attempt >= maxRetries {
			g.logger.WarnContext(ctx, "Maximum retry attempts reached",
				"max_retries", maxRetries)
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		delay := g.backoff(attempt)
		g.logger.InfoContext(ctx, "Retrying after delay",
			"attempt", attemptNum,
			"delay_ms", delay.Milliseconds())

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// backoff returns baseDelay * 2^attempt scaled by a jitter factor in [0.5, 1).
func (g *Generator) backoff(attempt int) time.Duration {
	factor := 0.5 + g.jitter()*0.5
	return time.Duration(float64(g.baseDelay) * math.Pow(2, float64(attempt)) * factor)
}

func (g *Generator) call(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.config.ModelName,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.4)},
	)
	if err != nil {
		return "", classifyError(ctx, err)
	}
	return extractText(resp)
}

// extractText returns the concatenated text parts of the first candidate.
// A candidate with no text yields "" and no error.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}

// classifyError wraps API errors as transient or permanent.
func classifyError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, ctxErr)
	}

	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		code = apiErrPtr.Code
	default:
		// Network-level failure with no HTTP status.
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if code == http.StatusTooManyRequests || code >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d: %v", generation.ErrTransientFailure, code, err)
	}
	return fmt.Errorf("%w: status %d: %v", generation.ErrGenerationFailed, code, err)
}
