package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/neet-pulse/internal/config"
	"github.com/phrazzld/neet-pulse/internal/generation"
)

// Retry defaults used when the configuration carries out-of-range values.
const (
	defaultMaxRetries        = 0
	defaultRetryDelaySeconds = 2
)

// validateConfig checks the settings the generator cannot run without and
// normalises the retry settings it can fall back on.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (config.LLMConfig, error) {
	if cfg.GeminiAPIKey == "" {
		return cfg, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return cfg, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.MaxRetries < 0 {
		logger.WarnContext(ctx, "Invalid MaxRetries value",
			"value", cfg.MaxRetries,
			"action", "using default value")
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelaySeconds < 0 {
		logger.WarnContext(ctx, "Invalid RetryDelaySeconds value",
			"value", cfg.RetryDelaySeconds,
			"action", "using default value")
		cfg.RetryDelaySeconds = defaultRetryDelaySeconds
	}
	return cfg, nil
}
