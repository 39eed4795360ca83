package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "PULSE"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory is loaded first when present; it never
// overrides variables that are already set.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Config file: explicit path wins, otherwise look for config.yaml in cwd
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks a Config against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              DefaultServerPort,
			LogLevel:          "info",
			AnalysisPerMinute: 6,
			AnalysisBurst:     2,
		},
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    "./data",
		},
		LLM: LLMConfig{
			ModelName:         DefaultModelName,
			MaxRetries:        0,
			RetryDelaySeconds: 2,
			TimeoutSeconds:    30,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.log_level", d.Server.LogLevel)
	v.SetDefault("server.analysis_per_minute", d.Server.AnalysisPerMinute)
	v.SetDefault("server.analysis_burst", d.Server.AnalysisBurst)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.database_url", "")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", d.LLM.ModelName)
	v.SetDefault("llm.max_retries", d.LLM.MaxRetries)
	v.SetDefault("llm.retry_delay_seconds", d.LLM.RetryDelaySeconds)
	v.SetDefault("llm.timeout_seconds", d.LLM.TimeoutSeconds)
	v.SetDefault("llm.prompt_template_path", "")
}
