package config

// Storage backend names accepted by StorageConfig.Backend.
const (
	BackendMemory     = "memory"
	BackendFile       = "file"
	BackendSQLite     = "sqlite"
	BackendPostgres   = "postgres"
	DefaultModelName  = "gemini-2.0-flash"
	DefaultServerPort = 8080
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// AnalysisPerMinute limits POST /api/analysis; 0 disables the limit.
	AnalysisPerMinute int `mapstructure:"analysis_per_minute" validate:"gte=0"`
	AnalysisBurst     int `mapstructure:"analysis_burst" validate:"gte=1"`
}

// StorageConfig selects and configures the key-value backend that holds
// the test records and the target score.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory file sqlite postgres"`
	// Path is the data directory for the file backend and the database
	// file for sqlite.
	Path        string `mapstructure:"path" validate:"required"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Backend postgres"`
}

// LLMConfig contains all LLM integration related settings.
// An empty GeminiAPIKey disables analysis; requests then get the offline
// fallback text.
type LLMConfig struct {
	GeminiAPIKey       string `mapstructure:"gemini_api_key"`
	ModelName          string `mapstructure:"model_name" validate:"required"`
	MaxRetries         int    `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	RetryDelaySeconds  int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds" validate:"gt=0"`
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}

// Enabled reports whether an API key is configured.
func (c LLMConfig) Enabled() bool {
	return c.GeminiAPIKey != ""
}
