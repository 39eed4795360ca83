package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"testing"

	"github.com/phrazzld/neet-pulse/internal/platform/logger"
	"github.com/phrazzld/neet-pulse/internal/redact"
)

// ciOptions are appended to a CI database URL that carries no query.
const ciOptions = "sslmode=disable"

// TestDatabaseURL returns the integration database URL, or "" when none is
// configured. In CI a postgres URL without connection options gets
// sslmode=disable.
func TestDatabaseURL(log *slog.Logger) string {
	if log == nil {
		log = slog.Default()
	}
	dbURL, name := GetEnvWithFallbacks([]string{EnvTestDatabaseURL, EnvDatabaseURL}, "")
	if dbURL == "" {
		log.Debug("no test database configured", "var", EnvTestDatabaseURL)
		return ""
	}
	if name != EnvTestDatabaseURL {
		log.Warn("using fallback database variable",
			"used_var", name,
			"preferred_var", EnvTestDatabaseURL)
	}

	if IsCI() {
		standardized, err := standardizeURL(dbURL)
		if err != nil {
			log.Error("failed to standardize database URL",
				"error", err,
				"url", redact.String(dbURL))
			return dbURL
		}
		dbURL = standardized
	}
	return dbURL
}

func standardizeURL(dbURL string) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return dbURL, nil
	}
	if parsed.RawQuery == "" {
		parsed.RawQuery = ciOptions
	}
	return parsed.String(), nil
}

// RequireTestDatabase returns the integration database URL or skips t.
func RequireTestDatabase(t testing.TB) string {
	t.Helper()
	dbURL := TestDatabaseURL(logger.Discard())
	if dbURL == "" {
		t.Skipf("%s not set", EnvTestDatabaseURL)
	}
	return dbURL
}
