// Package redact removes credentials, connection strings, file paths and
// similar details from strings before they are logged or returned in error
// responses.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; earlier rules see the unmodified input.
var rules = []rule{
	// Stack traces swallow everything after them.
	{regexp.MustCompile(`(?:goroutine \d+ \[|panic:)[\s\S]*`), RedactedStackPlaceholder},

	// Google API keys, as used for Gemini.
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`), RedactedKeyPlaceholder},

	// Database connection strings with user info.
	{regexp.MustCompile(`(?i)\b(?:postgres|postgresql|mysql|sqlite|file)://[^@\s/]+@`), RedactedCredentialPlaceholder},

	// Credentials and tokens in key=value form.
	{regexp.MustCompile(`(?i)(?:password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)(?:api[_-]?key|token|secret|key)\s*[=:]\s*['"]?[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},

	// SQL statements echoed in driver errors.
	{regexp.MustCompile(`\b(?:SELECT|INSERT INTO|UPDATE|DELETE FROM)\b[^;\n]*`), RedactedSQLPlaceholder},

	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},

	// File paths
	{regexp.MustCompile(`(?:/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(?:\\[^\\]+)+`), RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
