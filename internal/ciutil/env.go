package ciutil

import "os"

// Environment variables read by this package.
const (
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvTravisCI      = "TRAVIS"
	EnvCircleCI      = "CIRCLECI"

	// EnvTestDatabaseURL is the preferred name for the integration database.
	EnvTestDatabaseURL = "PULSE_TEST_DATABASE_URL"
	// EnvDatabaseURL is accepted as a fallback.
	EnvDatabaseURL = "DATABASE_URL"
)

var ciVars = []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvTravisCI, EnvCircleCI}

// IsCI reports whether any common CI provider variable is set.
func IsCI() bool {
	for _, name := range ciVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the first non-empty variable from envVars and
// its name. It returns defaultValue and an empty name when none is set.
func GetEnvWithFallbacks(envVars []string, defaultValue string) (string, string) {
	for _, name := range envVars {
		if val := os.Getenv(name); val != "" {
			return val, name
		}
	}
	return defaultValue, ""
}
