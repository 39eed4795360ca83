// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, .env and config files). It
// provides type-safe access to settings needed by the server and the CLI
// while keeping configuration details separate from business logic.
package config
