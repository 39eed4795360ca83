// Package logger provides structured logging for the server and the CLI.
//
// It builds log/slog JSON loggers with a configurable level and carries a
// request-scoped logger through context.Context.
package logger
