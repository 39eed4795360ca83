// Package gemini implements generation.TextGenerator on Google's Gemini API.
//
// Calls are retried with exponential backoff and jitter when the failure is
// transient (rate limits, server errors, network errors). Safety blocks,
// client errors and malformed responses are returned immediately.
package gemini
