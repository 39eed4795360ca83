// Package timer implements the mock-exam and focus-block countdown. The
// Countdown state machine is independent of wall-clock time; Run advances it
// from a tick channel so callers choose the clock.
package timer
