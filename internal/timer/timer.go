package timer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Mode selects the countdown length.
type Mode string

// Countdown modes.
const (
	ModeMock  Mode = "mock"
	ModeFocus Mode = "focus"
)

// Mode durations.
const (
	MockDuration  = 200 * time.Minute
	FocusDuration = 50 * time.Minute
)

// Status labels.
const (
	ActiveLabel = "SYNC ACTIVE"
	IdleLabel   = "SYSTEM IDLE"
)

// ErrUnknownMode is returned by ParseMode for names other than mock and focus.
var ErrUnknownMode = errors.New("unknown timer mode")

// ParseMode parses a mode name case-insensitively.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case ModeMock:
		return ModeMock, nil
	case ModeFocus:
		return ModeFocus, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Duration returns the full countdown length of the mode. Unknown modes use
// the mock duration.
func (m Mode) Duration() time.Duration {
	if m == ModeFocus {
		return FocusDuration
	}
	return MockDuration
}

// Seconds returns the full countdown length in seconds.
func (m Mode) Seconds() int {
	return int(m.Duration() / time.Second)
}

// Label is the upper-case display name of the mode.
func (m Mode) Label() string {
	return strings.ToUpper(string(m))
}

// State is a snapshot of a Countdown.
type State struct {
	Mode      Mode
	Remaining int
	Active    bool
}

// Status returns the active or idle label.
func (s State) Status() string {
	if s.Active {
		return ActiveLabel
	}
	return IdleLabel
}

// String formats the remaining time.
func (s State) String() string {
	return Format(s.Remaining)
}

// Countdown is a pausable countdown in whole seconds. It is safe for
// concurrent use.
type Countdown struct {
	mu    sync.Mutex
	state State
}

// New returns an idle countdown at the full duration of mode.
func New(mode Mode) *Countdown {
	if mode != ModeFocus {
		mode = ModeMock
	}
	return &Countdown{state: State{Mode: mode, Remaining: mode.Seconds()}}
}

// State returns the current state.
func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle starts or pauses the countdown. A finished countdown stays idle.
func (c *Countdown) Toggle() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Active = !c.state.Active && c.state.Remaining > 0
	return c.state
}

// Reset stops the countdown and restores the full duration of the current
// mode.
func (c *Countdown) Reset() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{Mode: c.state.Mode, Remaining: c.state.Mode.Seconds()}
	return c.state
}

// SwitchMode stops the countdown and restores the full duration of mode.
func (c *Countdown) SwitchMode(mode Mode) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if mode != ModeFocus {
		mode = ModeMock
	}
	c.state = State{Mode: mode, Remaining: mode.Seconds()}
	return c.state
}

// Tick advances an active countdown by one second. Reaching zero makes it
// idle. Ticks on an idle countdown do nothing.
func (c *Countdown) Tick() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Active && c.state.Remaining > 0 {
		c.state.Remaining--
	}
	if c.state.Remaining == 0 {
		c.state.Active = false
	}
	return c.state
}

// Run ticks the countdown once per value received from ticks and reports
// each resulting state to onTick. It returns nil when the countdown reaches
// zero or ticks is closed, and the context error when ctx ends first.
func (c *Countdown) Run(ctx context.Context, ticks <-chan time.Time, onTick func(State)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			state := c.Tick()
			if onTick != nil {
				onTick(state)
			}
			if state.Remaining == 0 {
				return nil
			}
		}
	}
}

// Format renders seconds as HH:MM:SS, or MM:SS when under an hour.
// Negative input is treated as zero.
func Format(seconds int) string {
	seconds = max(seconds, 0)
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	if hrs > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
