package timer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/neet-pulse/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"pgregory.net/rapid"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{12000, "03:20:00"},
		{3000, "50:00"},
		{-5, "00:00"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, timer.Format(tc.seconds), "Format(%d)", tc.seconds)
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := timer.ParseMode(" Focus ")
	require.NoError(t, err)
	assert.Equal(t, timer.ModeFocus, m)

	m, err = timer.ParseMode("mock")
	require.NoError(t, err)
	assert.Equal(t, timer.ModeMock, m)

	_, err = timer.ParseMode("study")
	assert.ErrorIs(t, err, timer.ErrUnknownMode)
}

func TestCountdownTransitions(t *testing.T) {
	t.Parallel()

	c := timer.New(timer.ModeMock)
	s := c.State()
	assert.Equal(t, 12000, s.Remaining)
	assert.False(t, s.Active)
	assert.Equal(t, timer.IdleLabel, s.Status())

	// Idle ticks are ignored.
	assert.Equal(t, 12000, c.Tick().Remaining)

	s = c.Toggle()
	assert.True(t, s.Active)
	assert.Equal(t, timer.ActiveLabel, s.Status())
	assert.Equal(t, 11999, c.Tick().Remaining)

	s = c.Toggle()
	assert.False(t, s.Active)
	assert.Equal(t, 11999, c.Tick().Remaining)

	c.Toggle()
	s = c.Reset()
	assert.False(t, s.Active)
	assert.Equal(t, 12000, s.Remaining)

	c.Toggle()
	s = c.SwitchMode(timer.ModeFocus)
	assert.Equal(t, timer.State{Mode: timer.ModeFocus, Remaining: 3000}, s)
	assert.Equal(t, "FOCUS", s.Mode.Label())
	assert.Equal(t, "50:00", s.String())

	s = c.Reset()
	assert.Equal(t, 3000, s.Remaining, "reset keeps the current mode")
}

func TestCountdownStopsAtZero(t *testing.T) {
	t.Parallel()

	c := timer.New(timer.ModeFocus)
	c.Toggle()
	var s timer.State
	for i := 0; i < timer.ModeFocus.Seconds()+10; i++ {
		s = c.Tick()
	}
	assert.Equal(t, 0, s.Remaining)
	assert.False(t, s.Active)
	assert.False(t, c.Toggle().Active, "a finished countdown cannot be started")
}

func TestCountdownNeverNegative(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		c := timer.New(timer.ModeFocus)
		ops := rapid.SliceOf(rapid.IntRange(0, 3)).Draw(t, "ops")
		for _, op := range ops {
			var s timer.State
			switch op {
			case 0:
				s = c.Toggle()
			case 1:
				s = c.Tick()
			case 2:
				s = c.Reset()
			case 3:
				s = c.SwitchMode(timer.ModeMock)
			}
			if s.Remaining < 0 || s.Remaining > timer.ModeMock.Seconds() {
				t.Fatalf("remaining out of range: %d", s.Remaining)
			}
			if s.Remaining == 0 && s.Active {
				t.Fatalf("finished countdown reported active")
			}
		}
	})
}

func TestRunUntilZero(t *testing.T) {
	t.Parallel()

	c := timer.New(timer.ModeFocus)
	c.Toggle()

	ticks := make(chan time.Time)
	done := make(chan error, 1)
	var seen []int
	go func() {
		done <- c.Run(context.Background(), ticks, func(s timer.State) {
			seen = append(seen, s.Remaining)
		})
	}()

	for i := 0; i < timer.ModeFocus.Seconds(); i++ {
		ticks <- time.Time{}
	}
	require.NoError(t, <-done)
	assert.Len(t, seen, timer.ModeFocus.Seconds())
	assert.Equal(t, 0, seen[len(seen)-1])
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	c := timer.New(timer.ModeMock)
	c.Toggle()

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan time.Time)
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, ticks, nil) }()

	ticks <- time.Time{}
	cancel()

	err := <-done
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 11999, c.State().Remaining)
}

func TestRunClosedTicks(t *testing.T) {
	t.Parallel()

	c := timer.New(timer.ModeMock)
	ticks := make(chan time.Time)
	close(ticks)
	assert.NoError(t, c.Run(context.Background(), ticks, nil))
}
