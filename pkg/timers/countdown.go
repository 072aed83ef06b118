// Package timers implements the countdown, pomodoro and stopwatch tools.
// Every type here is driven by explicit timestamps and is not safe for
// concurrent use; callers serialize access.
package timers

import "time"

// Status is the run state of a timer.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// DefaultCountdown is the initial countdown length.
const DefaultCountdown = 300 * time.Second

// Countdown counts down to zero once. While running, remaining time is
// derived from a deadline so late ticks do not drift.
type Countdown struct {
	duration  time.Duration
	remaining time.Duration
	deadline  time.Time
	status    Status
}

// NewCountdown creates an idle countdown of d. Non-positive d uses
// DefaultCountdown.
func NewCountdown(d time.Duration) *Countdown {
	c := &Countdown{}
	c.SetDuration(d)
	return c
}

// SetDuration changes the length and resets the countdown.
func (c *Countdown) SetDuration(d time.Duration) {
	if d <= 0 {
		d = DefaultCountdown
	}
	c.duration = d.Truncate(time.Second)
	if c.duration <= 0 {
		c.duration = time.Second
	}
	c.Reset()
}

// Duration returns the configured length.
func (c *Countdown) Duration() time.Duration {
	return c.duration
}

// Status returns the run state.
func (c *Countdown) Status() Status {
	return c.status
}

// Start runs the countdown from its remaining time, or from the full length
// once finished.
func (c *Countdown) Start(now time.Time) {
	if c.status == StatusRunning {
		return
	}
	if c.status == StatusFinished || c.remaining <= 0 {
		c.remaining = c.duration
	}
	c.deadline = now.Add(c.remaining)
	c.status = StatusRunning
}

// Pause freezes the remaining time.
func (c *Countdown) Pause(now time.Time) {
	if c.status != StatusRunning {
		return
	}
	c.remaining = c.Remaining(now)
	c.status = StatusPaused
}

// Reset returns to the full length, idle.
func (c *Countdown) Reset() {
	c.remaining = c.duration
	c.deadline = time.Time{}
	c.status = StatusIdle
}

// Remaining returns the time left at now.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if c.status != StatusRunning {
		return c.remaining
	}
	left := c.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Tick reports true exactly once, on the first tick at or after the deadline.
func (c *Countdown) Tick(now time.Time) bool {
	if c.status != StatusRunning || now.Before(c.deadline) {
		return false
	}
	c.remaining = 0
	c.status = StatusFinished
	return true
}
