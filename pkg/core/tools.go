package core

import (
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/borgmon/despertafoco/pkg/notice"
	"github.com/borgmon/despertafoco/pkg/timers"
)

// CountdownState is a snapshot of the countdown.
type CountdownState struct {
	Status    timers.Status
	Duration  time.Duration
	Remaining time.Duration
}

// PomodoroState is a snapshot of the pomodoro.
type PomodoroState struct {
	Status        timers.Status
	Phase         models.PomodoroPhase
	Remaining     time.Duration
	CompletedWork int
	Config        models.PomodoroConfig
	Stats         models.PomodoroStats
}

// StopwatchState is a snapshot of the stopwatch.
type StopwatchState struct {
	Running bool
	Elapsed time.Duration
	Laps    []timers.Lap
}

func (c *Core) Countdown() CountdownState {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock.Now()
	return CountdownState{
		Status:    c.countdown.Status(),
		Duration:  c.countdown.Duration(),
		Remaining: c.countdown.Remaining(now),
	}
}

// CountdownSetDuration changes the countdown length and resets it.
func (c *Core) CountdownSetDuration(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.countdown.SetDuration(d)
	c.notices.Acknowledge(notice.ToolCountdown)
}

func (c *Core) CountdownStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices.Acknowledge(notice.ToolCountdown)
	c.countdown.Start(c.clock.Now())
}

func (c *Core) CountdownPause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.countdown.Pause(c.clock.Now())
}

// CountdownReset rewinds the countdown and silences its finished alert.
func (c *Core) CountdownReset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.countdown.Reset()
	c.notices.Acknowledge(notice.ToolCountdown)
}

func (c *Core) Pomodoro() PomodoroState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PomodoroState{
		Status:        c.pomodoro.Status(),
		Phase:         c.pomodoro.Phase(),
		Remaining:     c.pomodoro.Remaining(c.clock.Now()),
		CompletedWork: c.pomodoro.CompletedWork(),
		Config:        c.pomodoro.Config(),
		Stats:         c.stats,
	}
}

func (c *Core) PomodoroStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices.Acknowledge(notice.ToolPomodoro)
	c.pomodoro.Start(c.clock.Now())
}

func (c *Core) PomodoroPause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pomodoro.Pause(c.clock.Now())
}

func (c *Core) PomodoroReset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pomodoro.Reset()
	c.notices.Acknowledge(notice.ToolPomodoro)
}

// PomodoroSkip jumps to the next phase without counting the current one.
func (c *Core) PomodoroSkip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pomodoro.Skip()
	c.notices.Acknowledge(notice.ToolPomodoro)
}

// ApplyPomodoroConfig persists cfg and applies it to the timer.
func (c *Core) ApplyPomodoroConfig(cfg models.PomodoroConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pomodoro.ApplyConfig(cfg)
	c.prefs.SavePomodoroConfig(c.pomodoro.Config())
}

// ResetPomodoroStats zeroes the completed phase counters.
func (c *Core) ResetPomodoroStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = models.PomodoroStats{}
	c.prefs.SavePomodoroStats(c.stats)
}

func (c *Core) Stopwatch() StopwatchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return StopwatchState{
		Running: c.stopwatch.Running(),
		Elapsed: c.stopwatch.Elapsed(c.clock.Now()),
		Laps:    c.stopwatch.Laps(),
	}
}

func (c *Core) StopwatchStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopwatch.Start(c.clock.Now())
}

func (c *Core) StopwatchPause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopwatch.Pause(c.clock.Now())
}

func (c *Core) StopwatchReset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopwatch.Reset()
}

func (c *Core) StopwatchLap() (timers.Lap, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopwatch.Lap(c.clock.Now())
}
