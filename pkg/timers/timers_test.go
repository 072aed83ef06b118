package timers

import (
	"testing"
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)

func TestCountdownCompletesExactlyOnce(t *testing.T) {
	c := NewCountdown(3 * time.Second)
	c.Start(t0)

	fired := 0
	for s := 1; s <= 10; s++ {
		if c.Tick(t0.Add(time.Duration(s) * time.Second)) {
			fired++
			assert.Equal(t, 3, s)
		}
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, StatusFinished, c.Status())
	assert.Zero(t, c.Remaining(t0.Add(time.Hour)))
}

func TestCountdownDelayedTicksDoNotDrift(t *testing.T) {
	c := NewCountdown(time.Minute)
	c.Start(t0)

	assert.False(t, c.Tick(t0.Add(10*time.Second)))
	assert.Equal(t, 50*time.Second, c.Remaining(t0.Add(10*time.Second)))
	// A long gap between ticks still finishes on the next tick.
	assert.True(t, c.Tick(t0.Add(5*time.Minute)))
}

func TestCountdownPauseResume(t *testing.T) {
	c := NewCountdown(time.Minute)
	c.Start(t0)
	c.Pause(t0.Add(20 * time.Second))
	assert.Equal(t, StatusPaused, c.Status())
	assert.Equal(t, 40*time.Second, c.Remaining(t0.Add(time.Hour)))

	c.Start(t0.Add(time.Hour))
	assert.False(t, c.Tick(t0.Add(time.Hour+39*time.Second)))
	assert.True(t, c.Tick(t0.Add(time.Hour+40*time.Second)))

	c.Start(t0.Add(2 * time.Hour))
	assert.Equal(t, time.Minute, c.Remaining(t0.Add(2*time.Hour)))
}

func TestCountdownSetDurationAndReset(t *testing.T) {
	c := NewCountdown(0)
	assert.Equal(t, DefaultCountdown, c.Duration())

	c.SetDuration(90 * time.Second)
	c.Start(t0)
	c.Reset()
	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, 90*time.Second, c.Remaining(t0))
	assert.False(t, c.Tick(t0.Add(time.Hour)))
}

func testPomodoroConfig() models.PomodoroConfig {
	cfg := models.DefaultPomodoroConfig()
	cfg.WorkMinutes, cfg.ShortBreakMinutes, cfg.LongBreakMinutes = 1, 1, 2
	return cfg
}

// runPhase starts the pomodoro at now and ticks at its deadline.
func runPhase(t *testing.T, p *Pomodoro, now time.Time) (Completion, time.Time) {
	t.Helper()
	p.Start(now)
	end := now.Add(p.Remaining(now))
	c, ok := p.Tick(end)
	require.True(t, ok)
	return c, end
}

func TestPomodoroLongBreakAfterFourWorkPhases(t *testing.T) {
	p := NewPomodoro(testPomodoroConfig())
	now := t0

	var phases []models.PomodoroPhase
	for i := 0; i < 8; i++ {
		var c Completion
		c, now = runPhase(t, p, now)
		phases = append(phases, c.Next)
	}

	assert.Equal(t, []models.PomodoroPhase{
		models.PhaseShortBreak, models.PhaseWork,
		models.PhaseShortBreak, models.PhaseWork,
		models.PhaseShortBreak, models.PhaseWork,
		models.PhaseLongBreak, models.PhaseWork,
	}, phases)
	assert.Zero(t, p.CompletedWork())
}

func TestPomodoroPausesAfterCompletion(t *testing.T) {
	p := NewPomodoro(testPomodoroConfig())
	c, end := runPhase(t, p, t0)

	assert.Equal(t, models.PhaseWork, c.Phase)
	assert.False(t, c.AutoResumed)
	assert.Equal(t, StatusIdle, p.Status())
	assert.Equal(t, time.Minute, p.Remaining(end.Add(time.Hour)))

	_, ok := p.Tick(end.Add(time.Hour))
	assert.False(t, ok)
}

func TestPomodoroAutoResumeAfterLongBreak(t *testing.T) {
	cfg := testPomodoroConfig()
	cfg.LongBreakInterval = 1
	cfg.AutoResumeAfterLongBreak = true
	p := NewPomodoro(cfg)

	c, now := runPhase(t, p, t0)
	require.Equal(t, models.PhaseLongBreak, c.Next)

	c, now = runPhase(t, p, now)
	assert.Equal(t, models.PhaseLongBreak, c.Phase)
	assert.True(t, c.AutoResumed)
	assert.Equal(t, StatusRunning, p.Status())
	assert.Equal(t, models.PhaseWork, p.Phase())

	_, ok := p.Tick(now.Add(time.Minute))
	assert.True(t, ok)
}

func TestPomodoroSkipAndApplyConfig(t *testing.T) {
	p := NewPomodoro(testPomodoroConfig())
	p.Skip()
	assert.Equal(t, models.PhaseShortBreak, p.Phase())
	assert.Zero(t, p.CompletedWork())

	p.ApplyConfig(models.PresetConfig(models.PresetDoubled))
	assert.Equal(t, 10*time.Minute, p.Remaining(t0))

	p.Start(t0)
	p.ApplyConfig(models.PresetConfig(models.PresetMicro))
	assert.Equal(t, 10*time.Minute, p.Remaining(t0), "running phase keeps its deadline")
}

func TestStopwatch(t *testing.T) {
	s := NewStopwatch()
	s.Start(t0)

	lap, ok := s.Lap(t0.Add(10 * time.Second))
	require.True(t, ok)
	assert.Equal(t, Lap{Number: 1, Split: 10 * time.Second, Total: 10 * time.Second}, lap)

	s.Pause(t0.Add(15 * time.Second))
	_, ok = s.Lap(t0.Add(20 * time.Second))
	assert.False(t, ok)
	assert.Equal(t, 15*time.Second, s.Elapsed(t0.Add(time.Hour)))

	s.Start(t0.Add(time.Hour))
	lap, ok = s.Lap(t0.Add(time.Hour + 5*time.Second))
	require.True(t, ok)
	assert.Equal(t, Lap{Number: 2, Split: 10 * time.Second, Total: 20 * time.Second}, lap)
	assert.Len(t, s.Laps(), 2)

	s.Reset()
	assert.Zero(t, s.Elapsed(t0))
	assert.Empty(t, s.Laps())
	assert.False(t, s.Running())
}
