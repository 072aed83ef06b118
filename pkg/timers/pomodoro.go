package timers

import (
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
)

// Completion describes a finished pomodoro phase.
type Completion struct {
	Phase models.PomodoroPhase
	Next  models.PomodoroPhase
	// AutoResumed is set when the next phase started without user action.
	AutoResumed bool
}

// Pomodoro cycles between work and break phases.
type Pomodoro struct {
	cfg           models.PomodoroConfig
	phase         models.PomodoroPhase
	completedWork int
	remaining     time.Duration
	deadline      time.Time
	status        Status
}

// NewPomodoro creates an idle pomodoro at the start of a work phase.
func NewPomodoro(cfg models.PomodoroConfig) *Pomodoro {
	cfg.Normalize()
	p := &Pomodoro{cfg: cfg, phase: models.PhaseWork}
	p.remaining = cfg.Duration(p.phase)
	p.status = StatusIdle
	return p
}

// Config returns the active configuration.
func (p *Pomodoro) Config() models.PomodoroConfig {
	return p.cfg
}

// Phase returns the current phase.
func (p *Pomodoro) Phase() models.PomodoroPhase {
	return p.phase
}

// Status returns the run state.
func (p *Pomodoro) Status() Status {
	return p.status
}

// CompletedWork returns the work phases completed in this cycle.
func (p *Pomodoro) CompletedWork() int {
	return p.completedWork
}

// ApplyConfig replaces the configuration. A timer that is not running is
// reset to the new length of its phase.
func (p *Pomodoro) ApplyConfig(cfg models.PomodoroConfig) {
	cfg.Normalize()
	p.cfg = cfg
	if p.status != StatusRunning {
		p.remaining = cfg.Duration(p.phase)
		p.status = StatusIdle
	}
}

func (p *Pomodoro) Start(now time.Time) {
	if p.status == StatusRunning {
		return
	}
	if p.remaining <= 0 {
		p.remaining = p.cfg.Duration(p.phase)
	}
	p.deadline = now.Add(p.remaining)
	p.status = StatusRunning
}

func (p *Pomodoro) Pause(now time.Time) {
	if p.status != StatusRunning {
		return
	}
	p.remaining = p.Remaining(now)
	p.status = StatusPaused
}

// Reset restarts the current phase, idle.
func (p *Pomodoro) Reset() {
	p.remaining = p.cfg.Duration(p.phase)
	p.deadline = time.Time{}
	p.status = StatusIdle
}

// Skip moves to the next phase without counting the current one.
func (p *Pomodoro) Skip() {
	p.phase = p.nextPhase(p.phase, p.completedWork)
	p.Reset()
}

func (p *Pomodoro) Remaining(now time.Time) time.Duration {
	if p.status != StatusRunning {
		return p.remaining
	}
	left := p.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Tick advances the phase once its deadline has passed. The returned
// completion is reported exactly once per phase.
func (p *Pomodoro) Tick(now time.Time) (Completion, bool) {
	if p.status != StatusRunning || now.Before(p.deadline) {
		return Completion{}, false
	}

	done := p.phase
	if done == models.PhaseWork {
		p.completedWork++
	}
	next := p.nextPhase(done, p.completedWork)
	if done == models.PhaseLongBreak {
		p.completedWork = 0
	}

	p.phase = next
	p.remaining = p.cfg.Duration(next)
	completion := Completion{Phase: done, Next: next}

	if done == models.PhaseLongBreak && p.cfg.AutoResumeAfterLongBreak {
		p.deadline = now.Add(p.remaining)
		p.status = StatusRunning
		completion.AutoResumed = true
	} else {
		p.status = StatusIdle
	}
	return completion, true
}

func (p *Pomodoro) nextPhase(phase models.PomodoroPhase, completedWork int) models.PomodoroPhase {
	if phase != models.PhaseWork {
		return models.PhaseWork
	}
	if completedWork > 0 && completedWork%p.cfg.LongBreakInterval == 0 {
		return models.PhaseLongBreak
	}
	return models.PhaseShortBreak
}
