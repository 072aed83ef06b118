package models

import "time"

// PomodoroPreset names a bundle of phase durations.
type PomodoroPreset string

const (
	PresetMicro   PomodoroPreset = "micro"
	PresetClassic PomodoroPreset = "classic"
	PresetMedium  PomodoroPreset = "medium"
	PresetDoubled PomodoroPreset = "doubled"
	PresetCustom  PomodoroPreset = "custom"
)

// PomodoroPhase is one segment of a pomodoro cycle.
type PomodoroPhase string

const (
	PhaseWork       PomodoroPhase = "work"
	PhaseShortBreak PomodoroPhase = "shortBreak"
	PhaseLongBreak  PomodoroPhase = "longBreak"
)

// PomodoroConfig holds the persisted pomodoro configuration
type PomodoroConfig struct {
	Preset            PomodoroPreset `json:"preset"`
	WorkMinutes       int            `json:"work"`
	ShortBreakMinutes int            `json:"shortBreak"`
	LongBreakMinutes  int            `json:"longBreak"`
	LongBreakInterval int            `json:"longBreakInterval"` // work phases per long break
	Sound             SoundKey       `json:"sound"`

	// AutoResumeAfterLongBreak starts the next work phase without user action
	// once a long break completes.
	AutoResumeAfterLongBreak bool `json:"autoResumeAfterLongBreak"`
}

// DefaultPomodoroConfig returns the classic 25/5/15 configuration.
func DefaultPomodoroConfig() PomodoroConfig {
	return PresetConfig(PresetClassic)
}

// PresetConfig returns the configuration for a named preset. Unknown presets
// and PresetCustom fall back to the classic durations.
func PresetConfig(preset PomodoroPreset) PomodoroConfig {
	cfg := PomodoroConfig{
		Preset:            preset,
		WorkMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakInterval: 4,
		Sound:             SoundForest,
	}
	switch preset {
	case PresetMicro:
		cfg.WorkMinutes, cfg.ShortBreakMinutes, cfg.LongBreakMinutes = 15, 3, 10
	case PresetMedium:
		cfg.WorkMinutes, cfg.ShortBreakMinutes, cfg.LongBreakMinutes = 35, 7, 20
	case PresetDoubled:
		cfg.WorkMinutes, cfg.ShortBreakMinutes, cfg.LongBreakMinutes = 50, 10, 30
	case PresetClassic, PresetCustom:
	default:
		cfg.Preset = PresetClassic
	}
	return cfg
}

// Normalize replaces out-of-range values with the classic defaults.
func (c *PomodoroConfig) Normalize() {
	def := DefaultPomodoroConfig()
	if c.Preset == "" {
		c.Preset = PresetCustom
	}
	if c.WorkMinutes < 1 {
		c.WorkMinutes = def.WorkMinutes
	}
	if c.ShortBreakMinutes < 1 {
		c.ShortBreakMinutes = def.ShortBreakMinutes
	}
	if c.LongBreakMinutes < 1 {
		c.LongBreakMinutes = def.LongBreakMinutes
	}
	if c.LongBreakInterval < 1 {
		c.LongBreakInterval = def.LongBreakInterval
	}
	if _, ok := LookupSound(c.Sound); !ok {
		c.Sound = def.Sound
	}
}

// Duration returns the configured length of phase.
func (c PomodoroConfig) Duration(phase PomodoroPhase) time.Duration {
	switch phase {
	case PhaseShortBreak:
		return time.Duration(c.ShortBreakMinutes) * time.Minute
	case PhaseLongBreak:
		return time.Duration(c.LongBreakMinutes) * time.Minute
	default:
		return time.Duration(c.WorkMinutes) * time.Minute
	}
}

// PomodoroStats counts completed phases
type PomodoroStats struct {
	Work       int `json:"work"`
	ShortBreak int `json:"shortBreak"`
	LongBreak  int `json:"longBreak"`
}

// Record increments the counter for phase.
func (s *PomodoroStats) Record(phase PomodoroPhase) {
	switch phase {
	case PhaseWork:
		s.Work++
	case PhaseShortBreak:
		s.ShortBreak++
	case PhaseLongBreak:
		s.LongBreak++
	}
}
