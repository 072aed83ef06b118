package models

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Settings holds general user preferences
type Settings struct {
	SnoozeMinutes    int      `json:"snooze_minutes"`
	HoldTimeSeconds  int      `json:"hold_time_seconds"`
	Notifications    bool     `json:"notifications"`
	AutoStart        bool     `json:"auto_start"`
	CountdownSound   SoundKey `json:"countdown_sound"`
	CountdownSeconds int      `json:"countdown_seconds"`
}

// DefaultSettings returns the settings used when nothing valid is stored.
func DefaultSettings() Settings {
	return Settings{
		SnoozeMinutes:    5,
		HoldTimeSeconds:  2,
		Notifications:    true,
		AutoStart:        false,
		CountdownSound:   SoundTimerBeep,
		CountdownSeconds: 300,
	}
}

// Normalize replaces out-of-range values with defaults.
func (s *Settings) Normalize() {
	def := DefaultSettings()
	if s.SnoozeMinutes < 1 || s.SnoozeMinutes > 60 {
		s.SnoozeMinutes = def.SnoozeMinutes
	}
	if s.HoldTimeSeconds < 0 || s.HoldTimeSeconds > 30 {
		s.HoldTimeSeconds = def.HoldTimeSeconds
	}
	if _, ok := LookupSound(s.CountdownSound); !ok {
		s.CountdownSound = def.CountdownSound
	}
	if s.CountdownSeconds < 1 {
		s.CountdownSeconds = def.CountdownSeconds
	}
}
