package store

import (
	"encoding/json"
	"strings"

	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/rs/zerolog"
)

// SettingsStore handles persistence of user settings, the theme and the
// pomodoro configuration and statistics.
type SettingsStore struct {
	prefs Preferences
	log   zerolog.Logger
}

// NewSettingsStore creates a new SettingsStore instance
func NewSettingsStore(prefs Preferences, log zerolog.Logger) *SettingsStore {
	return &SettingsStore{
		prefs: prefs,
		log:   log.With().Str("component", "settings_store").Logger(),
	}
}

// LoadSettings loads settings, falling back to defaults for anything absent
// or out of range.
func (ss *SettingsStore) LoadSettings() models.Settings {
	settings := models.DefaultSettings()
	if !loadJSON(ss.prefs, ss.log, KeySettings, &settings) {
		return models.DefaultSettings()
	}
	settings.Normalize()
	return settings
}

// SaveSettings saves settings to preferences
func (ss *SettingsStore) SaveSettings(settings models.Settings) {
	settings.Normalize()
	saveJSON(ss.prefs, ss.log, KeySettings, settings)
}

// LoadTheme loads the theme. Both the JSON string form and the legacy raw
// form are accepted.
func (ss *SettingsStore) LoadTheme() models.Theme {
	raw := strings.TrimSpace(ss.prefs.String(KeyTheme))
	if raw == "" {
		return models.ThemeLight
	}

	var theme models.Theme
	if err := json.Unmarshal([]byte(raw), &theme); err != nil {
		theme = models.Theme(raw)
	}
	if !theme.Valid() {
		ss.log.Warn().Str("theme", raw).Msg("Ignoring unknown theme")
		return models.ThemeLight
	}
	return theme
}

// SaveTheme saves the theme as a JSON string
func (ss *SettingsStore) SaveTheme(theme models.Theme) {
	if !theme.Valid() {
		theme = models.ThemeLight
	}
	saveJSON(ss.prefs, ss.log, KeyTheme, theme)
}

// LoadPomodoroConfig loads the pomodoro configuration
func (ss *SettingsStore) LoadPomodoroConfig() models.PomodoroConfig {
	cfg := models.DefaultPomodoroConfig()
	if !loadJSON(ss.prefs, ss.log, KeyPomodoroConfig, &cfg) {
		return models.DefaultPomodoroConfig()
	}
	cfg.Normalize()
	return cfg
}

// SavePomodoroConfig saves the pomodoro configuration
func (ss *SettingsStore) SavePomodoroConfig(cfg models.PomodoroConfig) {
	cfg.Normalize()
	saveJSON(ss.prefs, ss.log, KeyPomodoroConfig, cfg)
}

// LoadPomodoroStats loads the completed phase counters
func (ss *SettingsStore) LoadPomodoroStats() models.PomodoroStats {
	var stats models.PomodoroStats
	if !loadJSON(ss.prefs, ss.log, KeyPomodoroStats, &stats) {
		return models.PomodoroStats{}
	}
	return stats
}

// SavePomodoroStats saves the completed phase counters
func (ss *SettingsStore) SavePomodoroStats(stats models.PomodoroStats) {
	saveJSON(ss.prefs, ss.log, KeyPomodoroStats, stats)
}
