package store

import (
	"testing"

	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSettingsStoreDefaults(t *testing.T) {
	ss := NewSettingsStore(NewMemoryPreferences(), zerolog.Nop())

	assert.Equal(t, models.DefaultSettings(), ss.LoadSettings())
	assert.Equal(t, models.ThemeLight, ss.LoadTheme())
	assert.Equal(t, models.DefaultPomodoroConfig(), ss.LoadPomodoroConfig())
	assert.Equal(t, models.PomodoroStats{}, ss.LoadPomodoroStats())
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	prefs := NewMemoryPreferences()
	ss := NewSettingsStore(prefs, zerolog.Nop())

	settings := models.DefaultSettings()
	settings.SnoozeMinutes = 9
	settings.Notifications = false
	ss.SaveSettings(settings)
	ss.SaveTheme(models.ThemeDark)
	ss.SavePomodoroConfig(models.PresetConfig(models.PresetDoubled))
	ss.SavePomodoroStats(models.PomodoroStats{Work: 3, ShortBreak: 2})

	reloaded := NewSettingsStore(prefs, zerolog.Nop())
	assert.Equal(t, settings, reloaded.LoadSettings())
	assert.Equal(t, models.ThemeDark, reloaded.LoadTheme())
	assert.Equal(t, 50, reloaded.LoadPomodoroConfig().WorkMinutes)
	assert.Equal(t, models.PomodoroStats{Work: 3, ShortBreak: 2}, reloaded.LoadPomodoroStats())
}

func TestSettingsStoreTheme(t *testing.T) {
	tests := []struct {
		stored   string
		expected models.Theme
	}{
		{`"dark"`, models.ThemeDark},
		{`"light"`, models.ThemeLight},
		{`dark`, models.ThemeDark},
		{`"sepia"`, models.ThemeLight},
		{`{`, models.ThemeLight},
	}
	for _, test := range tests {
		t.Run(test.stored, func(t *testing.T) {
			prefs := NewMemoryPreferences()
			prefs.SetString(KeyTheme, test.stored)
			assert.Equal(t, test.expected, NewSettingsStore(prefs, zerolog.Nop()).LoadTheme())
		})
	}
}

func TestSettingsStoreMalformedFallsBack(t *testing.T) {
	prefs := NewMemoryPreferences()
	prefs.SetString(KeySettings, "[]")
	prefs.SetString(KeyPomodoroConfig, `{"work":0,"shortBreak":-1,"sound":"gong"}`)
	prefs.SetString(KeyPomodoroStats, "nope")

	ss := NewSettingsStore(prefs, zerolog.Nop())
	assert.Equal(t, models.DefaultSettings(), ss.LoadSettings())

	cfg := ss.LoadPomodoroConfig()
	assert.Equal(t, 25, cfg.WorkMinutes)
	assert.Equal(t, 5, cfg.ShortBreakMinutes)
	assert.Equal(t, models.SoundForest, cfg.Sound)
	assert.Equal(t, models.PomodoroStats{}, ss.LoadPomodoroStats())
}
