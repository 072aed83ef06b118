package store

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Preference keys in the device-local store.
const (
	KeyAlarms         = "alarms"
	KeyTheme          = "theme"
	KeySettings       = "settings"
	KeyPomodoroConfig = "pomodoro_config"
	KeyPomodoroStats  = "pomodoro_stats"
)

// Preferences is the subset of fyne.Preferences the stores need. The fyne
// app's Preferences() value satisfies it directly.
type Preferences interface {
	String(key string) string
	SetString(key string, value string)
}

// MemoryPreferences is an in-process Preferences implementation, used when no
// fyne app is available.
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryPreferences creates an empty MemoryPreferences.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

func (p *MemoryPreferences) String(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.values[key]
}

func (p *MemoryPreferences) SetString(key string, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}

// loadJSON decodes the JSON value stored under key into v. It reports false
// when the key is absent or the value is malformed; malformed values are
// logged and otherwise ignored.
func loadJSON(prefs Preferences, log zerolog.Logger, key string, v any) bool {
	raw := prefs.String(key)
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding malformed stored value")
		return false
	}
	return true
}

// saveJSON encodes v and stores it under key.
func saveJSON(prefs Preferences, log zerolog.Logger, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to encode value")
		return
	}
	prefs.SetString(key, string(data))
}
