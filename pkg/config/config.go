// Package config loads process-level settings from the environment. User
// preferences live in the device-local preference store instead.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. DESPERTAFOCO_LOG_LEVEL.
const Prefix = "DESPERTAFOCO"

// Config holds the process configuration
type Config struct {
	AppID string `envconfig:"APP_ID" default:"io.github.borgmon.despertafoco"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	// SoundCacheDir stores downloaded sound assets. Empty resolves to the
	// user cache directory.
	SoundCacheDir string        `envconfig:"SOUND_CACHE_DIR" default:""`
	FetchTimeout  time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	FetchRetries  int           `envconfig:"FETCH_RETRIES" default:"2"`
}

// Load reads the configuration from the environment and resolves defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults validates values and derives the ones left empty.
func (c *Config) ResolveDefaults() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT: %s", c.LogFormat)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.FetchRetries < 0 {
		c.FetchRetries = 0
	}
	if c.SoundCacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		c.SoundCacheDir = filepath.Join(base, "despertafoco", "sounds")
	}
	return nil
}
