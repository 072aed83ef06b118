package main

import (
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
	"github.com/rs/zerolog"
)

func newAutostartApp() (*autostart.App, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve symlinks if any
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	return &autostart.App{
		Name:        "despertafoco",
		DisplayName: "DespertaFoco",
		Exec:        []string{execPath},
	}, nil
}

// setupAutostart makes the OS login entry match enable.
func setupAutostart(enable bool, log zerolog.Logger) error {
	app, err := newAutostartApp()
	if err != nil {
		return err
	}

	switch {
	case enable && !app.IsEnabled():
		if err := app.Enable(); err != nil {
			log.Error().Err(err).Msg("Failed to enable autostart")
			return err
		}
		log.Info().Msg("Autostart enabled")
	case !enable && app.IsEnabled():
		if err := app.Disable(); err != nil {
			log.Error().Err(err).Msg("Failed to disable autostart")
			return err
		}
		log.Info().Msg("Autostart disabled")
	}

	return nil
}
