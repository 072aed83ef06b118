package main

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/borgmon/despertafoco/pkg/audio"
	"github.com/borgmon/despertafoco/pkg/clock"
	"github.com/borgmon/despertafoco/pkg/config"
	"github.com/borgmon/despertafoco/pkg/core"
	"github.com/borgmon/despertafoco/pkg/logging"
	"github.com/borgmon/despertafoco/pkg/notice"
	"github.com/borgmon/despertafoco/pkg/notify"
	"github.com/borgmon/despertafoco/pkg/platform"
	"github.com/rs/zerolog"
)

// DespertaFoco is the desktop shell around core.Core. Its fields are only
// touched on the fyne goroutine.
type DespertaFoco struct {
	app  fyne.App
	cfg  *config.Config
	log  zerolog.Logger
	core *core.Core

	mainWindow    *MainWindow
	noticeWindow  *NoticeWindow
	stopHotkey    *StopHotkey
	traySignature string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
	})

	df := &DespertaFoco{
		app: app.NewWithID(cfg.AppID),
		cfg: cfg,
		log: logging.Component(log, "shell"),
	}

	if err := df.initialize(log); err != nil {
		df.log.Fatal().Err(err).Msg("Failed to initialize")
	}

	df.run()
}

func (df *DespertaFoco) initialize(log zerolog.Logger) error {
	assets := audio.NewAssetCache(audio.AssetCacheOptions{
		Dir:     df.cfg.SoundCacheDir,
		Timeout: df.cfg.FetchTimeout,
		Retries: df.cfg.FetchRetries,
	}, log)
	if err := os.MkdirAll(df.cfg.SoundCacheDir, 0o755); err != nil {
		return fmt.Errorf("create sound cache: %w", err)
	}

	realClock := clock.NewReal()
	df.core = core.New(core.Options{
		Clock:    realClock,
		Prefs:    df.app.Preferences(),
		Audio:    audio.NewArbitrator(audio.NewOtoBackend(assets, log), realClock, log),
		Notifier: notify.NewFyne(df.app, log),
		Log:      log,
	})

	// Sync autostart state with settings on startup
	if err := setupAutostart(df.core.Settings().AutoStart, df.log); err != nil {
		df.log.Warn().Err(err).Msg("Failed to setup autostart")
	}

	applyTheme(df.app, df.core.Theme())
	df.app.SetIcon(theme.HistoryIcon())

	df.core.OnNotice(func(n notice.Notice, ok bool) {
		fyne.Do(func() {
			df.handleNotice(n, ok)
		})
	})
	df.core.OnTick(func(now time.Time) {
		fyne.Do(func() {
			df.refresh(now)
		})
	})

	df.setupSystemTray()
	return nil
}

func (df *DespertaFoco) run() {
	df.app.Lifecycle().SetOnStarted(func() {
		platform.SetActivationPolicy()
		df.stopHotkey = startStopHotkey(df.stopActiveNotice, df.log)
		df.core.Start()
	})
	df.app.Lifecycle().SetOnStopped(func() {
		if df.stopHotkey != nil {
			df.stopHotkey.Close()
		}
		df.core.Close()
	})
	df.app.Run()
}

// stopActiveNotice stops whatever notice is showing. With none active it
// does nothing.
func (df *DespertaFoco) stopActiveNotice() {
	if _, ok := df.core.Notice(); ok {
		df.core.StopNotice()
	}
}

// handleNotice opens, replaces or closes the notice window to match the
// core's active notice.
func (df *DespertaFoco) handleNotice(n notice.Notice, ok bool) {
	switch {
	case !ok:
		if df.noticeWindow != nil {
			df.noticeWindow.Dismiss()
			df.noticeWindow = nil
		}
	case df.noticeWindow != nil && df.noticeWindow.Matches(n):
	default:
		if df.noticeWindow != nil {
			df.noticeWindow.Dismiss()
		}
		df.noticeWindow = NewNoticeWindow(df.app, df.core, n, df.core.Settings(), df.log)
		df.noticeWindow.Show()
	}
	df.updateSystemTrayMenu()
}

func (df *DespertaFoco) refresh(time.Time) {
	df.updateSystemTrayMenu()
	if df.mainWindow != nil {
		df.mainWindow.refresh()
	}
}

func (df *DespertaFoco) showMainWindow(tab string) {
	// If the window already exists, just bring it to front
	if df.mainWindow != nil {
		df.mainWindow.selectTab(tab)
		df.mainWindow.window.Show()
		df.mainWindow.window.RequestFocus()
		return
	}

	df.mainWindow = NewMainWindow(df.app, df.core, df.log, df.toggleThemeTo)
	df.mainWindow.window.SetOnClosed(func() {
		df.mainWindow = nil
	})
	df.mainWindow.selectTab(tab)
	df.mainWindow.Show()
}

// newAlarm creates an alarm and opens it in the editor.
func (df *DespertaFoco) newAlarm() {
	alarm := df.core.CreateAlarm()
	df.showMainWindow(tabAlarms)
	df.mainWindow.selectAlarm(alarm.ID)
	df.traySignature = ""
	df.updateSystemTrayMenu()
}

func (df *DespertaFoco) quit() {
	if df.noticeWindow != nil {
		df.noticeWindow.Dismiss()
		df.noticeWindow = nil
	}
	df.core.Close()
	df.app.Quit()
}
