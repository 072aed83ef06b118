package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/despertafoco/pkg/core"
	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/borgmon/despertafoco/pkg/timers"
	"github.com/borgmon/despertafoco/pkg/ui/components"
	"github.com/rs/zerolog"
)

const (
	tabAlarms    = "Alarms"
	tabPomodoro  = "Pomodoro"
	tabCountdown = "Countdown"
	tabStopwatch = "Stopwatch"
	tabSettings  = "Settings"
)

type MainWindow struct {
	window  fyne.Window
	app     fyne.App
	core    *core.Core
	log     zerolog.Logger
	tabs    *container.AppTabs
	onTheme func(models.Theme)

	// Alarms tab
	alarms          []models.Alarm
	alarmList       *components.ListManager
	selectedAlarmID string
	loadingAlarm    bool
	alarmTimeEntry  *widget.Entry
	alarmLabelEntry *widget.Entry
	alarmSound      *widget.Select
	alarmActive     *widget.Check
	alarmEditor     *fyne.Container
	nextAlarmLabel  *widget.Label
	alarmSounds     soundChoices

	// Pomodoro tab
	pomodoroPhase     *widget.Label
	pomodoroRemaining *canvas.Text
	pomodoroToggle    *widget.Button
	pomodoroStats     *widget.Label
	presetSelect      *widget.Select
	workEntry         *widget.Entry
	shortBreakEntry   *widget.Entry
	longBreakEntry    *widget.Entry
	intervalEntry     *widget.Entry
	pomodoroSound     *widget.Select
	autoResumeCheck   *widget.Check

	// Countdown tab
	countdownRemaining *canvas.Text
	countdownStatus    *widget.Label
	countdownToggle    *widget.Button
	countdownMinutes   *widget.Entry
	countdownSeconds   *widget.Entry

	// Stopwatch tab
	stopwatchElapsed *canvas.Text
	stopwatchToggle  *widget.Button
	stopwatchLap     *widget.Button
	laps             []timers.Lap
	lapList          *widget.List

	// Settings tab
	settings           models.Settings
	snoozeTimeSelect   *widget.Select
	holdTimeSelect     *widget.Select
	notificationsCheck *widget.Check
	autoStartCheck     *widget.Check
	countdownSound     *widget.Select
	countdownDefault   *widget.Select
	alertSounds        soundChoices
	hasUnsavedChanges  bool
	saveStatusLabel    *widget.Label
	saveButton         *widget.Button
}

func NewMainWindow(app fyne.App, c *core.Core, log zerolog.Logger, onTheme func(models.Theme)) *MainWindow {
	mw := &MainWindow{
		app:         app,
		core:        c,
		log:         log,
		onTheme:     onTheme,
		settings:    c.Settings(),
		alarmSounds: newSoundChoices(models.SoundUseWake),
		alertSounds: newSoundChoices(models.SoundUseAlert),
	}

	mw.window = app.NewWindow("DespertaFoco")
	mw.buildUI()

	return mw
}

func (mw *MainWindow) buildUI() {
	mw.tabs = container.NewAppTabs(
		container.NewTabItem(tabAlarms, mw.buildAlarmsTab()),
		container.NewTabItem(tabPomodoro, mw.buildPomodoroTab()),
		container.NewTabItem(tabCountdown, mw.buildCountdownTab()),
		container.NewTabItem(tabStopwatch, mw.buildStopwatchTab()),
		container.NewTabItem(tabSettings, mw.buildSettingsTab()),
	)

	mw.window.SetContent(mw.tabs)
	mw.window.Resize(fyne.NewSize(760, 560))
	mw.window.CenterOnScreen()

	mw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			mw.handleClose()
		}
	})

	// Add close interceptor for unsaved settings
	mw.window.SetCloseIntercept(func() {
		mw.handleClose()
	})

	mw.refresh()
}

func (mw *MainWindow) Show() {
	mw.window.Show()
}

func (mw *MainWindow) selectTab(name string) {
	if name == "" {
		return
	}
	for _, item := range mw.tabs.Items {
		if item.Text == name {
			mw.tabs.Select(item)
			return
		}
	}
}

// refresh pulls the latest state from the core into every tab.
func (mw *MainWindow) refresh() {
	mw.refreshAlarms()
	mw.refreshPomodoro()
	mw.refreshCountdown()
	mw.refreshStopwatch()
}

// handleClose handles window close with unsaved changes check
func (mw *MainWindow) handleClose() {
	if mw.hasActualChanges() {
		dialog.ShowConfirm("Unsaved Changes",
			"You have unsaved settings. Are you sure you want to close?",
			func(confirmed bool) {
				if confirmed {
					mw.window.Close()
				}
			}, mw.window)
		return
	}
	mw.window.Close()
}

func bigText(size float32) *canvas.Text {
	text := canvas.NewText("00:00", nil)
	text.TextSize = size
	text.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	text.Alignment = fyne.TextAlignCenter
	return text
}

func setBigText(text *canvas.Text, value string) {
	if text.Text == value {
		return
	}
	text.Text = value
	text.Refresh()
}
