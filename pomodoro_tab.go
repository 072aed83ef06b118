package main

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/borgmon/despertafoco/pkg/timers"
)

var presetNames = map[models.PomodoroPreset]string{
	models.PresetMicro:   "Micro (15/3/10)",
	models.PresetClassic: "Classic (25/5/15)",
	models.PresetMedium:  "Medium (35/7/20)",
	models.PresetDoubled: "Doubled (50/10/30)",
	models.PresetCustom:  "Custom",
}

var presetOrder = []models.PomodoroPreset{
	models.PresetMicro,
	models.PresetClassic,
	models.PresetMedium,
	models.PresetDoubled,
	models.PresetCustom,
}

func presetFromLabel(label string) models.PomodoroPreset {
	for preset, name := range presetNames {
		if name == label {
			return preset
		}
	}
	return models.PresetCustom
}

func (mw *MainWindow) buildPomodoroTab() fyne.CanvasObject {
	mw.pomodoroPhase = widget.NewLabel("")
	mw.pomodoroPhase.Alignment = fyne.TextAlignCenter
	mw.pomodoroPhase.TextStyle = fyne.TextStyle{Bold: true}

	mw.pomodoroRemaining = bigText(56)

	mw.pomodoroToggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if mw.core.Pomodoro().Status == timers.StatusRunning {
			mw.core.PomodoroPause()
		} else {
			mw.core.PomodoroStart()
		}
		mw.refreshPomodoro()
	})
	mw.pomodoroToggle.Importance = widget.HighImportance

	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		mw.core.PomodoroReset()
		mw.refreshPomodoro()
	})
	skipButton := widget.NewButtonWithIcon("Skip", theme.MediaSkipNextIcon(), func() {
		mw.core.PomodoroSkip()
		mw.refreshPomodoro()
	})

	mw.pomodoroStats = widget.NewLabel("")
	mw.pomodoroStats.Alignment = fyne.TextAlignCenter
	resetStats := widget.NewButton("Reset Stats", func() {
		dialog.ShowConfirm("Reset Stats", "Clear all completed session counts?", func(confirmed bool) {
			if confirmed {
				mw.core.ResetPomodoroStats()
				mw.refreshPomodoro()
			}
		}, mw.window)
	})

	timerPane := container.NewVBox(
		mw.pomodoroPhase,
		mw.pomodoroRemaining,
		container.NewCenter(container.NewHBox(mw.pomodoroToggle, resetButton, skipButton)),
		widget.NewSeparator(),
		mw.pomodoroStats,
		container.NewCenter(resetStats),
	)

	return container.NewPadded(container.NewVScroll(container.NewVBox(
		timerPane,
		widget.NewSeparator(),
		mw.buildPomodoroConfig(),
	)))
}

func (mw *MainWindow) buildPomodoroConfig() fyne.CanvasObject {
	cfg := mw.core.Pomodoro().Config

	presetLabels := make([]string, 0, len(presetOrder))
	for _, preset := range presetOrder {
		presetLabels = append(presetLabels, presetNames[preset])
	}

	mw.workEntry = minutesEntry(cfg.WorkMinutes)
	mw.shortBreakEntry = minutesEntry(cfg.ShortBreakMinutes)
	mw.longBreakEntry = minutesEntry(cfg.LongBreakMinutes)
	mw.intervalEntry = minutesEntry(cfg.LongBreakInterval)

	mw.presetSelect = widget.NewSelect(presetLabels, func(label string) {
		preset := presetFromLabel(label)
		custom := preset == models.PresetCustom
		for _, entry := range []*widget.Entry{mw.workEntry, mw.shortBreakEntry, mw.longBreakEntry} {
			if custom {
				entry.Enable()
			} else {
				entry.Disable()
			}
		}
		if !custom {
			p := models.PresetConfig(preset)
			mw.workEntry.SetText(strconv.Itoa(p.WorkMinutes))
			mw.shortBreakEntry.SetText(strconv.Itoa(p.ShortBreakMinutes))
			mw.longBreakEntry.SetText(strconv.Itoa(p.LongBreakMinutes))
		}
	})
	mw.presetSelect.SetSelected(presetNames[cfg.Preset])

	mw.pomodoroSound = widget.NewSelect(mw.alarmSounds.labels, nil)
	mw.pomodoroSound.SetSelected(mw.alarmSounds.label(cfg.Sound))
	previewButton := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		if key, ok := mw.alarmSounds.key(mw.pomodoroSound.Selected); ok {
			mw.core.PreviewSound(key)
		}
	})

	mw.autoResumeCheck = widget.NewCheck("Start focusing again after a long break", nil)
	mw.autoResumeCheck.SetChecked(cfg.AutoResumeAfterLongBreak)

	applyButton := widget.NewButton("Apply", mw.applyPomodoroConfig)
	applyButton.Importance = widget.HighImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Preset:"), mw.presetSelect,
		widget.NewLabel("Focus (min):"), mw.workEntry,
		widget.NewLabel("Short break (min):"), mw.shortBreakEntry,
		widget.NewLabel("Long break (min):"), mw.longBreakEntry,
		widget.NewLabel("Long break every:"), mw.intervalEntry,
		widget.NewLabel("Sound:"), container.NewBorder(nil, nil, nil, previewButton, mw.pomodoroSound),
		widget.NewLabel(""), mw.autoResumeCheck,
	)

	return container.NewVBox(
		widget.NewLabel("Pomodoro Settings"),
		form,
		container.NewHBox(layout.NewSpacer(), applyButton),
	)
}

func minutesEntry(value int) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText(strconv.Itoa(value))
	entry.Validator = func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 {
			return fmt.Errorf("enter a whole number of at least 1")
		}
		return nil
	}
	return entry
}

func (mw *MainWindow) applyPomodoroConfig() {
	var values [4]int
	for i, entry := range []*widget.Entry{mw.workEntry, mw.shortBreakEntry, mw.longBreakEntry, mw.intervalEntry} {
		if err := entry.Validate(); err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		values[i], _ = strconv.Atoi(strings.TrimSpace(entry.Text))
	}

	cfg := models.PomodoroConfig{
		Preset:                   presetFromLabel(mw.presetSelect.Selected),
		WorkMinutes:              values[0],
		ShortBreakMinutes:        values[1],
		LongBreakMinutes:         values[2],
		LongBreakInterval:        values[3],
		AutoResumeAfterLongBreak: mw.autoResumeCheck.Checked,
	}
	if key, ok := mw.alarmSounds.key(mw.pomodoroSound.Selected); ok {
		cfg.Sound = key
	}

	mw.core.ApplyPomodoroConfig(cfg)
	mw.log.Info().Interface("config", mw.core.Pomodoro().Config).Msg("Pomodoro settings applied")
	mw.refreshPomodoro()
}

func (mw *MainWindow) refreshPomodoro() {
	state := mw.core.Pomodoro()

	phase := phaseLabel(state.Phase)
	if state.Status == timers.StatusPaused {
		phase += " (paused)"
	}
	mw.pomodoroPhase.SetText(phase)
	setBigText(mw.pomodoroRemaining, formatRemaining(state.Remaining))

	if state.Status == timers.StatusRunning {
		mw.pomodoroToggle.SetText("Pause")
		mw.pomodoroToggle.SetIcon(theme.MediaPauseIcon())
	} else {
		mw.pomodoroToggle.SetText("Start")
		mw.pomodoroToggle.SetIcon(theme.MediaPlayIcon())
	}

	mw.pomodoroStats.SetText(fmt.Sprintf("Completed: %d focus, %d short breaks, %d long breaks  |  %d/%d until long break",
		state.Stats.Work, state.Stats.ShortBreak, state.Stats.LongBreak,
		state.CompletedWork, state.Config.LongBreakInterval))
}
