package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/despertafoco/pkg/timers"
)

func (mw *MainWindow) buildCountdownTab() fyne.CanvasObject {
	mw.countdownRemaining = bigText(64)
	mw.countdownStatus = widget.NewLabel("")
	mw.countdownStatus.Alignment = fyne.TextAlignCenter

	mw.countdownToggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if mw.core.Countdown().Status == timers.StatusRunning {
			mw.core.CountdownPause()
		} else {
			mw.core.CountdownStart()
		}
		mw.refreshCountdown()
	})
	mw.countdownToggle.Importance = widget.HighImportance

	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		mw.core.CountdownReset()
		mw.refreshCountdown()
	})

	duration := mw.core.Countdown().Duration
	mw.countdownMinutes = widget.NewEntry()
	mw.countdownMinutes.SetText(strconv.Itoa(int(duration / time.Minute)))
	mw.countdownSeconds = widget.NewEntry()
	mw.countdownSeconds.SetText(strconv.Itoa(int(duration % time.Minute / time.Second)))

	setButton := widget.NewButton("Set", mw.setCountdownDuration)

	// Quick presets
	presets := container.NewHBox()
	for _, minutes := range []int{1, 3, 5, 10, 15, 30} {
		presets.Add(widget.NewButton(fmt.Sprintf("%dm", minutes), func() {
			mw.core.CountdownSetDuration(time.Duration(minutes) * time.Minute)
			mw.countdownMinutes.SetText(strconv.Itoa(minutes))
			mw.countdownSeconds.SetText("0")
			mw.refreshCountdown()
		}))
	}

	durationRow := container.NewHBox(
		widget.NewLabel("Minutes:"), container.NewGridWrap(fyne.NewSize(70, 36), mw.countdownMinutes),
		widget.NewLabel("Seconds:"), container.NewGridWrap(fyne.NewSize(70, 36), mw.countdownSeconds),
		setButton,
	)

	content := container.NewVBox(
		mw.countdownStatus,
		mw.countdownRemaining,
		container.NewCenter(container.NewHBox(mw.countdownToggle, resetButton)),
		widget.NewSeparator(),
		container.NewCenter(durationRow),
		container.NewCenter(presets),
	)

	return container.NewPadded(container.NewCenter(content))
}

func (mw *MainWindow) setCountdownDuration() {
	minutes, err := strconv.Atoi(strings.TrimSpace(mw.countdownMinutes.Text))
	if err != nil || minutes < 0 {
		dialog.ShowError(fmt.Errorf("minutes must be a whole number"), mw.window)
		return
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(mw.countdownSeconds.Text))
	if err != nil || seconds < 0 || seconds > 59 {
		dialog.ShowError(fmt.Errorf("seconds must be between 0 and 59"), mw.window)
		return
	}
	d := time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if d <= 0 {
		dialog.ShowError(fmt.Errorf("please set at least 1 second"), mw.window)
		return
	}

	mw.core.CountdownSetDuration(d)
	mw.refreshCountdown()
}

func (mw *MainWindow) refreshCountdown() {
	state := mw.core.Countdown()

	setBigText(mw.countdownRemaining, formatRemaining(state.Remaining))
	switch state.Status {
	case timers.StatusRunning:
		mw.countdownStatus.SetText("Running")
	case timers.StatusPaused:
		mw.countdownStatus.SetText("Paused")
	case timers.StatusFinished:
		mw.countdownStatus.SetText("Finished")
	default:
		mw.countdownStatus.SetText(fmt.Sprintf("Ready: %s", formatRemaining(state.Duration)))
	}

	if state.Status == timers.StatusRunning {
		mw.countdownToggle.SetText("Pause")
		mw.countdownToggle.SetIcon(theme.MediaPauseIcon())
	} else {
		mw.countdownToggle.SetText("Start")
		mw.countdownToggle.SetIcon(theme.MediaPlayIcon())
	}
	if state.Status == timers.StatusFinished {
		mw.countdownToggle.Disable()
	} else {
		mw.countdownToggle.Enable()
	}
}

func (mw *MainWindow) buildStopwatchTab() fyne.CanvasObject {
	mw.stopwatchElapsed = bigText(64)

	mw.stopwatchToggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if mw.core.Stopwatch().Running {
			mw.core.StopwatchPause()
		} else {
			mw.core.StopwatchStart()
		}
		mw.refreshStopwatch()
	})
	mw.stopwatchToggle.Importance = widget.HighImportance

	mw.stopwatchLap = widget.NewButtonWithIcon("Lap", theme.ContentAddIcon(), func() {
		if _, ok := mw.core.StopwatchLap(); ok {
			mw.refreshStopwatch()
		}
	})

	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		mw.core.StopwatchReset()
		mw.refreshStopwatch()
	})

	// Newest lap first
	mw.lapList = widget.NewList(
		func() int {
			return len(mw.laps)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			lap := mw.laps[len(mw.laps)-1-i]
			o.(*widget.Label).SetText(fmt.Sprintf("Lap %d    %s    %s",
				lap.Number, formatElapsed(lap.Split), formatElapsed(lap.Total)))
		})

	header := container.NewVBox(
		mw.stopwatchElapsed,
		container.NewCenter(container.NewHBox(mw.stopwatchToggle, mw.stopwatchLap, resetButton)),
		widget.NewSeparator(),
	)

	return container.NewPadded(container.NewBorder(header, nil, nil, nil, mw.lapList))
}

func (mw *MainWindow) refreshStopwatch() {
	state := mw.core.Stopwatch()

	setBigText(mw.stopwatchElapsed, formatElapsed(state.Elapsed))
	if state.Running {
		mw.stopwatchToggle.SetText("Pause")
		mw.stopwatchToggle.SetIcon(theme.MediaPauseIcon())
		mw.stopwatchLap.Enable()
	} else {
		mw.stopwatchToggle.SetText("Start")
		mw.stopwatchToggle.SetIcon(theme.MediaPlayIcon())
		mw.stopwatchLap.Disable()
	}

	if len(state.Laps) != len(mw.laps) {
		mw.laps = state.Laps
		mw.lapList.Refresh()
	}
}
