package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/despertafoco/pkg/models"
)

var (
	snoozeOptions    = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 15, 20, 30, 45, 60}
	countdownOptions = []int{1, 3, 5, 10, 15, 20, 30, 45, 60}
)

const savedMessage = "Settings saved successfully"

func (mw *MainWindow) buildSettingsTab() fyne.CanvasObject {
	mw.snoozeTimeSelect = widget.NewSelect(minuteLabels(snoozeOptions), func(string) {
		mw.markChanged()
	})
	mw.snoozeTimeSelect.SetSelected(minuteLabel(mw.settings.SnoozeMinutes))

	holdOptions := []string{"0 sec (instant)"}
	for i := 1; i <= 10; i++ {
		holdOptions = append(holdOptions, strconv.Itoa(i)+" sec")
	}
	mw.holdTimeSelect = widget.NewSelect(holdOptions, func(string) {
		mw.markChanged()
	})
	mw.holdTimeSelect.SetSelected(holdLabel(mw.settings.HoldTimeSeconds))

	mw.notificationsCheck = widget.NewCheck("Show system notifications", func(bool) {
		mw.markChanged()
	})
	mw.notificationsCheck.SetChecked(mw.settings.Notifications)

	mw.autoStartCheck = widget.NewCheck("Auto Start on System Boot", func(bool) {
		mw.markChanged()
	})
	mw.autoStartCheck.SetChecked(mw.settings.AutoStart)

	mw.countdownSound = widget.NewSelect(mw.alertSounds.labels, func(string) {
		mw.markChanged()
	})
	mw.countdownSound.SetSelected(mw.alertSounds.label(mw.settings.CountdownSound))
	previewButton := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		if key, ok := mw.alertSounds.key(mw.countdownSound.Selected); ok {
			mw.core.PreviewSound(key)
		}
	})

	mw.countdownDefault = widget.NewSelect(minuteLabels(countdownOptions), func(string) {
		mw.markChanged()
	})
	mw.countdownDefault.SetSelected(minuteLabel(mw.settings.CountdownSeconds / 60))

	themeSelect := widget.NewRadioGroup([]string{"Light", "Dark"}, func(value string) {
		t := models.ThemeLight
		if value == "Dark" {
			t = models.ThemeDark
		}
		if t != mw.core.Theme() && mw.onTheme != nil {
			mw.onTheme(t)
		}
	})
	themeSelect.Horizontal = true
	if mw.core.Theme() == models.ThemeDark {
		themeSelect.SetSelected("Dark")
	} else {
		themeSelect.SetSelected("Light")
	}

	// Storage root URI display (read-only)
	storageURIEntry := widget.NewEntry()
	storageURIEntry.SetText(mw.app.Storage().RootURI().String())
	storageURIEntry.Disable()

	openStorageButton := widget.NewButton("Open in File Manager", mw.openStorage)

	form := container.New(layout.NewFormLayout(),
		helpLabel("Snooze:", "How long a snoozed alarm waits before ringing again"),
		mw.snoozeTimeSelect,

		helpLabel("Hold Time:", "How long Stop and Snooze must be held"),
		mw.holdTimeSelect,

		widget.NewLabel("Notifications:"),
		mw.notificationsCheck,

		helpLabel("Countdown:", "Default length and the sound played when it ends"),
		container.NewVBox(mw.countdownDefault, container.NewBorder(nil, nil, nil, previewButton, mw.countdownSound)),

		helpLabel("Auto Start:", "Launch DespertaFoco automatically when your system starts"),
		mw.autoStartCheck,

		widget.NewLabel("Theme:"),
		themeSelect,

		helpLabel("Storage Location:", "Alarms and settings are stored here"),
		container.NewBorder(nil, container.NewPadded(openStorageButton), nil, nil, storageURIEntry),
	)

	mw.saveStatusLabel = widget.NewLabel("")
	mw.saveStatusLabel.Importance = widget.SuccessImportance

	mw.saveButton = widget.NewButton("Save", mw.saveSettings)
	mw.saveButton.Importance = widget.HighImportance
	mw.saveButton.Disable() // Initially disabled until changes are made
	mw.hasUnsavedChanges = false

	content := container.NewVBox(
		widget.NewLabel("General Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewBorder(
		nil,
		container.NewPadded(container.NewHBox(mw.saveButton, mw.saveStatusLabel)),
		nil,
		nil,
		container.NewPadded(container.NewVScroll(content)),
	)
}

func helpLabel(label, help string) fyne.CanvasObject {
	helpText := widget.NewLabel(help)
	helpText.Wrapping = fyne.TextWrapWord
	helpText.Importance = widget.MediumImportance
	return container.NewVBox(widget.NewLabel(label), helpText)
}

func minuteLabel(minutes int) string {
	return strconv.Itoa(minutes) + " min"
}

func minuteLabels(values []int) []string {
	labels := make([]string, 0, len(values))
	for _, v := range values {
		labels = append(labels, minuteLabel(v))
	}
	return labels
}

func holdLabel(seconds int) string {
	if seconds <= 0 {
		return "0 sec (instant)"
	}
	return strconv.Itoa(seconds) + " sec"
}

// parseLeadingInt reads the number at the start of a select label such as
// "5 min", falling back to def.
func parseLeadingInt(s string, def int) int {
	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return def
	}
	return val
}

func (mw *MainWindow) getSettingsFromUI() models.Settings {
	settings := mw.settings
	settings.SnoozeMinutes = parseLeadingInt(mw.snoozeTimeSelect.Selected, settings.SnoozeMinutes)
	settings.HoldTimeSeconds = parseLeadingInt(mw.holdTimeSelect.Selected, settings.HoldTimeSeconds)
	settings.Notifications = mw.notificationsCheck.Checked
	settings.AutoStart = mw.autoStartCheck.Checked
	if key, ok := mw.alertSounds.key(mw.countdownSound.Selected); ok {
		settings.CountdownSound = key
	}
	if mw.countdownDefault.Selected != "" {
		settings.CountdownSeconds = parseLeadingInt(mw.countdownDefault.Selected, settings.CountdownSeconds/60) * 60
	}
	return settings
}

func (mw *MainWindow) saveSettings() {
	mw.saveButton.Disable()
	mw.saveStatusLabel.SetText("Saving...")
	mw.saveStatusLabel.Importance = widget.MediumImportance
	mw.saveStatusLabel.Refresh()

	newSettings := mw.getSettingsFromUI()
	go func() {
		if err := setupAutostart(newSettings.AutoStart, mw.log); err != nil {
			fyne.Do(func() {
				mw.saveStatusLabel.SetText("Error: Failed to set autostart")
				mw.saveStatusLabel.Importance = widget.DangerImportance
				mw.saveStatusLabel.Refresh()
				mw.updateSaveButtonState()
			})
			return
		}

		saved := mw.core.SaveSettings(newSettings)

		fyne.Do(func() {
			mw.settings = saved
			mw.hasUnsavedChanges = false
			mw.saveStatusLabel.SetText(savedMessage)
			mw.saveStatusLabel.Importance = widget.SuccessImportance
			mw.saveStatusLabel.Refresh()
			mw.updateSaveButtonState()
			mw.refreshCountdown()
		})

		// Clear success message after 3 seconds
		time.Sleep(3 * time.Second)
		fyne.Do(func() {
			if mw.saveStatusLabel.Text == savedMessage {
				mw.saveStatusLabel.SetText("")
			}
		})
	}()
}

func (mw *MainWindow) openStorage() {
	path := mw.app.Storage().RootURI().Path()
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		mw.log.Warn().Str("os", runtime.GOOS).Msg("Unsupported OS for file manager")
		return
	}

	if err := cmd.Start(); err != nil {
		mw.log.Error().Err(err).Msg("Error opening file manager")
	}
}

// markChanged marks the settings as having unsaved changes
func (mw *MainWindow) markChanged() {
	mw.hasUnsavedChanges = true
	mw.updateSaveButtonState()
}

// updateSaveButtonState enables or disables the save button based on changes
func (mw *MainWindow) updateSaveButtonState() {
	if mw.saveButton == nil {
		return
	}
	if mw.hasUnsavedChanges {
		mw.saveButton.Enable()
	} else {
		mw.saveButton.Disable()
	}
}

// hasActualChanges checks if the current UI state differs from the saved settings
func (mw *MainWindow) hasActualChanges() bool {
	return mw.getSettingsFromUI() != mw.settings
}
