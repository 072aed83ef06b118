package main

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/borgmon/despertafoco/pkg/ui/components"
)

func (mw *MainWindow) buildAlarmsTab() fyne.CanvasObject {
	mw.alarms = mw.core.Alarms()

	var listContainer *fyne.Container
	mw.alarmList, listContainer = components.NewListManager(components.ListManagerConfig{
		Length: func() int {
			return len(mw.alarms)
		},
		RenderItem: func(i int) string {
			return alarmRow(mw.alarms[i])
		},
		OnAdd: func() {
			alarm := mw.core.CreateAlarm()
			mw.refreshAlarms()
			mw.selectAlarm(alarm.ID)
		},
		OnRemove: func(i int) {
			alarm := mw.alarms[i]
			mw.core.DeleteAlarm(alarm.ID)
			mw.log.Info().Str("id", alarm.ID).Msg("Alarm deleted")
			mw.refreshAlarms()
		},
		OnSelect: func(i int) {
			if i < 0 || i >= len(mw.alarms) {
				mw.loadAlarm(nil)
				return
			}
			alarm := mw.alarms[i]
			mw.loadAlarm(&alarm)
		},
		MinHeight: 320,
	})

	mw.nextAlarmLabel = widget.NewLabel("")
	mw.nextAlarmLabel.Importance = widget.MediumImportance

	left := container.NewBorder(mw.nextAlarmLabel, nil, nil, nil, listContainer)
	split := container.NewHSplit(left, mw.buildAlarmEditor())
	split.Offset = 0.45

	return container.NewPadded(split)
}

func (mw *MainWindow) buildAlarmEditor() fyne.CanvasObject {
	mw.alarmTimeEntry = widget.NewEntry()
	mw.alarmTimeEntry.SetPlaceHolder("HH:MM")
	mw.alarmTimeEntry.Validator = func(s string) error {
		_, err := models.ParseClock(strings.TrimSpace(s))
		return err
	}

	mw.alarmLabelEntry = widget.NewEntry()
	mw.alarmLabelEntry.SetPlaceHolder(models.DefaultAlarmLabel)

	mw.alarmSound = widget.NewSelect(mw.alarmSounds.labels, nil)

	mw.alarmActive = widget.NewCheck("Active", func(checked bool) {
		if mw.loadingAlarm || mw.selectedAlarmID == "" {
			return
		}
		if err := mw.core.SetAlarmActive(mw.selectedAlarmID, checked); err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		mw.refreshAlarms()
	})

	previewButton := widget.NewButtonWithIcon("Preview", theme.MediaPlayIcon(), func() {
		if key, ok := mw.alarmSounds.key(mw.alarmSound.Selected); ok {
			mw.core.PreviewSound(key)
		}
	})

	saveButton := widget.NewButtonWithIcon("Save Alarm", theme.DocumentSaveIcon(), mw.saveAlarm)
	saveButton.Importance = widget.HighImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Time:"), mw.alarmTimeEntry,
		widget.NewLabel("Label:"), mw.alarmLabelEntry,
		widget.NewLabel("Sound:"), container.NewBorder(nil, nil, nil, previewButton, mw.alarmSound),
		widget.NewLabel(""), mw.alarmActive,
	)

	help := widget.NewLabel("Alarms ring once at the chosen time and switch themselves off when stopped.")
	help.Wrapping = fyne.TextWrapWord
	help.Importance = widget.LowImportance

	mw.alarmEditor = container.NewVBox(
		widget.NewLabel("Alarm"),
		widget.NewSeparator(),
		form,
		container.NewHBox(layout.NewSpacer(), saveButton),
		help,
	)
	mw.loadAlarm(nil)

	return container.NewPadded(container.NewVScroll(mw.alarmEditor))
}

func alarmRow(alarm models.Alarm) string {
	state := "off"
	if alarm.Active {
		state = "on"
	}
	return fmt.Sprintf("%s  %s  (%s)", alarm.Time, truncateString(alarm.DisplayLabel(), 28), state)
}

// loadAlarm fills the editor with alarm, or clears and disables it for nil.
func (mw *MainWindow) loadAlarm(alarm *models.Alarm) {
	mw.loadingAlarm = true
	defer func() { mw.loadingAlarm = false }()

	if alarm == nil {
		mw.selectedAlarmID = ""
		mw.alarmTimeEntry.SetText("")
		mw.alarmLabelEntry.SetText("")
		mw.alarmSound.ClearSelected()
		mw.alarmActive.SetChecked(false)
		setEnabled(mw.alarmEditor, false)
		return
	}

	mw.selectedAlarmID = alarm.ID
	mw.alarmTimeEntry.SetText(alarm.Time)
	mw.alarmLabelEntry.SetText(alarm.Label)
	mw.alarmSound.SetSelected(mw.alarmSounds.label(alarm.Sound))
	mw.alarmActive.SetChecked(alarm.Active)
	setEnabled(mw.alarmEditor, true)
}

func (mw *MainWindow) saveAlarm() {
	if mw.selectedAlarmID == "" {
		return
	}

	clockText := strings.TrimSpace(mw.alarmTimeEntry.Text)
	clk, err := models.ParseClock(clockText)
	if err != nil {
		dialog.ShowError(fmt.Errorf("time must look like 07:30: %w", err), mw.window)
		return
	}
	clockText = clk.String()
	label := strings.TrimSpace(mw.alarmLabelEntry.Text)

	patch := models.AlarmPatch{Time: &clockText, Label: &label}
	if key, ok := mw.alarmSounds.key(mw.alarmSound.Selected); ok {
		patch.Sound = &key
	}

	if err := mw.core.UpdateAlarm(mw.selectedAlarmID, patch); err != nil {
		dialog.ShowError(err, mw.window)
		return
	}
	mw.log.Info().Str("id", mw.selectedAlarmID).Str("time", clockText).Msg("Alarm saved")
	mw.refreshAlarms()
}

// selectAlarm selects the alarm with id in the list and editor.
func (mw *MainWindow) selectAlarm(id string) {
	mw.refreshAlarms()
	for i, alarm := range mw.alarms {
		if alarm.ID == id {
			mw.alarmList.Select(i)
			return
		}
	}
}

func (mw *MainWindow) refreshAlarms() {
	now := time.Now()
	mw.alarms = mw.core.Alarms()
	mw.alarmList.Refresh()

	if alarm, at, ok := mw.core.NextAlarm(now); ok {
		mw.nextAlarmLabel.SetText(fmt.Sprintf("Next: %s - %s", formatNextAlarm(now, at), alarm.DisplayLabel()))
	} else {
		mw.nextAlarmLabel.SetText("No upcoming alarms")
	}

	if mw.selectedAlarmID == "" {
		return
	}
	// Keep the editor's active box in sync with changes made elsewhere,
	// such as stopping a ringing alarm. Text fields are left alone.
	for _, alarm := range mw.alarms {
		if alarm.ID == mw.selectedAlarmID {
			if mw.alarmActive.Checked != alarm.Active {
				mw.loadingAlarm = true
				mw.alarmActive.SetChecked(alarm.Active)
				mw.loadingAlarm = false
			}
			return
		}
	}
	mw.loadAlarm(nil)
}

// setEnabled enables or disables every input under obj.
func setEnabled(obj fyne.CanvasObject, enabled bool) {
	if obj == nil {
		return
	}
	switch o := obj.(type) {
	case fyne.Disableable:
		if enabled {
			o.Enable()
		} else {
			o.Disable()
		}
	case *fyne.Container:
		for _, child := range o.Objects {
			setEnabled(child, enabled)
		}
	}
}
