package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/despertafoco/pkg/core"
	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/borgmon/despertafoco/pkg/notice"
	"github.com/borgmon/despertafoco/pkg/platform"
	"github.com/borgmon/despertafoco/pkg/ui/components"
	"github.com/rs/zerolog"
)

// NoticeWindow shows the active notice with hold-to-stop and, for alarms,
// hold-to-snooze buttons. It must be created and used on the fyne goroutine.
type NoticeWindow struct {
	window   fyne.Window
	app      fyne.App
	core     *core.Core
	notice   notice.Notice
	settings models.Settings
	log      zerolog.Logger

	stopMonitoring chan struct{}
	stopped        bool
}

func NewNoticeWindow(app fyne.App, c *core.Core, n notice.Notice, settings models.Settings, log zerolog.Logger) *NoticeWindow {
	nw := &NoticeWindow{
		app:            app,
		core:           c,
		notice:         n,
		settings:       settings,
		log:            log.With().Str("notice", string(n.Kind)).Logger(),
		stopMonitoring: make(chan struct{}),
	}

	nw.window = app.NewWindow(n.Title)
	nw.buildUI()

	if nw.isAlarm() {
		// A ringing alarm takes the whole screen and keeps focus
		nw.window.SetFullScreen(true)
		nw.setupFocusMonitoring()
	} else {
		nw.window.Resize(fyne.NewSize(480, 280))
		nw.window.CenterOnScreen()
	}

	nw.window.SetCloseIntercept(func() {
		if nw.isAlarm() {
			nw.log.Info().Msg("Close blocked - use the Stop button to silence the alarm")
			return
		}
		nw.core.StopNotice()
	})
	nw.window.SetOnClosed(nw.shutdown)

	return nw
}

func (nw *NoticeWindow) isAlarm() bool {
	return nw.notice.Kind == notice.KindAlarmRinging
}

// Matches reports whether the window already shows n.
func (nw *NoticeWindow) Matches(n notice.Notice) bool {
	return nw.notice.Kind == n.Kind &&
		nw.notice.AlarmID == n.AlarmID &&
		nw.notice.Tool == n.Tool &&
		nw.notice.Since.Equal(n.Since)
}

func (nw *NoticeWindow) buildUI() {
	title := canvas.NewText(nw.notice.Title, nil)
	title.TextSize = 32
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	body := widget.NewLabel(nw.notice.Body)
	body.Wrapping = fyne.TextWrapWord
	body.Alignment = fyne.TextAlignCenter

	since := widget.NewLabel(fmt.Sprintf("Since %s", nw.notice.Since.Format("15:04")))
	since.Alignment = fyne.TextAlignCenter

	hint := widget.NewLabel(fmt.Sprintf("Press %s to stop", stopHotkeyHint))
	hint.Alignment = fyne.TextAlignCenter
	hint.Importance = widget.LowImportance

	hold := time.Duration(nw.settings.HoldTimeSeconds) * time.Second

	stopButton := components.NewHoldButton(holdText("Stop", nw.settings.HoldTimeSeconds), hold, func() {
		nw.log.Info().Msg("Notice stopped")
		nw.core.StopNotice()
	})

	buttonRow := container.NewHBox()
	if nw.isAlarm() {
		snoozeButton := components.NewHoldButton(
			holdText(fmt.Sprintf("Snooze %dm", nw.settings.SnoozeMinutes), nw.settings.HoldTimeSeconds),
			hold,
			func() {
				if err := nw.core.SnoozeNotice(0); err != nil {
					nw.log.Warn().Err(err).Msg("Snooze failed")
					return
				}
				nw.log.Info().Int("minutes", nw.settings.SnoozeMinutes).Msg("Alarm snoozed")
			},
		)
		buttonRow.Add(snoozeButton)
	}
	buttonRow.Add(stopButton)

	content := container.NewVBox(
		container.NewPadded(title),
		since,
		widget.NewSeparator(),
		container.NewPadded(body),
		widget.NewSeparator(),
		container.NewCenter(buttonRow),
		hint,
	)

	nw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

func holdText(action string, holdSeconds int) string {
	if holdSeconds <= 0 {
		return action
	}
	return fmt.Sprintf("%s (Hold %ds)", action, holdSeconds)
}

func (nw *NoticeWindow) Show() {
	nw.window.Show()
	nw.window.RequestFocus()
}

// Dismiss closes the window without acting on the notice.
func (nw *NoticeWindow) Dismiss() {
	nw.shutdown()
	nw.window.Close()
}

func (nw *NoticeWindow) shutdown() {
	if nw.stopped {
		return
	}
	nw.stopped = true
	close(nw.stopMonitoring)
}

// setupFocusMonitoring brings the app back to the front whenever it loses
// focus while the alarm rings.
func (nw *NoticeWindow) setupFocusMonitoring() {
	stop := nw.stopMonitoring
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				nw.log.Debug().Msg("Stopping focus monitoring")
				return
			case <-ticker.C:
				if platform.IsAppActive() {
					continue
				}
				nw.log.Debug().Msg("Notice window not active - bringing to front")
				platform.ActivateApp()
				fyne.Do(func() {
					select {
					case <-stop:
					default:
						nw.window.Show()
					}
				})
			}
		}
	}()
}
