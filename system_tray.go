package main

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/borgmon/despertafoco/pkg/core"
	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/borgmon/despertafoco/pkg/notice"
	"github.com/borgmon/despertafoco/pkg/timers"
)

func (df *DespertaFoco) setupSystemTray() {
	if desk, ok := df.app.(desktop.App); ok {
		desk.SetSystemTrayIcon(theme.HistoryIcon())
	}
	df.updateSystemTrayMenu()
}

// updateSystemTrayMenu rebuilds the tray menu when its contents changed.
// Labels use minute granularity so a running timer rebuilds it once a minute.
func (df *DespertaFoco) updateSystemTrayMenu() {
	desk, ok := df.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := df.trayMenuItems(time.Now())
	signature := menuSignature(menuItems)
	if signature == df.traySignature {
		return
	}
	df.traySignature = signature

	desk.SetSystemTrayMenu(fyne.NewMenu("DespertaFoco", menuItems...))
}

func (df *DespertaFoco) trayMenuItems(now time.Time) []*fyne.MenuItem {
	menuItems := []*fyne.MenuItem{}

	// Active notice controls at the top
	if n, ok := df.core.Notice(); ok {
		header := disabledItem(fmt.Sprintf("%s: %s", n.Title, truncateString(n.Body, 35)))
		menuItems = append(menuItems, header, fyne.NewMenuItem("Stop", func() {
			df.core.StopNotice()
		}))
		if n.Kind == notice.KindAlarmRinging {
			snooze := df.core.Settings().SnoozeMinutes
			menuItems = append(menuItems, fyne.NewMenuItem(fmt.Sprintf("Snooze %d min", snooze), func() {
				if err := df.core.SnoozeNotice(0); err != nil {
					df.log.Warn().Err(err).Msg("Snooze from tray failed")
				}
			}))
		}
		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	if alarm, at, ok := df.core.NextAlarm(now); ok {
		menuItems = append(menuItems, disabledItem(fmt.Sprintf("Next: %s - %s",
			formatNextAlarm(now, at), truncateString(alarm.DisplayLabel(), 30))))
	} else {
		menuItems = append(menuItems, disabledItem("No upcoming alarms"))
	}
	menuItems = append(menuItems,
		fyne.NewMenuItem("New Alarm", df.newAlarm),
		fyne.NewMenuItemSeparator(),
		df.pomodoroMenuItem(df.core.Pomodoro()),
		df.countdownMenuItem(df.core.Countdown()),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open DespertaFoco", func() {
			df.showMainWindow("")
		}),
	)

	next := df.core.Theme().Toggle()
	menuItems = append(menuItems, fyne.NewMenuItem(themeMenuLabel(next), func() {
		df.toggleThemeTo(next)
	}))

	menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	menuItems = append(menuItems, fyne.NewMenuItem("Quit", func() {
		df.quit()
	}))

	return menuItems
}

func (df *DespertaFoco) pomodoroMenuItem(state core.PomodoroState) *fyne.MenuItem {
	phase := phaseLabel(state.Phase)
	if state.Status == timers.StatusRunning {
		label := fmt.Sprintf("Pause Pomodoro (%s, %d min left)", phase, minutesLeft(state.Remaining))
		return fyne.NewMenuItem(label, df.afterTrayAction(df.core.PomodoroPause))
	}
	return fyne.NewMenuItem(fmt.Sprintf("Start Pomodoro (%s)", phase), df.afterTrayAction(df.core.PomodoroStart))
}

func (df *DespertaFoco) countdownMenuItem(state core.CountdownState) *fyne.MenuItem {
	if state.Status == timers.StatusRunning {
		label := fmt.Sprintf("Pause Countdown (%d min left)", minutesLeft(state.Remaining))
		return fyne.NewMenuItem(label, df.afterTrayAction(df.core.CountdownPause))
	}
	return fyne.NewMenuItem(fmt.Sprintf("Start Countdown (%s)", formatRemaining(state.Remaining)),
		df.afterTrayAction(df.core.CountdownStart))
}

// afterTrayAction wraps action so the menu reflects its effect immediately.
func (df *DespertaFoco) afterTrayAction(action func()) func() {
	return func() {
		action()
		df.updateSystemTrayMenu()
		if df.mainWindow != nil {
			df.mainWindow.refresh()
		}
	}
}

func themeMenuLabel(t models.Theme) string {
	if t == models.ThemeDark {
		return "Switch to Dark Theme"
	}
	return "Switch to Light Theme"
}

func disabledItem(label string) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, nil)
	item.Disabled = true
	return item
}

func menuSignature(items []*fyne.MenuItem) string {
	var sb strings.Builder
	for _, item := range items {
		if item.IsSeparator {
			sb.WriteString("--\n")
			continue
		}
		sb.WriteString(item.Label)
		if item.Disabled {
			sb.WriteString(" (disabled)")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
