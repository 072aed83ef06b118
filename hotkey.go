package main

import (
	"github.com/rs/zerolog"
	"golang.design/x/hotkey"
)

// stopHotkeyHint names the global shortcut that stops the active notice.
const stopHotkeyHint = "Ctrl+Shift+S"

// StopHotkey owns the global stop shortcut for the whole app lifetime, so
// notice windows replacing one another never race for the grab.
type StopHotkey struct {
	log  zerolog.Logger
	quit chan struct{}
	done chan struct{}
}

// startStopHotkey registers Ctrl+Shift+S and calls onPress for every press
// until Close.
func startStopHotkey(onPress func(), log zerolog.Logger) *StopHotkey {
	sh := &StopHotkey{
		log:  log.With().Str("component", "hotkey").Logger(),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(sh.done)

		hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyS)
		if err := hk.Register(); err != nil {
			sh.log.Warn().Err(err).Msg("Failed to register stop hotkey")
			return
		}
		defer func() {
			if err := hk.Unregister(); err != nil {
				sh.log.Debug().Err(err).Msg("Failed to unregister stop hotkey")
			}
		}()

		sh.log.Info().Str("keys", stopHotkeyHint).Msg("Stop hotkey registered")
		listenStopHotkey(hk.Keydown(), sh.quit, func() {
			sh.log.Info().Msg("Stop hotkey pressed")
			onPress()
		})
	}()

	return sh
}

// listenStopHotkey forwards key presses to onPress until quit closes or the
// key channel is closed.
func listenStopHotkey(keydown <-chan hotkey.Event, quit <-chan struct{}, onPress func()) {
	for {
		select {
		case <-quit:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			onPress()
		}
	}
}

// Close unregisters the shortcut and waits for the listener to exit.
func (sh *StopHotkey) Close() {
	select {
	case <-sh.quit:
	default:
		close(sh.quit)
	}
	<-sh.done
}
