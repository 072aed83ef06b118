// Package notice tracks the single "something is sounding" state shared by
// ringing alarms and finished timers.
package notice

import (
	"errors"
	"sync"
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/borgmon/despertafoco/pkg/notify"
	"github.com/rs/zerolog"
)

// ErrNotRinging is returned by Snooze when no alarm is ringing.
var ErrNotRinging = errors.New("no alarm is ringing")

// AlarmTitle is the notification title for a ringing alarm.
const AlarmTitle = "Alarm"

// Kind distinguishes the notice variants.
type Kind string

const (
	KindAlarmRinging Kind = "alarm"
	KindToolFinished Kind = "tool"
)

// Tool names a timer feature that can finish.
type Tool string

const (
	ToolCountdown Tool = "countdown"
	ToolPomodoro  Tool = "pomodoro"
)

// Title returns the notification title for the tool.
func (t Tool) Title() string {
	switch t {
	case ToolPomodoro:
		return "Pomodoro"
	default:
		return "Timer"
	}
}

// Notice is the active attention request.
type Notice struct {
	Kind    Kind
	AlarmID string // KindAlarmRinging only
	Tool    Tool   // KindToolFinished only
	Title   string
	Body    string
	Sound   models.SoundKey
	Loop    bool
	Since   time.Time
}

// AlarmStore is the part of the alarm store the manager mutates.
type AlarmStore interface {
	Get(id string) (models.Alarm, bool)
	Update(id string, patch models.AlarmPatch) error
}

// Player is the audio contract the manager relies on.
type Player interface {
	Play(key models.SoundKey, loop bool)
	Stop()
}

// Listener is called after every transition with the new notice, or with
// ok=false when the manager went idle.
type Listener func(n Notice, ok bool)

// Manager owns the notice state machine. At most one notice exists at a
// time, and at most one alarm rings.
type Manager struct {
	store    AlarmStore
	audio    Player
	notifier notify.Notifier
	log      zerolog.Logger

	mu        sync.Mutex
	current   *Notice
	listeners []Listener
}

// NewManager creates an idle Manager.
func NewManager(store AlarmStore, audio Player, notifier notify.Notifier, log zerolog.Logger) *Manager {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Manager{
		store:    store,
		audio:    audio,
		notifier: notifier,
		log:      log.With().Str("component", "notice").Logger(),
	}
}

// Subscribe registers fn for transition callbacks.
func (m *Manager) Subscribe(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Current returns the active notice.
func (m *Manager) Current() (Notice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Notice{}, false
	}
	return *m.current, true
}

// RingingAlarmID returns the id of the ringing alarm, or "".
func (m *Manager) RingingAlarmID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ringingLocked()
}

// RingAlarm starts ringing alarm. It supersedes a finished-timer notice or
// another ringing alarm; the superseded alarm's record is left untouched.
func (m *Manager) RingAlarm(alarm models.Alarm, now time.Time) {
	m.mu.Lock()

	if prev := m.ringingLocked(); prev != "" && prev != alarm.ID {
		m.log.Info().Str("alarm", alarm.ID).Str("superseded", prev).Msg("Alarm superseded by another")
	}

	if alarm.SnoozedUntil != nil {
		if err := m.store.Update(alarm.ID, models.AlarmPatch{ClearSnoozedUntil: true}); err != nil {
			m.log.Error().Err(err).Str("alarm", alarm.ID).Msg("Failed to clear snooze deadline")
		}
	}

	n := &Notice{
		Kind:    KindAlarmRinging,
		AlarmID: alarm.ID,
		Title:   AlarmTitle,
		Body:    alarm.DisplayLabel(),
		Sound:   alarm.Sound,
		Loop:    true,
		Since:   now,
	}
	m.current = n
	m.audio.Play(alarm.Sound, true)
	m.log.Info().Str("alarm", alarm.ID).Str("label", n.Body).Msg("Alarm ringing")

	m.mu.Unlock()

	m.notifier.Notify(n.Title, n.Body)
	m.emit()
}

// Finish raises a finished-timer notice for tool and plays sound. While an
// alarm rings the alarm keeps the audio and only a notification is sent.
func (m *Manager) Finish(tool Tool, sound models.SoundKey, loop bool, body string, now time.Time) {
	m.mu.Lock()

	if id := m.ringingLocked(); id != "" {
		m.mu.Unlock()
		m.log.Info().Str("tool", string(tool)).Str("alarm", id).Msg("Timer finished while alarm ringing")
		m.notifier.Notify(tool.Title(), body)
		return
	}

	n := &Notice{
		Kind:  KindToolFinished,
		Tool:  tool,
		Title: tool.Title(),
		Body:  body,
		Sound: sound,
		Loop:  loop,
		Since: now,
	}
	m.current = n
	m.audio.Play(sound, loop)
	m.log.Info().Str("tool", string(tool)).Msg("Timer finished")

	m.mu.Unlock()

	m.notifier.Notify(n.Title, n.Body)
	m.emit()
}

// Stop acknowledges the current notice. A ringing alarm is deactivated and
// its snooze deadline cleared. Stop is a no-op when idle.
func (m *Manager) Stop(now time.Time) {
	m.mu.Lock()

	if m.current == nil {
		m.mu.Unlock()
		return
	}

	m.audio.Stop()
	if m.current.Kind == KindAlarmRinging {
		id := m.current.AlarmID
		err := m.store.Update(id, models.AlarmPatch{
			Active:            ptr(false),
			ClearSnoozedUntil: true,
		})
		if err != nil {
			m.log.Error().Err(err).Str("alarm", id).Msg("Failed to deactivate alarm")
		}
		m.log.Info().Str("alarm", id).Dur("rang", now.Sub(m.current.Since)).Msg("Alarm stopped")
	}
	m.current = nil

	m.mu.Unlock()
	m.emit()
}

// Snooze silences the ringing alarm and re-arms it minutes from now by
// rewriting its time of day. minutes below 1 are treated as 1.
func (m *Manager) Snooze(minutes int, now time.Time) error {
	m.mu.Lock()

	id := m.ringingLocked()
	if id == "" {
		m.mu.Unlock()
		return ErrNotRinging
	}
	if minutes < 1 {
		minutes = 1
	}

	m.audio.Stop()
	fireAt := now.Add(time.Duration(minutes) * time.Minute)
	err := m.store.Update(id, models.AlarmPatch{
		Time:              ptr(models.FormatClock(fireAt)),
		Active:            ptr(true),
		ActivationTime:    ptr(models.TimestampOf(now)),
		ClearSnoozedUntil: true,
	})
	if err != nil {
		m.log.Error().Err(err).Str("alarm", id).Msg("Failed to snooze alarm")
	}
	m.current = nil
	m.log.Info().Str("alarm", id).Int("minutes", minutes).Str("until", models.FormatClock(fireAt)).Msg("Alarm snoozed")

	m.mu.Unlock()
	m.emit()
	return nil
}

// Acknowledge clears a finished-timer notice raised by tool.
func (m *Manager) Acknowledge(tool Tool) {
	m.mu.Lock()
	if m.current == nil || m.current.Kind != KindToolFinished || m.current.Tool != tool {
		m.mu.Unlock()
		return
	}
	m.audio.Stop()
	m.current = nil
	m.mu.Unlock()
	m.emit()
}

// AlarmDeleted ends the notice if the deleted alarm is ringing.
func (m *Manager) AlarmDeleted(id string) {
	m.mu.Lock()
	if m.ringingLocked() != id || id == "" {
		m.mu.Unlock()
		return
	}
	m.audio.Stop()
	m.current = nil
	m.log.Info().Str("alarm", id).Msg("Ringing alarm deleted")
	m.mu.Unlock()
	m.emit()
}

func (m *Manager) ringingLocked() string {
	if m.current != nil && m.current.Kind == KindAlarmRinging {
		return m.current.AlarmID
	}
	return ""
}

func (m *Manager) emit() {
	m.mu.Lock()
	listeners := append([]Listener(nil), m.listeners...)
	var n Notice
	ok := m.current != nil
	if ok {
		n = *m.current
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(n, ok)
	}
}

func ptr[T any](v T) *T { return &v }
