package core

import (
	"sync"
	"testing"
	"time"

	"github.com/borgmon/despertafoco/pkg/clock"
	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/borgmon/despertafoco/pkg/notice"
	"github.com/borgmon/despertafoco/pkg/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAudio struct {
	mu       sync.Mutex
	playing  models.SoundKey
	loop     bool
	plays    int
	previews []models.SoundKey
}

func (a *fakeAudio) Play(key models.SoundKey, loop bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing, a.loop = key, loop
	a.plays++
}

func (a *fakeAudio) Preview(key models.SoundKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.previews = append(a.previews, key)
}

func (a *fakeAudio) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing, a.loop = "", false
}

func (a *fakeAudio) current() (models.SoundKey, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing, a.loop
}

type fakeNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (n *fakeNotifier) Notify(title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.titles)
}

type harness struct {
	core     *Core
	clock    *clock.Fake
	prefs    *store.MemoryPreferences
	audio    *fakeAudio
	notifier *fakeNotifier
}

func newHarness(t *testing.T, start time.Time) *harness {
	t.Helper()
	h := &harness{
		clock:    clock.NewFake(start),
		prefs:    store.NewMemoryPreferences(),
		audio:    &fakeAudio{},
		notifier: &fakeNotifier{},
	}
	h.core = New(Options{
		Clock:    h.clock,
		Prefs:    h.prefs,
		Audio:    h.audio,
		Notifier: h.notifier,
		Log:      zerolog.Nop(),
	})
	t.Cleanup(h.core.Close)
	return h
}

func (h *harness) alarm(t *testing.T, hhmm string) models.Alarm {
	t.Helper()
	alarm := h.core.CreateAlarm()
	require.NoError(t, h.core.UpdateAlarm(alarm.ID, models.AlarmPatch{Time: &hhmm}))
	require.NoError(t, h.core.SetAlarmActive(alarm.ID, true))
	got, ok := h.core.alarms.Get(alarm.ID)
	require.True(t, ok)
	return got
}

func day(h, m, s int) time.Time {
	return time.Date(2024, 7, 15, h, m, s, 0, time.Local)
}

func TestAlarmFiresFromHeartbeat(t *testing.T) {
	h := newHarness(t, day(6, 59, 30))
	alarm := h.alarm(t, "07:00")
	h.core.Start()

	h.clock.Advance(29 * time.Second)
	_, ok := h.core.Notice()
	assert.False(t, ok)

	h.clock.Advance(2 * time.Second)
	n, ok := h.core.Notice()
	require.True(t, ok)
	assert.Equal(t, alarm.ID, n.AlarmID)

	key, loop := h.audio.current()
	assert.Equal(t, models.SoundClassicSoft, key)
	assert.True(t, loop)
	assert.Equal(t, 1, h.notifier.count())
}

func TestAtMostOneRinging(t *testing.T) {
	h := newHarness(t, day(6, 59, 50))
	first := h.alarm(t, "07:00")
	h.alarm(t, "07:00")
	third := h.alarm(t, "07:01")
	h.core.Start()

	h.clock.Advance(20 * time.Second)
	assert.Equal(t, first.ID, h.core.notices.RingingAlarmID())
	assert.Equal(t, 1, h.audio.plays)

	h.clock.Advance(time.Minute)
	assert.Equal(t, third.ID, h.core.notices.RingingAlarmID())
	assert.Equal(t, 2, h.audio.plays)
}

func TestNoRetroactiveFire(t *testing.T) {
	h := newHarness(t, day(6, 59, 50))
	h.alarm(t, "07:00")

	h.core.Tick(day(6, 59, 50))
	h.core.Tick(day(7, 0, 20))
	h.core.Tick(day(7, 0, 21))

	_, ok := h.core.Notice()
	assert.False(t, ok)
}

func TestStopDeactivates(t *testing.T) {
	h := newHarness(t, day(7, 0, 0))
	alarm := h.alarm(t, "07:00")
	h.core.Tick(day(7, 0, 0))

	h.core.StopNotice()
	h.core.StopNotice()

	_, ok := h.core.Notice()
	assert.False(t, ok)
	key, _ := h.audio.current()
	assert.Empty(t, key)

	got, _ := h.core.alarms.Get(alarm.ID)
	assert.False(t, got.Active)
	assert.Equal(t, "07:00", got.Time)
}

func TestDeactivatingRingingAlarmSilencesIt(t *testing.T) {
	h := newHarness(t, day(7, 0, 0))
	alarm := h.alarm(t, "07:00")
	other := h.alarm(t, "08:00")
	h.core.Tick(day(7, 0, 0))
	_, ok := h.core.Notice()
	require.True(t, ok)

	// Toggling a different alarm leaves the ringing one alone.
	require.NoError(t, h.core.SetAlarmActive(other.ID, false))
	n, ok := h.core.Notice()
	require.True(t, ok)
	assert.Equal(t, alarm.ID, n.AlarmID)

	require.NoError(t, h.core.SetAlarmActive(alarm.ID, false))

	_, ok = h.core.Notice()
	assert.False(t, ok)
	key, _ := h.audio.current()
	assert.Empty(t, key)

	got, _ := h.core.alarms.Get(alarm.ID)
	assert.False(t, got.Active)
	assert.Nil(t, got.ActivationTime)
}

func TestSnoozeRefiresLater(t *testing.T) {
	h := newHarness(t, day(6, 59, 59))
	alarm := h.alarm(t, "07:00")
	h.core.Start()

	h.clock.Advance(2 * time.Second)
	require.Equal(t, alarm.ID, h.core.notices.RingingAlarmID())

	require.NoError(t, h.core.SnoozeNotice(10))
	got, _ := h.core.alarms.Get(alarm.ID)
	assert.Equal(t, "07:10", got.Time)
	assert.True(t, got.Active)

	h.clock.Advance(9*time.Minute + 58*time.Second)
	_, ok := h.core.Notice()
	assert.False(t, ok)

	h.clock.Advance(2 * time.Second)
	assert.Equal(t, alarm.ID, h.core.notices.RingingAlarmID())
}

func TestSnoozeDefaultsToSettings(t *testing.T) {
	h := newHarness(t, day(7, 0, 0))
	settings := h.core.Settings()
	settings.SnoozeMinutes = 7
	h.core.SaveSettings(settings)

	alarm := h.alarm(t, "07:00")
	h.core.Tick(day(7, 0, 0))
	require.NoError(t, h.core.SnoozeNotice(0))

	got, _ := h.core.alarms.Get(alarm.ID)
	assert.Equal(t, "07:07", got.Time)
}

func TestSnoozedUntilDeadlineFires(t *testing.T) {
	h := newHarness(t, day(9, 0, 0))
	alarm := h.alarm(t, "06:00")
	deadline := models.TimestampOf(day(9, 3, 12))
	require.NoError(t, h.core.UpdateAlarm(alarm.ID, models.AlarmPatch{SnoozedUntil: &deadline}))

	h.core.Tick(day(9, 3, 12))
	assert.Equal(t, alarm.ID, h.core.notices.RingingAlarmID())

	got, _ := h.core.alarms.Get(alarm.ID)
	assert.Nil(t, got.SnoozedUntil)
}

func TestDeleteWhileRinging(t *testing.T) {
	h := newHarness(t, day(7, 0, 0))
	alarm := h.alarm(t, "07:00")
	h.core.Tick(day(7, 0, 0))
	require.Equal(t, alarm.ID, h.core.notices.RingingAlarmID())

	h.core.DeleteAlarm(alarm.ID)

	_, ok := h.core.Notice()
	assert.False(t, ok)
	key, _ := h.audio.current()
	assert.Empty(t, key)
	assert.Empty(t, h.core.Alarms())
}

func TestActivationTime(t *testing.T) {
	h := newHarness(t, day(12, 0, 0))
	alarm := h.alarm(t, "13:00")
	require.NotNil(t, alarm.ActivationTime)
	assert.Equal(t, models.TimestampOf(day(12, 0, 0)), *alarm.ActivationTime)

	require.NoError(t, h.core.SetAlarmActive(alarm.ID, false))
	got, _ := h.core.alarms.Get(alarm.ID)
	assert.Nil(t, got.ActivationTime)

	assert.NoError(t, h.core.SetAlarmActive("missing", true))
}

func TestNextAlarm(t *testing.T) {
	h := newHarness(t, day(8, 0, 0))
	h.alarm(t, "07:30")
	soon := h.alarm(t, "09:15")
	off := h.core.CreateAlarm()
	hhmm := "08:30"
	require.NoError(t, h.core.UpdateAlarm(off.ID, models.AlarmPatch{Time: &hhmm}))

	next, at, ok := h.core.NextAlarm(day(8, 0, 10))
	require.True(t, ok)
	assert.Equal(t, soon.ID, next.ID)
	assert.Equal(t, day(9, 15, 0), at)

	next, at, ok = h.core.NextAlarm(day(9, 15, 1))
	require.True(t, ok)
	assert.Equal(t, "07:30", next.Time)
	assert.Equal(t, day(7, 30, 0).AddDate(0, 0, 1), at)
}

func TestCountdownFinishes(t *testing.T) {
	h := newHarness(t, day(10, 0, 0))
	h.core.CountdownSetDuration(5 * time.Second)
	h.core.CountdownStart()
	h.core.Start()

	h.clock.Advance(10 * time.Second)

	n, ok := h.core.Notice()
	require.True(t, ok)
	assert.Equal(t, notice.KindToolFinished, n.Kind)
	assert.Equal(t, notice.ToolCountdown, n.Tool)
	key, loop := h.audio.current()
	assert.Equal(t, models.SoundTimerBeep, key)
	assert.True(t, loop)
	assert.Equal(t, 1, h.audio.plays)

	h.core.CountdownReset()
	_, ok = h.core.Notice()
	assert.False(t, ok)
	assert.Equal(t, 5*time.Second, h.core.Countdown().Remaining)
}

func TestPomodoroRecordsStats(t *testing.T) {
	h := newHarness(t, day(10, 0, 0))
	cfg := models.DefaultPomodoroConfig()
	cfg.Preset = models.PresetCustom
	cfg.WorkMinutes = 1
	h.core.ApplyPomodoroConfig(cfg)
	h.core.PomodoroStart()
	h.core.Start()

	h.clock.Advance(61 * time.Second)

	state := h.core.Pomodoro()
	assert.Equal(t, models.PhaseShortBreak, state.Phase)
	assert.Equal(t, 1, state.Stats.Work)

	n, ok := h.core.Notice()
	require.True(t, ok)
	assert.Equal(t, notice.ToolPomodoro, n.Tool)
	assert.False(t, n.Loop)

	reloaded := store.NewSettingsStore(h.prefs, zerolog.Nop())
	assert.Equal(t, 1, reloaded.LoadPomodoroStats().Work)
	assert.Equal(t, 1, reloaded.LoadPomodoroConfig().WorkMinutes)
}

func TestNotificationsGate(t *testing.T) {
	h := newHarness(t, day(7, 0, 0))
	settings := h.core.Settings()
	settings.Notifications = false
	h.core.SaveSettings(settings)

	h.alarm(t, "07:00")
	h.core.Tick(day(7, 0, 0))

	_, ok := h.core.Notice()
	assert.True(t, ok)
	assert.Zero(t, h.notifier.count())
}

func TestOnNoticeListener(t *testing.T) {
	h := newHarness(t, day(7, 0, 0))
	got := make(chan bool, 4)
	h.core.OnNotice(func(n notice.Notice, ok bool) {
		// Listeners may call back into Core.
		_ = h.core.Alarms()
		got <- ok
	})

	h.alarm(t, "07:00")
	h.core.Tick(day(7, 0, 0))
	h.core.StopNotice()

	for _, want := range []bool{true, false} {
		select {
		case ok := <-got:
			assert.Equal(t, want, ok)
		case <-time.After(time.Second):
			t.Fatal("listener not called")
		}
	}
}

func TestPreviewAndTheme(t *testing.T) {
	h := newHarness(t, day(7, 0, 0))
	h.core.PreviewSound(models.SoundZen)
	assert.Equal(t, []models.SoundKey{models.SoundZen}, h.audio.previews)

	assert.Equal(t, models.ThemeLight, h.core.Theme())
	h.core.SetTheme(models.ThemeDark)
	h.core.SetTheme("sepia")
	assert.Equal(t, models.ThemeDark, h.core.Theme())
	assert.Equal(t, models.ThemeDark, store.NewSettingsStore(h.prefs, zerolog.Nop()).LoadTheme())
}

func TestPersistenceAcrossRestart(t *testing.T) {
	h := newHarness(t, day(7, 0, 0))
	h.alarm(t, "06:15")
	h.alarm(t, "06:45")

	restarted := New(Options{Clock: h.clock, Prefs: h.prefs, Audio: h.audio, Log: zerolog.Nop()})
	defer restarted.Close()
	assert.Equal(t, h.core.Alarms(), restarted.Alarms())
}

func TestStopwatchPassthrough(t *testing.T) {
	h := newHarness(t, day(7, 0, 0))
	h.core.StopwatchStart()
	h.clock.Advance(3 * time.Second)
	lap, ok := h.core.StopwatchLap()
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, lap.Total)

	h.core.StopwatchPause()
	h.clock.Advance(time.Minute)
	assert.Equal(t, 3*time.Second, h.core.Stopwatch().Elapsed)

	h.core.StopwatchReset()
	assert.Empty(t, h.core.Stopwatch().Laps)
}
