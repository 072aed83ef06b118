// Package core wires the alarm store, scheduler, notice state machine, audio
// and timer tools together. All ticks and user actions go through Core, which
// serializes them.
package core

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/borgmon/despertafoco/pkg/clock"
	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/borgmon/despertafoco/pkg/notice"
	"github.com/borgmon/despertafoco/pkg/notify"
	"github.com/borgmon/despertafoco/pkg/scheduler"
	"github.com/borgmon/despertafoco/pkg/store"
	"github.com/borgmon/despertafoco/pkg/timers"
	"github.com/rs/zerolog"
)

// Audio is the playback surface Core uses.
type Audio interface {
	Play(key models.SoundKey, loop bool)
	Preview(key models.SoundKey)
	Stop()
}

// Options configures a Core
type Options struct {
	Clock    clock.Clock
	Prefs    store.Preferences
	Audio    Audio
	Notifier notify.Notifier
	Log      zerolog.Logger
}

// Core is the application state owner.
type Core struct {
	clock     clock.Clock
	heartbeat *clock.Heartbeat
	log       zerolog.Logger

	alarms    *store.AlarmStore
	prefs     *store.SettingsStore
	scheduler *scheduler.Scheduler
	notices   *notice.Manager
	audio     Audio

	mu        sync.Mutex
	settings  models.Settings
	theme     models.Theme
	stats     models.PomodoroStats
	countdown *timers.Countdown
	pomodoro  *timers.Pomodoro
	stopwatch *timers.Stopwatch

	notificationsOn atomic.Bool

	events    *eventQueue
	closeOnce sync.Once

	listenersMu   sync.Mutex
	tickListeners []func(time.Time)
}

// New creates a Core and hydrates persisted state. The returned Core is
// idle until Start.
func New(opts Options) *Core {
	if opts.Clock == nil {
		opts.Clock = clock.NewReal()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}

	c := &Core{
		clock:     opts.Clock,
		heartbeat: clock.NewHeartbeat(opts.Clock),
		log:       opts.Log.With().Str("component", "core").Logger(),
		alarms:    store.NewAlarmStore(opts.Prefs, opts.Log),
		prefs:     store.NewSettingsStore(opts.Prefs, opts.Log),
		scheduler: scheduler.New(opts.Log),
		audio:     opts.Audio,
		events:    newEventQueue(),
	}

	c.settings = c.prefs.LoadSettings()
	c.theme = c.prefs.LoadTheme()
	c.stats = c.prefs.LoadPomodoroStats()
	c.notificationsOn.Store(c.settings.Notifications)

	c.countdown = timers.NewCountdown(time.Duration(c.settings.CountdownSeconds) * time.Second)
	c.pomodoro = timers.NewPomodoro(c.prefs.LoadPomodoroConfig())
	c.stopwatch = timers.NewStopwatch()

	notifier := notify.Gate(opts.Notifier, c.notificationsOn.Load)
	c.notices = notice.NewManager(c.alarms, opts.Audio, notifier, opts.Log)

	return c
}

// Start begins the once-per-second heartbeat.
func (c *Core) Start() {
	c.heartbeat.Start(c.Tick)
	c.log.Info().Int("alarms", len(c.alarms.List())).Msg("Core started")
}

// Close stops the heartbeat and any sound. It is safe to call more than once.
func (c *Core) Close() {
	c.closeOnce.Do(func() {
		c.heartbeat.Stop()
		c.audio.Stop()
		c.events.Close()
		c.log.Info().Msg("Core closed")
	})
}

// OnNotice registers fn for notice transitions. fn runs on the dispatch
// goroutine.
func (c *Core) OnNotice(fn func(n notice.Notice, ok bool)) {
	c.notices.Subscribe(func(n notice.Notice, ok bool) {
		c.events.Post(func() { fn(n, ok) })
	})
}

// OnTick registers fn to run after every processed tick.
func (c *Core) OnTick(fn func(now time.Time)) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.tickListeners = append(c.tickListeners, fn)
}

// Tick runs one evaluation cycle at now: alarms first, then the timer tools.
func (c *Core) Tick(now time.Time) {
	c.mu.Lock()

	if trigger, ok := c.scheduler.Check(now, c.alarms.List(), c.notices.RingingAlarmID()); ok {
		c.notices.RingAlarm(trigger.Alarm, now)
	}

	if c.countdown.Tick(now) {
		c.notices.Finish(notice.ToolCountdown, c.settings.CountdownSound, true, "Countdown complete", now)
	}

	if done, ok := c.pomodoro.Tick(now); ok {
		c.stats.Record(done.Phase)
		c.prefs.SavePomodoroStats(c.stats)
		cfg := c.pomodoro.Config()
		c.notices.Finish(notice.ToolPomodoro, cfg.Sound, false, pomodoroMessage(done), now)
	}

	c.mu.Unlock()

	c.listenersMu.Lock()
	listeners := append([]func(time.Time){}, c.tickListeners...)
	c.listenersMu.Unlock()
	for _, fn := range listeners {
		c.events.Post(func() { fn(now) })
	}
}

func pomodoroMessage(done timers.Completion) string {
	switch done.Phase {
	case models.PhaseWork:
		if done.Next == models.PhaseLongBreak {
			return "Focus session complete. Time for a long break"
		}
		return "Focus session complete. Time for a short break"
	default:
		return "Break is over. Back to focus"
	}
}

// Notice returns the active notice.
func (c *Core) Notice() (notice.Notice, bool) {
	return c.notices.Current()
}

// StopNotice acknowledges the active notice.
func (c *Core) StopNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices.Stop(c.clock.Now())
}

// SnoozeNotice snoozes the ringing alarm. minutes of 0 uses the configured
// snooze length.
func (c *Core) SnoozeNotice(minutes int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if minutes == 0 {
		minutes = c.settings.SnoozeMinutes
	}
	return c.notices.Snooze(minutes, c.clock.Now())
}

// PreviewSound plays a short sample of key.
func (c *Core) PreviewSound(key models.SoundKey) {
	c.audio.Preview(key)
}

// Settings returns the current settings.
func (c *Core) Settings() models.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SaveSettings normalizes and persists settings. An idle countdown picks up
// a new default length.
func (c *Core) SaveSettings(settings models.Settings) models.Settings {
	settings.Normalize()

	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.settings
	c.settings = settings
	c.notificationsOn.Store(settings.Notifications)
	c.prefs.SaveSettings(settings)

	if prev.CountdownSeconds != settings.CountdownSeconds && c.countdown.Status() == timers.StatusIdle {
		c.countdown.SetDuration(time.Duration(settings.CountdownSeconds) * time.Second)
	}
	c.log.Info().Interface("settings", settings).Msg("Settings saved")
	return settings
}

func (c *Core) Theme() models.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

func (c *Core) SetTheme(theme models.Theme) {
	if !theme.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = theme
	c.prefs.SaveTheme(theme)
}
