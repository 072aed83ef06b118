// Package scheduler decides, once per tick, whether an alarm should fire.
package scheduler

import (
	"sync"
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/rs/zerolog"
)

// Reason says which condition matched.
type Reason string

const (
	ReasonTime   Reason = "time"
	ReasonSnooze Reason = "snooze"
)

// Trigger is an alarm whose match condition holds at the evaluated instant.
type Trigger struct {
	Alarm  models.Alarm
	Reason Reason
}

// Evaluate returns the first active alarm, in list order, that matches now.
// The alarm with id ringingID is skipped. An alarm matches when its time of
// day equals now at second zero, or when its snooze deadline falls in the
// same second as now. Missed seconds are never caught up.
func Evaluate(now time.Time, alarms []models.Alarm, ringingID string) (Trigger, bool) {
	currentTime := models.FormatClock(now)
	currentSecond := now.Truncate(time.Second)

	for _, alarm := range alarms {
		if !alarm.Active || (ringingID != "" && alarm.ID == ringingID) {
			continue
		}
		if alarm.Time == currentTime && now.Second() == 0 {
			return Trigger{Alarm: alarm, Reason: ReasonTime}, true
		}
		if alarm.SnoozedUntil != nil && alarm.SnoozedUntil.Time().Truncate(time.Second).Equal(currentSecond) {
			return Trigger{Alarm: alarm, Reason: ReasonSnooze}, true
		}
	}
	return Trigger{}, false
}

// Scheduler wraps Evaluate with a guard so the same wall-clock second is
// never evaluated twice.
type Scheduler struct {
	log zerolog.Logger

	mu   sync.Mutex
	last time.Time
}

// New creates a Scheduler
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{log: log.With().Str("component", "scheduler").Logger()}
}

// Check evaluates alarms at now unless that second was already evaluated.
func (s *Scheduler) Check(now time.Time, alarms []models.Alarm, ringingID string) (Trigger, bool) {
	second := now.Truncate(time.Second)

	s.mu.Lock()
	if !s.last.IsZero() && second.Equal(s.last) {
		s.mu.Unlock()
		return Trigger{}, false
	}
	s.last = second
	s.mu.Unlock()

	trigger, ok := Evaluate(now, alarms, ringingID)
	if ok {
		s.log.Info().
			Str("alarm", trigger.Alarm.ID).
			Str("time", trigger.Alarm.Time).
			Str("reason", string(trigger.Reason)).
			Msg("Alarm triggered")
	}
	return trigger, ok
}
