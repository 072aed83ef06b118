package core

import (
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
)

// Alarms returns all alarms in creation order.
func (c *Core) Alarms() []models.Alarm {
	return c.alarms.List()
}

// CreateAlarm adds an inactive alarm one hour from now.
func (c *Core) CreateAlarm() models.Alarm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alarms.Create(c.clock.Now())
}

// UpdateAlarm applies a user edit. Toggling active records or clears the
// activation time; deactivating also drops a pending snooze deadline and
// silences the alarm if it is ringing.
func (c *Core) UpdateAlarm(id string, patch models.AlarmPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	deactivate := patch.Active != nil && !*patch.Active
	if patch.Active != nil {
		current, ok := c.alarms.Get(id)
		if !ok {
			return nil
		}
		switch {
		case *patch.Active && !current.Active:
			now := models.TimestampOf(c.clock.Now())
			patch.ActivationTime = &now
			patch.ClearActivationTime = false
		case !*patch.Active:
			patch.ClearActivationTime = true
			patch.ClearSnoozedUntil = true
		}
	}
	if err := c.alarms.Update(id, patch); err != nil {
		return err
	}
	if deactivate && c.notices.RingingAlarmID() == id {
		c.notices.Stop(c.clock.Now())
	}
	return nil
}

// SetAlarmActive toggles an alarm.
func (c *Core) SetAlarmActive(id string, active bool) error {
	return c.UpdateAlarm(id, models.AlarmPatch{Active: &active})
}

// DeleteAlarm removes an alarm. Deleting the ringing alarm silences it.
func (c *Core) DeleteAlarm(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alarms.Delete(id)
	c.notices.AlarmDeleted(id)
}

// NextAlarm returns the active alarm that fires soonest after now, with the
// instant it fires.
func (c *Core) NextAlarm(now time.Time) (models.Alarm, time.Time, bool) {
	var (
		next  models.Alarm
		when  time.Time
		found bool
	)
	ringing := c.notices.RingingAlarmID()
	for _, alarm := range c.alarms.List() {
		if !alarm.Active || alarm.ID == ringing {
			continue
		}
		at, ok := nextFire(alarm, now)
		if !ok {
			continue
		}
		if !found || at.Before(when) {
			next, when, found = alarm, at, true
		}
	}
	return next, when, found
}

func nextFire(alarm models.Alarm, now time.Time) (time.Time, bool) {
	clk, err := models.ParseClock(alarm.Time)
	if err != nil {
		return time.Time{}, false
	}
	// A time match needs second zero, so the current minute is already gone
	// once any second of it has passed.
	from := now
	if now.Second() != 0 || now.Nanosecond() != 0 {
		from = now.Truncate(time.Second).Add(time.Second)
	}
	at := clk.Next(from)
	if alarm.SnoozedUntil != nil {
		snooze := alarm.SnoozedUntil.Time()
		if !snooze.Before(now.Truncate(time.Second)) && snooze.Before(at) {
			at = snooze
		}
	}
	return at, true
}
