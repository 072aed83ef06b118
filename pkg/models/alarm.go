package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTime is returned when an alarm time is not a valid "HH:MM" value.
	ErrInvalidTime = errors.New("invalid alarm time")
	// ErrUnknownSound is returned when a sound key is not in the catalog.
	ErrUnknownSound = errors.New("unknown sound")
)

// Timestamp is a wall-clock instant stored as Unix milliseconds, matching the
// persisted alarm format.
type Timestamp int64

// TimestampOf converts t to a Timestamp.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time returns the timestamp as a local time.Time.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(int64(ts))
}

// Alarm is a persisted, user-defined alarm.
type Alarm struct {
	ID             string     `json:"id"`
	Time           string     `json:"time"` // "HH:MM"
	Label          string     `json:"label"`
	Sound          SoundKey   `json:"sound"`
	Active         bool       `json:"active"`
	ActivationTime *Timestamp `json:"activationTime,omitempty"`
	SnoozedUntil   *Timestamp `json:"snoozedUntil"`
}

// DisplayLabel returns the label, or the default wake-up text when empty.
func (a Alarm) DisplayLabel() string {
	if strings.TrimSpace(a.Label) == "" {
		return DefaultAlarmLabel
	}
	return a.Label
}

// DefaultAlarmLabel is shown for alarms without a label.
const DefaultAlarmLabel = "Time to wake up"

// AlarmPatch holds a partial update for an alarm. Nil fields are left as is.
type AlarmPatch struct {
	Time           *string
	Label          *string
	Sound          *SoundKey
	Active         *bool
	ActivationTime *Timestamp
	SnoozedUntil   *Timestamp

	// ClearActivationTime and ClearSnoozedUntil reset the optional fields to absent.
	ClearActivationTime bool
	ClearSnoozedUntil   bool
}

// Validate checks the fields the patch would write.
func (p AlarmPatch) Validate() error {
	if p.Time != nil {
		if _, err := ParseClock(*p.Time); err != nil {
			return err
		}
	}
	if p.Sound != nil {
		if _, ok := LookupSound(*p.Sound); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSound, *p.Sound)
		}
	}
	return nil
}

// Apply merges the patch into a.
func (p AlarmPatch) Apply(a *Alarm) {
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.Label != nil {
		a.Label = *p.Label
	}
	if p.Sound != nil {
		a.Sound = *p.Sound
	}
	if p.Active != nil {
		a.Active = *p.Active
	}
	if p.ClearActivationTime {
		a.ActivationTime = nil
	} else if p.ActivationTime != nil {
		ts := *p.ActivationTime
		a.ActivationTime = &ts
	}
	if p.ClearSnoozedUntil {
		a.SnoozedUntil = nil
	} else if p.SnoozedUntil != nil {
		ts := *p.SnoozedUntil
		a.SnoozedUntil = &ts
	}
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a strict "HH:MM" value.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// ClockOf returns the time of day of t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Next returns the first instant at or after from that falls on this clock
// time in from's location.
func (c Clock) Next(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), c.Hour, c.Minute, 0, 0, from.Location())
	if next.Before(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// FormatClock formats t as "HH:MM".
func FormatClock(t time.Time) string {
	return ClockOf(t).String()
}
