package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AlarmStore owns the durable list of alarms. Every mutation writes the whole
// list back to the preference store.
type AlarmStore struct {
	mu sync.RWMutex

	prefs Preferences
	log   zerolog.Logger

	// Alarms in insertion order
	alarms []models.Alarm
}

// NewAlarmStore creates an AlarmStore hydrated from prefs. Absent or malformed
// data yields an empty list.
func NewAlarmStore(prefs Preferences, log zerolog.Logger) *AlarmStore {
	as := &AlarmStore{
		prefs: prefs,
		log:   log.With().Str("component", "alarm_store").Logger(),
	}
	as.hydrate()
	return as
}

func (as *AlarmStore) hydrate() {
	var stored []models.Alarm
	if !loadJSON(as.prefs, as.log, KeyAlarms, &stored) {
		as.alarms = []models.Alarm{}
		return
	}

	seen := make(map[string]bool, len(stored))
	alarms := make([]models.Alarm, 0, len(stored))
	for _, alarm := range stored {
		if alarm.ID == "" || seen[alarm.ID] {
			as.log.Warn().Str("alarm", alarm.ID).Msg("Dropping alarm with missing or duplicate id")
			continue
		}
		if _, err := models.ParseClock(alarm.Time); err != nil {
			as.log.Warn().Err(err).Str("alarm", alarm.ID).Msg("Dropping alarm with malformed time")
			continue
		}
		if _, ok := models.LookupSound(alarm.Sound); !ok {
			as.log.Warn().Str("alarm", alarm.ID).Str("sound", string(alarm.Sound)).Msg("Resetting unknown sound")
			alarm.Sound = models.DefaultAlarmSound
		}
		seen[alarm.ID] = true
		alarms = append(alarms, alarm)
	}
	as.alarms = alarms
	as.log.Debug().Int("count", len(alarms)).Msg("Alarms loaded")
}

// persist must be called with the write lock held.
func (as *AlarmStore) persist() {
	saveJSON(as.prefs, as.log, KeyAlarms, as.alarms)
}

// List returns a copy of all alarms in insertion order.
func (as *AlarmStore) List() []models.Alarm {
	as.mu.RLock()
	defer as.mu.RUnlock()

	result := make([]models.Alarm, len(as.alarms))
	for i, alarm := range as.alarms {
		result[i] = cloneAlarm(alarm)
	}
	return result
}

// Get returns the alarm with the given id.
func (as *AlarmStore) Get(id string) (models.Alarm, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	if i := as.indexOf(id); i >= 0 {
		return cloneAlarm(as.alarms[i]), true
	}
	return models.Alarm{}, false
}

// Create appends a new inactive alarm set one hour after now.
func (as *AlarmStore) Create(now time.Time) models.Alarm {
	alarm := models.Alarm{
		ID:     uuid.New().String(),
		Time:   models.FormatClock(now.Add(time.Hour)),
		Label:  "",
		Sound:  models.DefaultAlarmSound,
		Active: false,
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	as.alarms = append(as.alarms, alarm)
	as.persist()
	as.log.Info().Str("alarm", alarm.ID).Str("time", alarm.Time).Msg("Alarm created")
	return cloneAlarm(alarm)
}

// Update merges patch into the alarm with the given id. An unknown id is a
// silent no-op; an invalid patch is rejected without changing anything.
func (as *AlarmStore) Update(id string, patch models.AlarmPatch) error {
	if err := patch.Validate(); err != nil {
		return fmt.Errorf("update alarm %s: %w", id, err)
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	i := as.indexOf(id)
	if i < 0 {
		return nil
	}
	patch.Apply(&as.alarms[i])
	as.persist()
	return nil
}

// Delete removes the alarm with the given id, if present.
func (as *AlarmStore) Delete(id string) {
	as.mu.Lock()
	defer as.mu.Unlock()

	i := as.indexOf(id)
	if i < 0 {
		return
	}
	as.alarms = append(as.alarms[:i], as.alarms[i+1:]...)
	as.persist()
	as.log.Info().Str("alarm", id).Msg("Alarm deleted")
}

func (as *AlarmStore) indexOf(id string) int {
	for i := range as.alarms {
		if as.alarms[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAlarm(a models.Alarm) models.Alarm {
	if a.ActivationTime != nil {
		ts := *a.ActivationTime
		a.ActivationTime = &ts
	}
	if a.SnoozedUntil != nil {
		ts := *a.SnoozedUntil
		a.SnoozedUntil = &ts
	}
	return a
}
