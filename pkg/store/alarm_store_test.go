package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAlarmStoreCreateDefaults(t *testing.T) {
	prefs := NewMemoryPreferences()
	as := NewAlarmStore(prefs, zerolog.Nop())

	now := time.Date(2024, 5, 1, 23, 30, 0, 0, time.Local)
	alarm := as.Create(now)

	assert.NotEmpty(t, alarm.ID)
	assert.Equal(t, "00:30", alarm.Time)
	assert.Equal(t, models.SoundClassicSoft, alarm.Sound)
	assert.False(t, alarm.Active)
	assert.Empty(t, alarm.Label)
	assert.Nil(t, alarm.SnoozedUntil)

	assert.Len(t, as.List(), 1)
	assert.NotEmpty(t, prefs.String(KeyAlarms))
}

func TestAlarmStoreRoundTrip(t *testing.T) {
	prefs := NewMemoryPreferences()
	as := NewAlarmStore(prefs, zerolog.Nop())

	now := time.Now()
	first := as.Create(now)
	as.Create(now)
	require.NoError(t, as.Update(first.ID, models.AlarmPatch{
		Label:          ptr("gym"),
		Active:         ptr(true),
		ActivationTime: ptr(models.TimestampOf(now)),
	}))

	reloaded := NewAlarmStore(prefs, zerolog.Nop())
	assert.Equal(t, as.List(), reloaded.List())
}

func TestAlarmStoreListReturnsCopies(t *testing.T) {
	as := NewAlarmStore(NewMemoryPreferences(), zerolog.Nop())
	alarm := as.Create(time.Now())
	require.NoError(t, as.Update(alarm.ID, models.AlarmPatch{SnoozedUntil: ptr(models.Timestamp(1000))}))

	list := as.List()
	list[0].Label = "changed"
	*list[0].SnoozedUntil = 42

	got, ok := as.Get(alarm.ID)
	require.True(t, ok)
	assert.Empty(t, got.Label)
	assert.Equal(t, models.Timestamp(1000), *got.SnoozedUntil)
}

func TestAlarmStoreUpdate(t *testing.T) {
	as := NewAlarmStore(NewMemoryPreferences(), zerolog.Nop())
	alarm := as.Create(time.Now())

	t.Run("unknown id is a no-op", func(t *testing.T) {
		assert.NoError(t, as.Update("missing", models.AlarmPatch{Label: ptr("x")}))
		assert.Len(t, as.List(), 1)
	})

	t.Run("malformed time is rejected", func(t *testing.T) {
		err := as.Update(alarm.ID, models.AlarmPatch{Time: ptr("7:00"), Label: ptr("x")})
		assert.ErrorIs(t, err, models.ErrInvalidTime)
		got, _ := as.Get(alarm.ID)
		assert.Empty(t, got.Label)
	})

	t.Run("unknown sound is rejected", func(t *testing.T) {
		err := as.Update(alarm.ID, models.AlarmPatch{Sound: ptr(models.SoundKey("gong"))})
		assert.ErrorIs(t, err, models.ErrUnknownSound)
	})

	t.Run("clear snoozedUntil", func(t *testing.T) {
		require.NoError(t, as.Update(alarm.ID, models.AlarmPatch{SnoozedUntil: ptr(models.Timestamp(5))}))
		require.NoError(t, as.Update(alarm.ID, models.AlarmPatch{ClearSnoozedUntil: true}))
		got, _ := as.Get(alarm.ID)
		assert.Nil(t, got.SnoozedUntil)
	})
}

func TestAlarmStoreDelete(t *testing.T) {
	prefs := NewMemoryPreferences()
	as := NewAlarmStore(prefs, zerolog.Nop())
	a := as.Create(time.Now())
	b := as.Create(time.Now())

	as.Delete(a.ID)
	as.Delete("missing")

	list := as.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	reloaded := NewAlarmStore(prefs, zerolog.Nop())
	assert.Len(t, reloaded.List(), 1)
}

func TestAlarmStoreHydration(t *testing.T) {
	t.Run("malformed blob yields empty list", func(t *testing.T) {
		prefs := NewMemoryPreferences()
		prefs.SetString(KeyAlarms, "{not json")
		as := NewAlarmStore(prefs, zerolog.Nop())
		assert.Empty(t, as.List())
	})

	t.Run("bad records are sanitized", func(t *testing.T) {
		stored := []models.Alarm{
			{ID: "a", Time: "07:00", Sound: models.SoundForest, Active: true},
			{ID: "", Time: "08:00", Sound: models.SoundForest},
			{ID: "a", Time: "09:00", Sound: models.SoundForest},
			{ID: "b", Time: "25:00", Sound: models.SoundForest},
			{ID: "c", Time: "10:15", Sound: "gong"},
		}
		data, err := json.Marshal(stored)
		require.NoError(t, err)

		prefs := NewMemoryPreferences()
		prefs.SetString(KeyAlarms, string(data))
		list := NewAlarmStore(prefs, zerolog.Nop()).List()

		require.Len(t, list, 2)
		assert.Equal(t, "a", list[0].ID)
		assert.Equal(t, "07:00", list[0].Time)
		assert.Equal(t, "c", list[1].ID)
		assert.Equal(t, models.DefaultAlarmSound, list[1].Sound)
	})

	t.Run("null snoozedUntil is accepted", func(t *testing.T) {
		prefs := NewMemoryPreferences()
		prefs.SetString(KeyAlarms, `[{"id":"x","time":"06:45","label":"","sound":"zen","active":true,"activationTime":1700000000000,"snoozedUntil":null}]`)
		list := NewAlarmStore(prefs, zerolog.Nop()).List()
		require.Len(t, list, 1)
		assert.Nil(t, list[0].SnoozedUntil)
		require.NotNil(t, list[0].ActivationTime)
		assert.Equal(t, models.Timestamp(1700000000000), *list[0].ActivationTime)
	})
}
