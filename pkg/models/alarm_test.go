package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "00:00", want: Clock{0, 0}},
		{in: "07:05", want: Clock{7, 5}},
		{in: "23:59", want: Clock{23, 59}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "7:05", wantErr: true},
		{in: "07-05", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
		{in: "-1:30", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTime))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestClockNext(t *testing.T) {
	from := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)

	assert.Equal(t, from, Clock{8, 30}.Next(from))
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), Clock{9, 0}.Next(from))
	assert.Equal(t, time.Date(2026, 3, 11, 8, 29, 0, 0, time.UTC), Clock{8, 29}.Next(from))
}

func TestAlarmPatch(t *testing.T) {
	snoozed := Timestamp(1000)
	alarm := Alarm{ID: "a", Time: "07:00", Sound: SoundForest, SnoozedUntil: &snoozed}

	label := "gym"
	active := true
	at := Timestamp(42)
	patch := AlarmPatch{Label: &label, Active: &active, ActivationTime: &at, ClearSnoozedUntil: true}
	require.NoError(t, patch.Validate())
	patch.Apply(&alarm)

	assert.Equal(t, "gym", alarm.Label)
	assert.True(t, alarm.Active)
	require.NotNil(t, alarm.ActivationTime)
	assert.Equal(t, Timestamp(42), *alarm.ActivationTime)
	assert.Nil(t, alarm.SnoozedUntil)
	assert.Equal(t, "07:00", alarm.Time)
}

func TestAlarmPatchValidate(t *testing.T) {
	bad := "25:00"
	assert.ErrorIs(t, AlarmPatch{Time: &bad}.Validate(), ErrInvalidTime)

	sound := SoundKey("kazoo")
	assert.ErrorIs(t, AlarmPatch{Sound: &sound}.Validate(), ErrUnknownSound)
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, DefaultAlarmLabel, Alarm{Label: "  "}.DisplayLabel())
	assert.Equal(t, "standup", Alarm{Label: "standup"}.DisplayLabel())
}

func TestSoundsByUse(t *testing.T) {
	alerts := Sounds(SoundUseAlert)
	require.Len(t, alerts, 4)
	for _, s := range alerts {
		assert.Equal(t, SoundUseAlert, s.Use)
	}
	assert.Len(t, Sounds(""), 11)

	_, ok := LookupSound(DefaultAlarmSound)
	assert.True(t, ok)
}

func TestPomodoroConfigNormalize(t *testing.T) {
	cfg := PomodoroConfig{WorkMinutes: -3, Sound: "nope"}
	cfg.Normalize()

	assert.Equal(t, PresetCustom, cfg.Preset)
	assert.Equal(t, 25, cfg.WorkMinutes)
	assert.Equal(t, 4, cfg.LongBreakInterval)
	assert.Equal(t, SoundForest, cfg.Sound)
	assert.Equal(t, 5*time.Minute, cfg.Duration(PhaseShortBreak))
}
