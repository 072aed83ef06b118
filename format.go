package main

import (
	"fmt"
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
)

// formatRemaining renders a countdown value, rounding up so a timer shows
// 00:01 until it actually completes.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return formatSeconds(int((d + time.Second - 1) / time.Second))
}

// formatElapsed renders a stopwatch value with hundredths.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hundredths := int(d/(10*time.Millisecond)) % 100
	return fmt.Sprintf("%s.%02d", formatSeconds(int(d/time.Second)), hundredths)
}

func formatSeconds(total int) string {
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// minutesLeft rounds d up to whole minutes.
func minutesLeft(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}

// formatNextAlarm describes when an alarm fires relative to now.
func formatNextAlarm(now, at time.Time) string {
	clock := at.Format("15:04")
	y1, m1, d1 := now.Date()
	y2, m2, d2 := at.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return clock
	}
	tomorrow := now.AddDate(0, 0, 1)
	y3, m3, d3 := tomorrow.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Tomorrow " + clock
	}
	return at.Format("Mon ") + clock
}

func phaseLabel(phase models.PomodoroPhase) string {
	switch phase {
	case models.PhaseShortBreak:
		return "Short break"
	case models.PhaseLongBreak:
		return "Long break"
	default:
		return "Focus"
	}
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// soundChoices lists the catalog entries for use as select options, with
// lookups in both directions.
type soundChoices struct {
	labels  []string
	byLabel map[string]models.SoundKey
	byKey   map[models.SoundKey]string
}

func newSoundChoices(use models.SoundUse) soundChoices {
	sc := soundChoices{
		byLabel: make(map[string]models.SoundKey),
		byKey:   make(map[models.SoundKey]string),
	}
	for _, asset := range models.Sounds(use) {
		sc.labels = append(sc.labels, asset.Label)
		sc.byLabel[asset.Label] = asset.Key
		sc.byKey[asset.Key] = asset.Label
	}
	return sc
}

// label returns the option text for key. Keys outside this list fall back to
// the catalog label so the select still shows something sensible.
func (sc soundChoices) label(key models.SoundKey) string {
	if l, ok := sc.byKey[key]; ok {
		return l
	}
	if asset, ok := models.LookupSound(key); ok {
		return asset.Label
	}
	return ""
}

func (sc soundChoices) key(label string) (models.SoundKey, bool) {
	key, ok := sc.byLabel[label]
	if !ok {
		for _, asset := range models.Sounds("") {
			if asset.Label == label {
				return asset.Key, true
			}
		}
	}
	return key, ok
}
