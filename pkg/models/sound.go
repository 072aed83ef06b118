package models

import "sort"

// SoundKey identifies an entry in the sound catalog.
type SoundKey string

// SoundUse partitions the catalog by intended use. The audio layer itself
// accepts any key regardless of use.
type SoundUse string

const (
	SoundUseWake  SoundUse = "wake"  // ambient alarm and pomodoro sounds
	SoundUseAlert SoundUse = "alert" // short countdown alerts
)

const (
	SoundForest       SoundKey = "forest"
	SoundCrystal      SoundKey = "crystal"
	SoundDawn         SoundKey = "dawn"
	SoundPiano        SoundKey = "piano"
	SoundSummerWind   SoundKey = "summer_wind"
	SoundZen          SoundKey = "zen"
	SoundClassicSoft  SoundKey = "classic_soft"
	SoundTimerBeep    SoundKey = "timer_beep"
	SoundTimerBell    SoundKey = "timer_bell"
	SoundTimerAlert   SoundKey = "timer_alert"
	SoundTimerWhistle SoundKey = "timer_whistle"
)

// DefaultAlarmSound is assigned to new alarms.
const DefaultAlarmSound = SoundClassicSoft

// SoundAsset is a static catalog entry.
type SoundAsset struct {
	Key   SoundKey
	Label string
	URL   string
	Use   SoundUse
}

var soundCatalog = map[SoundKey]SoundAsset{
	SoundForest:       {SoundForest, "Birds in the Forest", "https://assets.mixkit.co/active_storage/sfx/2434/2434-preview.mp3", SoundUseWake},
	SoundCrystal:      {SoundCrystal, "Crystal Bell", "https://assets.mixkit.co/active_storage/sfx/1004/1004-preview.mp3", SoundUseWake},
	SoundDawn:         {SoundDawn, "Golden Dawn", "https://assets.mixkit.co/active_storage/sfx/2568/2568-preview.mp3", SoundUseWake},
	SoundPiano:        {SoundPiano, "Serene Piano", "https://assets.mixkit.co/active_storage/sfx/936/936-preview.mp3", SoundUseWake},
	SoundSummerWind:   {SoundSummerWind, "Summer Wind", "https://assets.mixkit.co/active_storage/sfx/2432/2432-preview.mp3", SoundUseWake},
	SoundZen:          {SoundZen, "Zen Garden", "https://assets.mixkit.co/active_storage/sfx/2653/2653-preview.mp3", SoundUseWake},
	SoundClassicSoft:  {SoundClassicSoft, "Soft Beep", "https://assets.mixkit.co/active_storage/sfx/2869/2869-preview.mp3", SoundUseWake},
	SoundTimerBeep:    {SoundTimerBeep, "Digital Beep", "https://assets.mixkit.co/active_storage/sfx/2869/2869-preview.mp3", SoundUseAlert},
	SoundTimerBell:    {SoundTimerBell, "School Bell", "https://assets.mixkit.co/active_storage/sfx/1085/1085-preview.mp3", SoundUseAlert},
	SoundTimerAlert:   {SoundTimerAlert, "Urgent Alert", "https://assets.mixkit.co/active_storage/sfx/1003/1003-preview.mp3", SoundUseAlert},
	SoundTimerWhistle: {SoundTimerWhistle, "Whistle", "https://assets.mixkit.co/active_storage/sfx/1013/1013-preview.mp3", SoundUseAlert},
}

// LookupSound returns the catalog entry for key.
func LookupSound(key SoundKey) (SoundAsset, bool) {
	asset, ok := soundCatalog[key]
	return asset, ok
}

// Sounds returns the catalog entries for use, sorted by key. An empty use
// returns the whole catalog.
func Sounds(use SoundUse) []SoundAsset {
	result := make([]SoundAsset, 0, len(soundCatalog))
	for _, asset := range soundCatalog {
		if use == "" || asset.Use == use {
			result = append(result, asset)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}
