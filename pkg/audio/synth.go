package audio

import (
	"math"
	"time"
)

// Tone describes a decaying sine pulse.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Volume   float64 // 0..1
	Decay    float64 // envelope exp(-t*decay)
}

// Synthesize renders tones back to back with gap silence after each, as
// 16-bit little-endian stereo PCM at SampleRate.
func Synthesize(gap time.Duration, tones ...Tone) []byte {
	var samples []int16
	gapFrames := int(gap.Seconds() * SampleRate)
	for _, tone := range tones {
		n := int(tone.Duration.Seconds() * SampleRate)
		for i := 0; i < n; i++ {
			t := float64(i) / SampleRate
			envelope := math.Exp(-t * tone.Decay)
			s := int16(math.Sin(2*math.Pi*tone.Freq*t) * 32767 * tone.Volume * envelope)
			samples = append(samples, s, s)
		}
		samples = append(samples, make([]int16, gapFrames*ChannelCount)...)
	}
	return encodeS16(samples)
}

// fallbackBeep is played when a sound asset cannot be loaded: two short
// pulses followed by a pause, which also works as a loop.
var fallbackBeep = Synthesize(150*time.Millisecond,
	Tone{Freq: 880, Duration: 250 * time.Millisecond, Volume: 0.5, Decay: 6},
	Tone{Freq: 880, Duration: 250 * time.Millisecond, Volume: 0.5, Decay: 6},
)
