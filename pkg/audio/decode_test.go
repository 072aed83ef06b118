package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWAV encodes 16-bit PCM samples as a WAV file. A LIST chunk is
// inserted before the data chunk to exercise chunk skipping.
func buildWAV(t *testing.T, rate, channels int, samples []int16) []byte {
	t.Helper()
	var data bytes.Buffer
	require.NoError(t, binary.Write(&data, binary.LittleEndian, samples))

	var buf bytes.Buffer
	write := func(v any) { require.NoError(t, binary.Write(&buf, binary.LittleEndian, v)) }

	list := []byte("INFOabc") // odd size, padded
	buf.WriteString("RIFF")
	write(uint32(4 + 8 + 16 + 8 + len(list) + 1 + 8 + data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	write(uint32(16))
	write(uint16(1))
	write(uint16(channels))
	write(uint32(rate))
	write(uint32(rate * channels * 2))
	write(uint16(channels * 2))
	write(uint16(16))
	buf.WriteString("LIST")
	write(uint32(len(list)))
	buf.Write(list)
	buf.WriteByte(0)
	buf.WriteString("data")
	write(uint32(data.Len()))
	buf.Write(data.Bytes())
	return buf.Bytes()
}

func TestDecodeWAVStereoAtOutputRate(t *testing.T) {
	samples := []int16{100, -100, 200, -200, 300, -300}
	pcm, err := Decode(buildWAV(t, SampleRate, 2, samples))
	require.NoError(t, err)
	assert.Equal(t, encodeS16(samples), pcm)
}

func TestDecodeWAVMonoUpmixes(t *testing.T) {
	pcm, err := Decode(buildWAV(t, SampleRate, 1, []int16{1000, -1000}))
	require.NoError(t, err)
	assert.Equal(t, []int16{1000, 1000, -1000, -1000}, decodeS16(pcm))
}

func TestDecodeWAVResamples(t *testing.T) {
	const inRate = 22050
	samples := make([]int16, inRate*2) // one second of stereo silence
	pcm, err := Decode(buildWAV(t, inRate, 2, samples))
	require.NoError(t, err)
	assert.Len(t, pcm, SampleRate*bytesPerFrame)
}

func TestParseWAVRejectsGarbage(t *testing.T) {
	_, _, err := parseWAV([]byte("RIFF\x00\x00\x00\x00WAVE"))
	assert.ErrorIs(t, err, errUnsupportedWAV)

	_, _, err = parseWAV([]byte("nope"))
	assert.Error(t, err)
}

func TestDecodeRejectsNonAudio(t *testing.T) {
	_, err := Decode([]byte("<html>not found</html>"))
	assert.Error(t, err)
}

func TestResampleLinear(t *testing.T) {
	in := []int16{0, 0, 100, 100}
	out := resample(in, SampleRate/2)
	require.Len(t, out, 8)
	assert.Equal(t, int16(0), out[0])
	assert.Equal(t, int16(50), out[2])
	assert.Equal(t, int16(100), out[4])
}

func TestSynthesizeLength(t *testing.T) {
	pcm := Synthesize(100*time.Millisecond, Tone{Freq: 440, Duration: 200 * time.Millisecond, Volume: 0.5, Decay: 5})
	frames := len(pcm) / bytesPerFrame
	assert.Equal(t, SampleRate*3/10, frames)
	assert.NotEmpty(t, fallbackBeep)
}
