package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// Output format of the shared audio context. Every decoded asset is
// converted to it.
const (
	SampleRate    = 44100
	ChannelCount  = 2
	bytesPerFrame = ChannelCount * 2
)

var errUnsupportedWAV = errors.New("unsupported wav encoding")

// wavFormat holds WAV file format information
type wavFormat struct {
	AudioFormat int
	SampleRate  int
	Channels    int
	BitDepth    int
}

// Decode converts a WAV or MP3 file into 16-bit little-endian stereo PCM at
// SampleRate.
func Decode(data []byte) ([]byte, error) {
	if len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE" {
		return decodeWAV(data)
	}
	return decodeMP3(data)
}

func decodeWAV(data []byte) ([]byte, error) {
	format, samples, err := parseWAV(data)
	if err != nil {
		return nil, err
	}
	if format.AudioFormat != 1 || format.Channels < 1 || format.Channels > 2 {
		return nil, fmt.Errorf("%w: format=%d channels=%d", errUnsupportedWAV, format.AudioFormat, format.Channels)
	}

	var pcm []int16
	switch format.BitDepth {
	case 16:
		pcm = make([]int16, len(samples)/2)
		for i := range pcm {
			pcm[i] = int16(binary.LittleEndian.Uint16(samples[i*2:]))
		}
	case 8:
		pcm = make([]int16, len(samples))
		for i, b := range samples {
			pcm[i] = (int16(b) - 128) << 8
		}
	default:
		return nil, fmt.Errorf("%w: %d-bit", errUnsupportedWAV, format.BitDepth)
	}

	if format.Channels == 1 {
		pcm = monoToStereo(pcm)
	}
	return encodeS16(resample(pcm, format.SampleRate)), nil
}

func decodeMP3(data []byte) ([]byte, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	// go-mp3 always yields 16-bit little-endian stereo.
	if dec.SampleRate() == SampleRate {
		return raw[:len(raw)-len(raw)%bytesPerFrame], nil
	}
	return encodeS16(resample(decodeS16(raw), dec.SampleRate())), nil
}

// parseWAV walks the RIFF chunks and returns the format and the raw data chunk
func parseWAV(data []byte) (*wavFormat, []byte, error) {
	reader := bytes.NewReader(data)

	header := make([]byte, 12)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, nil, fmt.Errorf("read wav header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, nil, fmt.Errorf("%w: missing RIFF/WAVE header", errUnsupportedWAV)
	}

	var format *wavFormat
	for {
		chunkID := make([]byte, 4)
		if _, err := io.ReadFull(reader, chunkID); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil, fmt.Errorf("%w: no data chunk", errUnsupportedWAV)
			}
			return nil, nil, err
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return nil, nil, err
		}

		switch string(chunkID) {
		case "fmt ":
			if chunkSize < 16 {
				return nil, nil, fmt.Errorf("%w: short fmt chunk", errUnsupportedWAV)
			}
			var raw struct {
				AudioFormat   uint16
				NumChannels   uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(reader, binary.LittleEndian, &raw); err != nil {
				return nil, nil, err
			}
			format = &wavFormat{
				AudioFormat: int(raw.AudioFormat),
				SampleRate:  int(raw.SampleRate),
				Channels:    int(raw.NumChannels),
				BitDepth:    int(raw.BitsPerSample),
			}
			// Skip any extra format bytes
			if _, err := reader.Seek(int64(chunkSize-16+chunkSize%2), io.SeekCurrent); err != nil {
				return nil, nil, err
			}
		case "data":
			if format == nil {
				return nil, nil, fmt.Errorf("%w: data before fmt", errUnsupportedWAV)
			}
			size := int(chunkSize)
			if size > reader.Len() {
				size = reader.Len()
			}
			audioData := make([]byte, size)
			if _, err := io.ReadFull(reader, audioData); err != nil {
				return nil, nil, err
			}
			return format, audioData, nil
		default:
			// Chunks are padded to an even size
			if _, err := reader.Seek(int64(chunkSize+chunkSize%2), io.SeekCurrent); err != nil {
				return nil, nil, err
			}
		}
	}
}

func monoToStereo(in []int16) []int16 {
	out := make([]int16, len(in)*2)
	for i, s := range in {
		out[i*2] = s
		out[i*2+1] = s
	}
	return out
}

// resample converts interleaved stereo samples from rate to SampleRate using
// linear interpolation.
func resample(in []int16, rate int) []int16 {
	if rate == SampleRate || rate <= 0 || len(in) < 2*ChannelCount {
		return in
	}
	frames := len(in) / ChannelCount
	outFrames := int(int64(frames) * SampleRate / int64(rate))
	out := make([]int16, outFrames*ChannelCount)
	step := float64(rate) / SampleRate
	for i := 0; i < outFrames; i++ {
		pos := float64(i) * step
		j := int(pos)
		frac := pos - float64(j)
		if j >= frames-1 {
			j, frac = frames-2, 1
		}
		for c := 0; c < ChannelCount; c++ {
			a := float64(in[j*ChannelCount+c])
			b := float64(in[(j+1)*ChannelCount+c])
			out[i*ChannelCount+c] = int16(a + (b-a)*frac)
		}
	}
	return out
}

func decodeS16(raw []byte) []int16 {
	out := make([]int16, len(raw)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return out
}

func encodeS16(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}
