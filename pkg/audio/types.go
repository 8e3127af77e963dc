// ABOUTME: Audio type definitions
// ABOUTME: Defines formats, the decoded sample buffer, and PCM16 conversion helpers
package audio

import "time"

const (
	// DefaultSampleRate is the sample rate the generation service emits.
	DefaultSampleRate = 24000

	// DefaultChannels is the channel count the generation service emits (mono).
	DefaultChannels = 1
)

// Format describes a PCM stream format.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// SampleBuffer holds decoded audio as per-channel float samples in [-1.0, 1.0].
// All channels have the same frame count. A SampleBuffer is never mutated
// after it is produced; consumers treat it as read-only.
type SampleBuffer struct {
	SampleRate int
	Channels   [][]float64
}

// NumChannels returns the channel count.
func (b *SampleBuffer) NumChannels() int {
	return len(b.Channels)
}

// FrameCount returns the number of frames (samples per channel).
func (b *SampleBuffer) FrameCount() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the playback duration of the buffer.
func (b *SampleBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.FrameCount()) / float64(b.SampleRate) * float64(time.Second))
}

// SampleFromInt16 maps a signed 16-bit PCM sample onto [-1.0, 1.0).
// +32767 maps to 0.999969..., not 1.0; the asymmetry matches the
// generation service's reference decoder and must not be corrected.
func SampleFromInt16(sample int16) float64 {
	return float64(sample) / 32768.0
}

// SampleToInt16 converts a float sample to signed 16-bit PCM.
// The input is clamped to [-1.0, 1.0]; negative values scale by 32768,
// non-negative values by 32767, so -1.0 hits the full negative range
// and 1.0 hits 32767 exactly.
func SampleToInt16(sample float64) int16 {
	if sample < -1.0 {
		sample = -1.0
	}
	if sample > 1.0 {
		sample = 1.0
	}
	if sample < 0 {
		return int16(sample * 32768)
	}
	return int16(sample * 32767)
}

// Interleave flattens per-channel samples into frame-ordered PCM16 bytes
// (for each frame, one little-endian int16 per channel).
func (b *SampleBuffer) Interleave() []byte {
	frames := b.FrameCount()
	channels := b.NumChannels()
	out := make([]byte, frames*channels*2)

	i := 0
	for frame := 0; frame < frames; frame++ {
		for ch := 0; ch < channels; ch++ {
			s := SampleToInt16(b.Channels[ch][frame])
			out[i] = byte(s)
			out[i+1] = byte(uint16(s) >> 8)
			i += 2
		}
	}
	return out
}
