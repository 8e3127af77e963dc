// ABOUTME: PCM16 payload decoder
// ABOUTME: Decodes the generation service's base64 PCM payload to a sample buffer
package decode

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio"
)

// PCMDecoder decodes raw signed 16-bit little-endian PCM, interleaved by
// channel, into per-channel float samples.
type PCMDecoder struct {
	sampleRate int
	channels   int
}

// NewPCM creates a PCM16 decoder for the given stream parameters.
func NewPCM(format audio.Format) (*PCMDecoder, error) {
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", format.SampleRate)
	}
	if format.Channels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}
	if format.BitDepth != 0 && format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16)", format.BitDepth)
	}

	return &PCMDecoder{
		sampleRate: format.SampleRate,
		channels:   format.Channels,
	}, nil
}

// Decode converts raw PCM16 bytes to a SampleBuffer. The byte length must be
// a whole number of samples and the sample count must divide evenly across
// the channel count.
func (d *PCMDecoder) Decode(data []byte) (*audio.SampleBuffer, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of 16-bit samples", ErrMalformedPayload, len(data))
	}

	numSamples := len(data) / 2
	if numSamples%d.channels != 0 {
		return nil, fmt.Errorf("%w: %d samples across %d channels", ErrChannelMismatch, numSamples, d.channels)
	}

	frames := numSamples / d.channels
	channels := make([][]float64, d.channels)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}

	// Sample i belongs to channel i mod channels, frame i / channels.
	for i := 0; i < numSamples; i++ {
		s := int16(binary.LittleEndian.Uint16(data[i*2:]))
		channels[i%d.channels][i/d.channels] = audio.SampleFromInt16(s)
	}

	return &audio.SampleBuffer{
		SampleRate: d.sampleRate,
		Channels:   channels,
	}, nil
}

// Close releases resources.
func (d *PCMDecoder) Close() error {
	return nil
}

// Payload decodes the transport encoding of the generation service's audio
// payload (base64) and then the PCM16 samples inside it.
func Payload(payload string, format audio.Format) (*audio.SampleBuffer, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	dec, err := NewPCM(format)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return dec.Decode(raw)
}
