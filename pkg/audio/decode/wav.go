// ABOUTME: WAV container decoder
// ABOUTME: Decodes RIFF/WAVE files to a sample buffer for reference-sample import
package decode

import (
	"bytes"
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio"
)

// WAVDecoder decodes RIFF/WAVE containers. It is used for importing cloned
// voice reference samples and for verifying exported containers.
type WAVDecoder struct{}

// NewWAV creates a WAV container decoder.
func NewWAV() *WAVDecoder {
	return &WAVDecoder{}
}

// Decode parses a complete WAV file and de-interleaves its PCM payload.
func (d *WAVDecoder) Decode(data []byte) (*audio.SampleBuffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV file", ErrMalformedPayload)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV samples: %w", err)
	}

	return fromIntBuffer(pcm, int(dec.BitDepth))
}

// Close releases resources.
func (d *WAVDecoder) Close() error {
	return nil
}

// fromIntBuffer converts a go-audio interleaved integer buffer into
// per-channel normalized floats.
func fromIntBuffer(pcm *goaudio.IntBuffer, bitDepth int) (*audio.SampleBuffer, error) {
	if pcm == nil || pcm.Format == nil {
		return nil, fmt.Errorf("%w: missing format information", ErrMalformedPayload)
	}

	numChannels := pcm.Format.NumChannels
	if numChannels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrMalformedPayload, numChannels)
	}
	if len(pcm.Data)%numChannels != 0 {
		return nil, fmt.Errorf("%w: %d samples across %d channels", ErrChannelMismatch, len(pcm.Data), numChannels)
	}

	if bitDepth == 0 {
		bitDepth = pcm.SourceBitDepth
	}
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int(1) << uint(bitDepth-1))

	frames := len(pcm.Data) / numChannels
	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}
	for i, s := range pcm.Data {
		channels[i%numChannels][i/numChannels] = float64(s) / scale
	}

	return &audio.SampleBuffer{
		SampleRate: pcm.Format.SampleRate,
		Channels:   channels,
	}, nil
}
