// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 reference samples to a sample buffer
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio"
)

// MP3Decoder decodes MP3 audio for cloned-voice reference samples.
// go-mp3 always emits 16-bit stereo PCM at the stream's sample rate.
type MP3Decoder struct{}

// NewMP3 creates a new MP3 decoder.
func NewMP3() *MP3Decoder {
	return &MP3Decoder{}
}

// Decode converts a complete MP3 stream to a SampleBuffer.
func (d *MP3Decoder) Decode(data []byte) (*audio.SampleBuffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	const channels = 2 // go-mp3 output is always stereo
	numSamples := len(raw) / 2
	frames := numSamples / channels

	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := 0; i < frames*channels; i++ {
		s := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		out[i%channels][i/channels] = audio.SampleFromInt16(s)
	}

	return &audio.SampleBuffer{
		SampleRate: dec.SampleRate(),
		Channels:   out,
	}, nil
}

// Close releases decoder resources.
func (d *MP3Decoder) Close() error {
	return nil
}
