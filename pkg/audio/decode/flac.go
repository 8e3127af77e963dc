// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC reference samples to a sample buffer
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio"
)

// FLACDecoder decodes FLAC audio for cloned-voice reference samples.
type FLACDecoder struct{}

// NewFLAC creates a new FLAC decoder.
func NewFLAC() *FLACDecoder {
	return &FLACDecoder{}
}

// Decode converts a complete FLAC stream to a SampleBuffer.
func (d *FLACDecoder) Decode(data []byte) (*audio.SampleBuffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse FLAC stream: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	if info == nil {
		return nil, fmt.Errorf("%w: missing FLAC stream info", ErrMalformedPayload)
	}

	numChannels := int(info.NChannels)
	scale := float64(int64(1) << uint(info.BitsPerSample-1))

	channels := make([][]float64, numChannels)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac decode error: %w", err)
		}

		for ch, sub := range frame.Subframes {
			if ch >= numChannels {
				break
			}
			for _, s := range sub.Samples {
				channels[ch] = append(channels[ch], float64(s)/scale)
			}
		}
	}

	return &audio.SampleBuffer{
		SampleRate: int(info.SampleRate),
		Channels:   channels,
	}, nil
}

// Close releases decoder resources.
func (d *FLACDecoder) Close() error {
	return nil
}
