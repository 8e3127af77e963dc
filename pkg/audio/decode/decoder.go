// ABOUTME: Decoder interface and shared errors
// ABOUTME: Common contract for all sample decoders
package decode

import (
	"errors"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio"
)

var (
	// ErrMalformedPayload reports a payload whose decoded byte length is not
	// a whole number of 16-bit samples, or that fails transport decoding.
	ErrMalformedPayload = errors.New("malformed audio payload")

	// ErrChannelMismatch reports a sample count that does not divide evenly
	// across the declared channel count.
	ErrChannelMismatch = errors.New("sample count does not match channel count")
)

// Decoder turns encoded audio bytes into a normalized sample buffer.
type Decoder interface {
	// Decode converts encoded audio data to a SampleBuffer.
	Decode(data []byte) (*audio.SampleBuffer, error)

	// Close releases decoder resources.
	Close() error
}
