// ABOUTME: Export format definitions and dispatch
// ABOUTME: Closed set of download formats with an explicit capability check
package encode

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio"
)

// Format identifies a download container format.
type Format int

const (
	// FormatWAV is uncompressed linear PCM in a RIFF/WAVE container.
	FormatWAV Format = iota

	// FormatMP3 is reserved; no encoder exists yet.
	FormatMP3

	// FormatOGG is reserved; no encoder exists yet.
	FormatOGG
)

// ErrUnsupportedFormat reports an export request for a format that has no
// encoder. Only WAV can currently be produced; requesting MP3 or OGG fails
// fast instead of mislabeling a WAV container.
var ErrUnsupportedFormat = errors.New("no encoder for requested format")

// String returns the file extension for the format.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatMP3:
		return "mp3"
	case FormatOGG:
		return "ogg"
	default:
		return "unknown"
	}
}

// ParseFormat maps a file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "wav":
		return FormatWAV, nil
	case "mp3":
		return FormatMP3, nil
	case "ogg":
		return FormatOGG, nil
	default:
		return FormatWAV, fmt.Errorf("unknown export format %q", s)
	}
}

// Encode serializes a sample buffer into the requested container format.
// TODO: real MP3/OGG encoders; until then those formats are rejected.
func Encode(buf *audio.SampleBuffer, format Format) ([]byte, error) {
	switch format {
	case FormatWAV:
		return EncodeWAV(buf), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ExportFileName builds the download file name for an export:
// profile name with whitespace replaced by underscores, the ISO date,
// and the format's extension.
func ExportFileName(profileName string, t time.Time, format Format) string {
	name := strings.Join(strings.Fields(profileName), "_")
	if name == "" {
		name = "voice"
	}
	return fmt.Sprintf("%s_%s.%s", name, t.UTC().Format("2006-01-02"), format)
}
