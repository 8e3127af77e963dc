// ABOUTME: WAV container encoder
// ABOUTME: Serializes a sample buffer into a byte-exact RIFF/WAVE file
package encode

import (
	"encoding/binary"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio"
)

// wavHeaderSize is the fixed byte length of the RIFF, fmt and data headers.
const wavHeaderSize = 44

// EncodeWAV serializes a sample buffer as 16-bit linear PCM in a RIFF/WAVE
// container. Output length is always 44 + frames*channels*2 bytes, and the
// function is deterministic: equal buffers produce byte-identical output.
// A well-formed buffer (equal-length, non-empty channels) cannot fail.
func EncodeWAV(buf *audio.SampleBuffer) []byte {
	numChannels := buf.NumChannels()
	frames := buf.FrameCount()
	dataLen := frames * numChannels * 2
	byteRate := buf.SampleRate * numChannels * 2
	blockAlign := numChannels * 2

	out := make([]byte, wavHeaderSize+dataLen)

	// RIFF chunk
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataLen))
	copy(out[8:12], "WAVE")

	// fmt chunk: 16-byte body, encoding 1 = uncompressed linear PCM
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1)
	binary.LittleEndian.PutUint16(out[22:24], uint16(numChannels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(buf.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], 16)

	// data chunk
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataLen))

	// PCM payload: frame-major, channel order, little-endian int16.
	offset := wavHeaderSize
	for frame := 0; frame < frames; frame++ {
		for ch := 0; ch < numChannels; ch++ {
			s := audio.SampleToInt16(buf.Channels[ch][frame])
			binary.LittleEndian.PutUint16(out[offset:], uint16(s))
			offset += 2
		}
	}

	return out
}
