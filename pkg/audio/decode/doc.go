// ABOUTME: Audio decoder package for the studio pipeline
// ABOUTME: Provides the Decoder interface and PCM, WAV, MP3, FLAC implementations
// Package decode provides audio decoders for the studio pipeline.
//
// The primary path is PCM16: the generation service returns base64-encoded
// raw signed 16-bit little-endian PCM, which Payload turns directly into a
// normalized SampleBuffer. WAV, MP3 and FLAC decoders exist for importing
// cloned-voice reference samples.
//
// Example:
//
//	buf, err := decode.Payload(b64, audio.Format{SampleRate: 24000, Channels: 1})
package decode
