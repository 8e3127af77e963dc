// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, SampleBuffer and PCM16 sample conversion functions
// Package audio provides fundamental audio types and utilities for the studio pipeline.
//
// This package defines the core types used throughout the voiceforge library:
//   - Format: Describes a PCM stream format (sample rate, channels, bit depth)
//   - SampleBuffer: Decoded audio as normalized per-channel float samples
//
// It also provides PCM16 conversion helpers used by both the decoder and the
// container encoder:
//
//	s := audio.SampleFromInt16(-32768) // -1.0
//	p := audio.SampleToInt16(1.0)      // 32767
package audio
