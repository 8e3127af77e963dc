// ABOUTME: Audio encoder package for downloads
// ABOUTME: Provides the export Format set and the byte-exact WAV container encoder
// Package encode serializes sample buffers into downloadable containers.
//
// Only WAV (16-bit linear PCM) has a real encoder. MP3 and OGG are part of
// the closed export format set but are rejected with ErrUnsupportedFormat
// until real encoders exist; the package never mislabels a WAV payload under
// a compressed extension.
package encode
