// ABOUTME: Spectrum analysis package for playback visualization
// ABOUTME: Provides the rolling-window FFT tap consumed by the renderer
// Package spectrum computes live frequency-domain magnitudes from the
// playback signal.
//
// A Tap sits between the playback controller and the output sink as a
// read-only observation point. Pushing samples never blocks playback, and
// pulling a snapshot never consumes data.
package spectrum
