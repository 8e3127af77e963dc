// ABOUTME: Audio output package with pluggable sink backends
// ABOUTME: Provides the Sink interface, an oto backend, and a null backend
// Package output provides audio playback backends behind the Sink interface.
//
// The oto backend drives the hardware device; the null backend discards
// audio and exists for tests and headless environments. The playback
// controller guarantees that at most one sink connection is live at a time.
package output
