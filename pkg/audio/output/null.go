// ABOUTME: Null audio sink implementation
// ABOUTME: Discards audio while tracking open/close state, used in tests and headless runs
package output

import (
	"fmt"
	"sync"
	"time"
)

// Null is a Sink that discards audio. It can simulate real-time pacing so
// playback lifecycle logic behaves the same as with a hardware sink.
type Null struct {
	mu           sync.Mutex
	open         bool
	opens        int
	closes       int
	bytesWritten int
	sampleRate   int
	channels     int

	// Realtime, when true, makes Write sleep for the duration the PCM
	// payload would take to play.
	Realtime bool
}

// NewNull creates a discarding sink.
func NewNull() *Null {
	return &Null{}
}

// Open acquires the fake device.
func (n *Null) Open(sampleRate, channels int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.open {
		return fmt.Errorf("sink already open")
	}
	n.open = true
	n.opens++
	n.sampleRate = sampleRate
	n.channels = channels
	return nil
}

// Write discards PCM data, optionally pacing like real playback.
func (n *Null) Write(pcm []byte) error {
	n.mu.Lock()
	if !n.open {
		n.mu.Unlock()
		return fmt.Errorf("sink not open")
	}
	n.bytesWritten += len(pcm)
	realtime := n.Realtime
	rate := n.sampleRate * n.channels * 2
	n.mu.Unlock()

	if realtime && rate > 0 {
		time.Sleep(time.Duration(float64(len(pcm)) / float64(rate) * float64(time.Second)))
	}
	return nil
}

// Close releases the fake device. Idempotent.
func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.open {
		n.open = false
		n.closes++
	}
	return nil
}

// IsOpen reports whether the sink currently holds the device.
func (n *Null) IsOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.open
}

// Stats returns open count, close count, and bytes written.
func (n *Null) Stats() (opens, closes, bytes int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.opens, n.closes, n.bytesWritten
}
