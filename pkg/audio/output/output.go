// ABOUTME: Audio sink interface definition
// ABOUTME: Common interface for hardware playback backends
package output

// Sink represents an exclusive audio output connection. At most one Sink is
// open at a time; the playback controller owns that invariant.
type Sink interface {
	// Open acquires the output device for the given stream format.
	Open(sampleRate, channels int) error

	// Write outputs interleaved PCM16 bytes (blocks until consumed).
	Write(pcm []byte) error

	// Close releases the output connection. Close is idempotent and cuts
	// off any queued audio.
	Close() error
}
