// ABOUTME: Playback controller owning the single active session
// ABOUTME: Drives the sink, feeds the analysis tap, and emits lifecycle events
package playback

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/output"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/spectrum"
)

// State is the controller's lifecycle state.
type State int

const (
	// StateIdle means no buffer is loaded.
	StateIdle State = iota

	// StateLoaded means a buffer is loaded but not playing.
	StateLoaded

	// StatePlaying means a session is live and holds the sink.
	StatePlaying
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoaded:
		return "loaded"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// EventKind identifies a playback lifecycle event.
type EventKind int

const (
	// EventStarted is emitted when a session begins audible output.
	EventStarted EventKind = iota

	// EventStopped is emitted on an explicit stop.
	EventStopped

	// EventEnded is emitted when playback reaches the end of the buffer.
	EventEnded
)

// Event is a playback lifecycle notification.
type Event struct {
	Kind EventKind
	At   time.Time
}

// chunkDuration is how much audio each sink write carries. Small enough
// that a cancelled context cuts output off promptly.
const chunkDuration = 50 * time.Millisecond

// session is one playback run. It exists from Play until stop, natural
// completion, or buffer replacement.
type session struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Controller owns the hardware sink and enforces playback exclusivity:
// at most one session is live, and a new session never starts while a
// previous session's sink connection exists.
type Controller struct {
	mu      sync.Mutex
	state   State
	buffer  *audio.SampleBuffer
	sink    output.Sink
	tap     *spectrum.Tap
	session *session
	events  chan Event
}

// New creates a controller around the given sink and analysis tap.
func New(sink output.Sink, tap *spectrum.Tap) *Controller {
	return &Controller{
		sink:   sink,
		tap:    tap,
		events: make(chan Event, 16),
	}
}

// Events returns the lifecycle event channel. Consumers that fall behind
// lose events rather than stalling playback.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsPlaying reports whether a session is live.
func (c *Controller) IsPlaying() bool {
	return c.State() == StatePlaying
}

// Tap returns the read-only analysis tap handle.
func (c *Controller) Tap() *spectrum.Tap {
	return c.tap
}

// LoadBuffer replaces the loaded buffer. If a session is live it is fully
// torn down first, so the swap is atomic from the caller's perspective.
// A nil buffer unloads and returns the controller to idle.
func (c *Controller) LoadBuffer(buf *audio.SampleBuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked(EventStopped)
	c.buffer = buf
	if buf == nil {
		c.state = StateIdle
	} else {
		c.state = StateLoaded
	}
}

// Play starts a new session from frame 0. A no-op when no buffer is loaded
// or a session is already live; callers must stop before replaying.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLoaded || c.buffer == nil || c.session != nil {
		return
	}

	if err := c.sink.Open(c.buffer.SampleRate, c.buffer.NumChannels()); err != nil {
		log.Printf("sink open failed: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{cancel: cancel, done: make(chan struct{})}
	c.session = sess
	c.state = StatePlaying
	c.emit(EventStarted)

	go c.run(ctx, sess, c.buffer)
}

// Stop tears the live session down: output halts, the tap is disconnected,
// the sink is released. Idempotent; a no-op when nothing is playing.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked(EventStopped)
}

// ProfileChanged handles the active voice profile switching: playback stops
// immediately and the stale buffer is released, so no audio from the old
// context survives the switch.
func (c *Controller) ProfileChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked(EventStopped)
	c.buffer = nil
	c.state = StateIdle
}

// Close releases everything. The controller is not reusable afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked(EventStopped)
	c.buffer = nil
	c.state = StateIdle
	close(c.events)
}

// stopLocked terminates the live session, if any: cancel the feeder, close
// the sink (cutting queued audio), wait for the feeder to exit, clear the
// tap. When stopLocked returns no write can reach a future sink connection.
// Caller holds c.mu; the feeder closes done without taking it.
func (c *Controller) stopLocked(kind EventKind) {
	if c.session == nil {
		return
	}

	sess := c.session
	sess.cancel()
	if err := c.sink.Close(); err != nil {
		log.Printf("sink close failed: %v", err)
	}
	<-sess.done

	c.session = nil
	c.tap.Reset()

	if c.buffer != nil {
		c.state = StateLoaded
	} else {
		c.state = StateIdle
	}
	c.emit(kind)
}

// run is the per-session feeder goroutine. It signals done before the
// natural-end teardown so a stop holding the lock never waits on it.
func (c *Controller) run(ctx context.Context, sess *session, buf *audio.SampleBuffer) {
	completed := c.feed(ctx, buf)
	close(sess.done)
	if completed {
		c.naturalEnd(sess)
	}
}

// feed streams the buffer to the sink in small chunks, forwarding each
// chunk to the analysis tap. Returns true when the buffer played to the end.
func (c *Controller) feed(ctx context.Context, buf *audio.SampleBuffer) bool {
	framesPerChunk := int(float64(buf.SampleRate) * chunkDuration.Seconds())
	if framesPerChunk < 1 {
		framesPerChunk = 1
	}

	total := buf.FrameCount()
	for start := 0; start < total; start += framesPerChunk {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		end := start + framesPerChunk
		if end > total {
			end = total
		}

		if err := c.sink.Write(interleaveRange(buf, start, end)); err != nil {
			// The sink closes when the session is stopped out from under
			// us; anything else is a device failure worth logging.
			if ctx.Err() == nil {
				log.Printf("sink write failed: %v", err)
			}
			return false
		}
		c.tap.Push(downmixRange(buf, start, end))
	}

	return true
}

// naturalEnd performs the same teardown as Stop when the buffer ran out,
// and notifies observers so UI state stays consistent without polling.
func (c *Controller) naturalEnd(sess *session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A concurrent Stop or LoadBuffer may have already torn us down.
	if c.session != sess {
		return
	}

	if err := c.sink.Close(); err != nil {
		log.Printf("sink close failed: %v", err)
	}
	c.session = nil
	c.tap.Reset()
	c.state = StateLoaded
	c.emit(EventEnded)
}

// emit sends an event without ever blocking the audio path.
func (c *Controller) emit(kind EventKind) {
	select {
	case c.events <- Event{Kind: kind, At: time.Now()}:
	default:
	}
}

// interleaveRange converts frames [start, end) to interleaved PCM16 bytes.
func interleaveRange(buf *audio.SampleBuffer, start, end int) []byte {
	channels := buf.NumChannels()
	out := make([]byte, (end-start)*channels*2)

	i := 0
	for frame := start; frame < end; frame++ {
		for ch := 0; ch < channels; ch++ {
			s := audio.SampleToInt16(buf.Channels[ch][frame])
			out[i] = byte(s)
			out[i+1] = byte(uint16(s) >> 8)
			i += 2
		}
	}
	return out
}

// downmixRange averages frames [start, end) across channels for the tap.
func downmixRange(buf *audio.SampleBuffer, start, end int) []float64 {
	channels := buf.NumChannels()
	out := make([]float64, end-start)

	for frame := start; frame < end; frame++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += buf.Channels[ch][frame]
		}
		out[frame-start] = sum / float64(channels)
	}
	return out
}
