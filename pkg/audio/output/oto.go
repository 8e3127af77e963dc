// ABOUTME: Oto-based audio sink implementation
// ABOUTME: Feeds a persistent oto player through a pipe for PCM16 playback
package output

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// oto allows one context per process; it is created on first Open and
// reused for every later session.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

// Oto is a Sink backed by the oto library.
type Oto struct {
	mu         sync.Mutex
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	open       bool
}

// NewOto creates a new oto-backed sink.
func NewOto() *Oto {
	return &Oto{}
}

// Open initializes the output device and starts a player fed by a pipe.
func (o *Oto) Open(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.open {
		return fmt.Errorf("sink already open")
	}

	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoErr = fmt.Errorf("failed to create oto context: %w", err)
			return
		}
		<-ready
		otoCtx = ctx
	})
	if otoErr != nil {
		return otoErr
	}

	// oto cannot reinitialize with a different format; keep using the
	// existing context and log the mismatch.
	if o.sampleRate != 0 && (o.sampleRate != sampleRate || o.channels != channels) {
		log.Printf("Warning: format change (%dHz %dch -> %dHz %dch) with existing oto context",
			o.sampleRate, o.channels, sampleRate, channels)
	}

	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.sampleRate = sampleRate
	o.channels = channels
	o.open = true

	return nil
}

// Write feeds PCM16 bytes to the player. Blocks until the pipe accepts the
// data; returns an error once the sink is closed.
func (o *Oto) Write(pcm []byte) error {
	o.mu.Lock()
	w := o.pipeWriter
	open := o.open
	o.mu.Unlock()

	if !open {
		return fmt.Errorf("sink not open")
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}
	return nil
}

// Close stops playback immediately and releases the player.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.open {
		return nil
	}

	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	o.open = false

	return nil
}
