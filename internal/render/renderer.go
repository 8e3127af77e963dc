// ABOUTME: Bar-spectrum renderer for the playback visualization
// ABOUTME: Turns magnitude snapshots into draw commands and runs the redraw loop
package render

import (
	"context"
	"sync"
	"time"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/spectrum"
)

const (
	// DefaultWidth and DefaultHeight describe the drawable surface.
	DefaultWidth  = 600.0
	DefaultHeight = 96.0

	// DefaultBars is the number of visual bars.
	DefaultBars = 64

	// idleHeight is the flat bar height shown when nothing is playing.
	idleHeight = 4.0

	// tickInterval approximates a display-synchronized refresh.
	tickInterval = time.Second / 60
)

// DrawCommand is one rounded rectangle to paint, in surface units with the
// origin at the top-left corner.
type DrawCommand struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Radius float64
}

// Config sizes the renderer's output.
type Config struct {
	Width  float64
	Height float64
	Bars   int
}

// DefaultConfig returns the documented 600x96 surface with 64 bars.
func DefaultConfig() Config {
	return Config{Width: DefaultWidth, Height: DefaultHeight, Bars: DefaultBars}
}

// Frame computes the draw commands for one tick. Pure function: magnitude
// snapshot in, rectangles out, no surface access.
//
// Bar height uses the squared magnitude; the square suppresses visual noise
// at low energy and emphasizes peaks. Bar width is width/(barCount*1.5) with
// half a bar width of gap, and bars are centered vertically.
func Frame(cfg Config, magnitudes []float64, playing bool) []DrawCommand {
	bars := cfg.Bars
	if bars <= 0 {
		bars = DefaultBars
	}

	barWidth := cfg.Width / (float64(bars) * 1.5)
	gap := barWidth / 2

	cmds := make([]DrawCommand, 0, bars)
	for i := 0; i < bars; i++ {
		h := idleHeight
		if playing && i < len(magnitudes) {
			m := magnitudes[i]
			h = m * m * cfg.Height
			if h < idleHeight {
				h = idleHeight
			}
		}

		cmds = append(cmds, DrawCommand{
			X:      float64(i) * (barWidth + gap),
			Y:      (cfg.Height - h) / 2,
			Width:  barWidth,
			Height: h,
			Radius: barWidth / 2,
		})
	}
	return cmds
}

// DrawFunc receives the commands for one tick.
type DrawFunc func([]DrawCommand)

// PlayingFunc reports whether a playback session is live.
type PlayingFunc func() bool

// Loop drives the redraw cycle for one surface. It polls the tap per tick
// while playing and paints a single idle frame otherwise.
type Loop struct {
	cfg     Config
	tap     *spectrum.Tap
	playing PlayingFunc
	draw    DrawFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLoop creates a redraw loop over the given tap.
func NewLoop(cfg Config, tap *spectrum.Tap, playing PlayingFunc, draw DrawFunc) *Loop {
	return &Loop{
		cfg:     cfg,
		tap:     tap,
		playing: playing,
		draw:    draw,
	}
}

// Start begins ticking. A second Start while running is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.tick(ctx, l.done)
}

// Stop cancels the loop synchronously: when it returns, no further draw
// callback will fire. Safe to call repeatedly and while stopped.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	done := l.done
	l.cancel = nil
	l.done = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// tick runs the redraw cycle until cancelled.
func (l *Loop) tick(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	wasPlaying := false
	// Paint the idle state immediately so the surface never starts blank.
	l.draw(Frame(l.cfg, nil, false))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			playing := l.playing()
			if playing {
				l.draw(Frame(l.cfg, l.tap.Magnitudes(), true))
			} else if wasPlaying {
				// One flat frame on the playing -> stopped edge, then rest.
				l.draw(Frame(l.cfg, nil, false))
			}
			wasPlaying = playing
		}
	}
}
