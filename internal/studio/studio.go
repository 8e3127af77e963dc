// ABOUTME: Studio orchestrator tying synthesis, decoding, playback, and export together
// ABOUTME: Owns the active profile and the currently loaded sample buffer
package studio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/config"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/eventlog"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/metrics"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/playback"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/profile"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/tts"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/decode"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/encode"
)

// Studio coordinates the full pipeline: generate speech, decode it,
// drive the playback controller, and serialize buffers for download.
type Studio struct {
	cfg        config.Config
	synth      tts.Synthesizer
	profiles   *profile.Store
	controller *playback.Controller
	events     *eventlog.Log
	metrics    *metrics.Metrics

	mu            sync.Mutex
	activeProfile *profile.Profile
	current       *audio.SampleBuffer

	pumpDone chan struct{}
}

// New wires a studio together and starts forwarding playback events
// into the event log and metrics.
func New(cfg config.Config, synth tts.Synthesizer, profiles *profile.Store, controller *playback.Controller, events *eventlog.Log, m *metrics.Metrics) *Studio {
	s := &Studio{
		cfg:        cfg,
		synth:      synth,
		profiles:   profiles,
		controller: controller,
		events:     events,
		metrics:    m,
		pumpDone:   make(chan struct{}),
	}
	go s.pumpEvents()
	return s
}

// pumpEvents mirrors controller events into the log and counters.
func (s *Studio) pumpEvents() {
	defer close(s.pumpDone)

	for ev := range s.controller.Events() {
		switch ev.Kind {
		case playback.EventStarted:
			s.metrics.PlaybacksStarted.Inc()
			s.events.Emit(eventlog.KindPlaybackStarted, "playback started")
		case playback.EventStopped:
			s.metrics.PlaybacksStopped.Inc()
			s.events.Emit(eventlog.KindPlaybackStopped, "playback stopped")
		case playback.EventEnded:
			s.metrics.PlaybacksStopped.Inc()
			s.events.Emit(eventlog.KindPlaybackStopped, "playback completed")
		}
	}
}

// Controller exposes the playback controller for UI layers.
func (s *Studio) Controller() *playback.Controller {
	return s.controller
}

// Profiles exposes the profile store for UI layers.
func (s *Studio) Profiles() *profile.Store {
	return s.profiles
}

// Events exposes the event log.
func (s *Studio) Events() *eventlog.Log {
	return s.events
}

// ActiveProfile returns the selected profile, or nil when none is active.
func (s *Studio) ActiveProfile() *profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeProfile
}

// CurrentBuffer returns the last successfully loaded sample buffer.
func (s *Studio) CurrentBuffer() *audio.SampleBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// UseProfile activates a stored profile. Switching profiles stops any
// active playback and releases the loaded buffer.
func (s *Studio) UseProfile(ctx context.Context, id string) (*profile.Profile, error) {
	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeProfile != nil && s.activeProfile.ID != p.ID {
		s.controller.ProfileChanged()
		s.current = nil
	}
	s.activeProfile = p
	return p, nil
}

// Generate synthesizes speech for script in the active profile's voice,
// decodes the result, and loads it into the playback controller. A failed
// generation leaves the previously loaded buffer untouched.
func (s *Studio) Generate(ctx context.Context, script string) (*audio.SampleBuffer, error) {
	s.mu.Lock()
	p := s.activeProfile
	s.mu.Unlock()

	if p == nil {
		return nil, fmt.Errorf("no active profile")
	}
	if strings.TrimSpace(script) == "" {
		return nil, fmt.Errorf("script is empty")
	}

	s.metrics.Generations.Inc()

	payload, err := s.synth.Synthesize(ctx, script, p)
	if err != nil {
		s.metrics.GenerationErrors.Inc()
		s.events.Errorf(fmt.Errorf("generation failed: %w", err))
		return nil, err
	}

	buf, err := decode.Payload(payload, audio.Format{
		SampleRate: s.cfg.SampleRate,
		Channels:   s.cfg.Channels,
	})
	if err != nil {
		s.metrics.GenerationErrors.Inc()
		s.events.Errorf(fmt.Errorf("decode failed: %w", err))
		return nil, err
	}

	s.metrics.Decodes.Inc()
	s.metrics.DecodedSeconds.Add(buf.Duration().Seconds())
	s.events.Emit(eventlog.KindDecoded, fmt.Sprintf("%d frames at %d Hz", buf.FrameCount(), buf.SampleRate))

	s.loadBuffer(buf)
	return buf, nil
}

// GenerateStream synthesizes script over the streaming endpoint, collecting
// PCM chunks as they arrive, and loads the decoded result for playback. The
// semantics match Generate; only the transport differs.
func (s *Studio) GenerateStream(ctx context.Context, script string) (*audio.SampleBuffer, error) {
	s.mu.Lock()
	p := s.activeProfile
	s.mu.Unlock()

	if p == nil {
		return nil, fmt.Errorf("no active profile")
	}
	if strings.TrimSpace(script) == "" {
		return nil, fmt.Errorf("script is empty")
	}

	s.metrics.Generations.Inc()

	client := tts.NewStreamClient(tts.Config{
		APIKey:   s.cfg.APIKey,
		Endpoint: s.cfg.Endpoint,
		Model:    s.cfg.Model,
		Voice:    s.cfg.Voice,
	})
	if err := client.Connect(); err != nil {
		s.metrics.GenerationErrors.Inc()
		s.events.Errorf(fmt.Errorf("stream connect failed: %w", err))
		return nil, err
	}
	defer client.Close()

	if err := client.Synthesize(script, p); err != nil {
		s.metrics.GenerationErrors.Inc()
		s.events.Errorf(fmt.Errorf("stream request failed: %w", err))
		return nil, err
	}

	// Tear the stream down if the context ends first.
	watch := make(chan struct{})
	defer close(watch)
	go func() {
		select {
		case <-ctx.Done():
			client.Close()
		case <-watch:
		}
	}()

	var pcm []byte
	for chunk := range client.Chunks {
		pcm = append(pcm, chunk.Data...)
	}
	if err := <-client.Done; err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		s.metrics.GenerationErrors.Inc()
		s.events.Errorf(fmt.Errorf("stream failed: %w", err))
		return nil, err
	}

	dec, err := decode.NewPCM(audio.Format{
		SampleRate: s.cfg.SampleRate,
		Channels:   s.cfg.Channels,
	})
	if err != nil {
		return nil, err
	}
	buf, err := dec.Decode(pcm)
	if err != nil {
		s.metrics.GenerationErrors.Inc()
		s.events.Errorf(fmt.Errorf("decode failed: %w", err))
		return nil, err
	}

	s.metrics.Decodes.Inc()
	s.metrics.DecodedSeconds.Add(buf.Duration().Seconds())
	s.events.Emit(eventlog.KindDecoded, fmt.Sprintf("%d frames at %d Hz (streamed)", buf.FrameCount(), buf.SampleRate))

	s.loadBuffer(buf)
	return buf, nil
}

// ImportSample decodes an audio file from disk and loads it for playback.
// The container is picked by file extension: .wav, .mp3, or .flac.
func (s *Studio) ImportSample(path string) (*audio.SampleBuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample: %w", err)
	}

	var dec decode.Decoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		dec = decode.NewWAV()
	case ".mp3":
		dec = decode.NewMP3()
	case ".flac":
		dec = decode.NewFLAC()
	default:
		return nil, fmt.Errorf("unsupported sample container %q", filepath.Ext(path))
	}
	defer dec.Close()

	buf, err := dec.Decode(data)
	if err != nil {
		s.events.Errorf(fmt.Errorf("sample decode failed: %w", err))
		return nil, err
	}

	s.metrics.Decodes.Inc()
	s.metrics.DecodedSeconds.Add(buf.Duration().Seconds())
	s.events.Emit(eventlog.KindDecoded, fmt.Sprintf("imported %s", filepath.Base(path)))

	s.loadBuffer(buf)
	return buf, nil
}

func (s *Studio) loadBuffer(buf *audio.SampleBuffer) {
	s.mu.Lock()
	s.current = buf
	s.mu.Unlock()
	s.controller.LoadBuffer(buf)
}

// Play starts playback of the loaded buffer.
func (s *Studio) Play() {
	s.controller.Play()
}

// Stop halts playback. Stopping when idle is a no-op.
func (s *Studio) Stop() {
	s.controller.Stop()
}

// Export serializes the loaded buffer in the requested container format
// and returns the suggested download filename alongside the bytes.
func (s *Studio) Export(format encode.Format) (string, []byte, error) {
	s.mu.Lock()
	buf := s.current
	p := s.activeProfile
	s.mu.Unlock()

	if buf == nil {
		return "", nil, fmt.Errorf("no audio loaded")
	}

	data, err := encode.Encode(buf, format)
	if err != nil {
		s.events.Errorf(fmt.Errorf("export failed: %w", err))
		return "", nil, err
	}

	name := ""
	if p != nil {
		name = p.Name
	}
	filename := encode.ExportFileName(name, time.Now(), format)

	s.metrics.Encodes.WithLabelValues(format.String()).Inc()
	s.events.Emit(eventlog.KindEncoded, filename)

	return filename, data, nil
}

// Close releases the controller and waits for the event pump to drain.
func (s *Studio) Close() {
	s.controller.Close()
	<-s.pumpDone
}
