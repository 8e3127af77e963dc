// ABOUTME: Prometheus metrics for the studio pipeline
// ABOUTME: Counts decodes, encodes, playback sessions, and errors
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus instruments.
type Metrics struct {
	Generations      prometheus.Counter
	GenerationErrors prometheus.Counter
	Decodes          prometheus.Counter
	Encodes          *prometheus.CounterVec
	PlaybacksStarted prometheus.Counter
	PlaybacksStopped prometheus.Counter
	DecodedSeconds   prometheus.Counter
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Generations: factory.NewCounter(prometheus.CounterOpts{
			Name: "voiceforge_generations_total",
			Help: "Speech generation requests sent to the remote service",
		}),
		GenerationErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "voiceforge_generation_errors_total",
			Help: "Failed speech generation attempts",
		}),
		Decodes: factory.NewCounter(prometheus.CounterOpts{
			Name: "voiceforge_decodes_total",
			Help: "Payloads decoded into sample buffers",
		}),
		Encodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voiceforge_encodes_total",
			Help: "Containers encoded for download, by format",
		}, []string{"format"}),
		PlaybacksStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "voiceforge_playbacks_started_total",
			Help: "Playback sessions started",
		}),
		PlaybacksStopped: factory.NewCounter(prometheus.CounterOpts{
			Name: "voiceforge_playbacks_stopped_total",
			Help: "Playback sessions stopped or completed",
		}),
		DecodedSeconds: factory.NewCounter(prometheus.CounterOpts{
			Name: "voiceforge_decoded_audio_seconds_total",
			Help: "Total duration of decoded audio",
		}),
	}
}
