// ABOUTME: Analysis tap for live frequency-domain magnitudes
// ABOUTME: Keeps a rolling sample window and serves normalized FFT snapshots
package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
)

const (
	// DefaultBins is the number of magnitude bins served per snapshot,
	// resampled down from the transform's raw bin count.
	DefaultBins = 64

	// windowSize is the FFT window length. 2048 samples at 24kHz is ~85ms,
	// enough resolution for a 64-bar display.
	windowSize = 2048
)

// Tap is a non-owning, read-only observation point on the playback signal.
// The playback controller pushes samples as they are written to the sink;
// the renderer pulls magnitude snapshots per animation tick. Neither side
// depends on the other: playback continues with no reader attached, and a
// reader of an idle tap sees silence.
type Tap struct {
	mu     sync.Mutex
	window []float64
	pos    int
	count  int
	bins   int
}

// NewTap creates a tap serving the given number of magnitude bins.
// Non-positive bin counts fall back to DefaultBins.
func NewTap(bins int) *Tap {
	if bins <= 0 {
		bins = DefaultBins
	}
	return &Tap{
		window: make([]float64, windowSize),
		bins:   bins,
	}
}

// Bins returns the number of magnitude values per snapshot.
func (t *Tap) Bins() int {
	return t.bins
}

// Push appends mono samples to the rolling window. Multi-channel callers
// push a single downmixed channel.
func (t *Tap) Push(samples []float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range samples {
		t.window[t.pos] = s
		t.pos = (t.pos + 1) % len(t.window)
	}
	t.count += len(samples)
	if t.count > len(t.window) {
		t.count = len(t.window)
	}
}

// Reset clears the window, returning the tap to silence.
func (t *Tap) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.window {
		t.window[i] = 0
	}
	t.pos = 0
	t.count = 0
}

// Magnitudes returns the latest per-bin magnitude snapshot, normalized to
// [0, 1] (1.0 = full-scale sine at the bin frequency). The raw transform is
// resampled down to the configured bin count by averaging.
func (t *Tap) Magnitudes() []float64 {
	t.mu.Lock()
	samples := make([]float64, len(t.window))
	// Oldest sample first.
	for i := range samples {
		samples[i] = t.window[(t.pos+i)%len(t.window)]
	}
	bins := t.bins
	empty := t.count == 0
	t.mu.Unlock()

	out := make([]float64, bins)
	if empty {
		return out
	}

	applyHammingWindow(samples)
	spectrum := fft.FFTReal(samples)

	// Half-spectrum magnitudes; 2/N scaling maps a full-scale sine to ~1.
	// The Hamming window attenuates by its coherent gain (0.54).
	const hammingGain = 0.54
	raw := make([]float64, len(spectrum)/2)
	for i := range raw {
		raw[i] = cmplx.Abs(spectrum[i]) * 2 / (float64(len(samples)) * hammingGain)
	}

	group := len(raw) / bins
	if group < 1 {
		group = 1
	}
	for b := 0; b < bins; b++ {
		start := b * group
		if start >= len(raw) {
			break
		}
		end := start + group
		if end > len(raw) {
			end = len(raw)
		}
		sum := 0.0
		for _, m := range raw[start:end] {
			sum += m
		}
		v := sum / float64(end-start)
		if v > 1.0 {
			v = 1.0
		}
		out[b] = v
	}

	return out
}

// applyHammingWindow tapers the sample window in place to reduce
// spectral leakage: w(n) = 0.54 - 0.46*cos(2*pi*n/(N-1)).
func applyHammingWindow(samples []float64) {
	n := len(samples)
	for i := range samples {
		w := 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		samples[i] *= w
	}
}
