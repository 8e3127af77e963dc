// ABOUTME: Tests for the PCM16 payload decoder
// ABOUTME: Covers length invariants, interleaving, and failure modes
package decode

import (
	"encoding/base64"
	"errors"
	"math/rand"
	"testing"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio"
)

func monoFormat() audio.Format {
	return audio.Format{SampleRate: 24000, Channels: 1, BitDepth: 16}
}

func TestNewPCM(t *testing.T) {
	tests := []struct {
		name    string
		format  audio.Format
		wantErr bool
	}{
		{"valid mono", audio.Format{SampleRate: 24000, Channels: 1, BitDepth: 16}, false},
		{"valid stereo no depth", audio.Format{SampleRate: 48000, Channels: 2}, false},
		{"zero sample rate", audio.Format{SampleRate: 0, Channels: 1}, true},
		{"zero channels", audio.Format{SampleRate: 24000, Channels: 0}, true},
		{"unsupported depth", audio.Format{SampleRate: 24000, Channels: 1, BitDepth: 24}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPCM(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPCM() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeMono(t *testing.T) {
	dec, err := NewPCM(monoFormat())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// 0x0100 = 256, 0x8000 = -32768
	input := []byte{0x00, 0x01, 0x00, 0x80}
	buf, err := dec.Decode(input)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if buf.SampleRate != 24000 {
		t.Errorf("expected sample rate 24000, got %d", buf.SampleRate)
	}
	if buf.NumChannels() != 1 {
		t.Fatalf("expected 1 channel, got %d", buf.NumChannels())
	}
	if buf.FrameCount() != 2 {
		t.Fatalf("expected 2 frames, got %d", buf.FrameCount())
	}
	if got, want := buf.Channels[0][0], 256.0/32768.0; got != want {
		t.Errorf("frame 0: got %v, want %v", got, want)
	}
	if got := buf.Channels[0][1]; got != -1.0 {
		t.Errorf("frame 1: got %v, want -1.0", got)
	}
}

func TestDecodeDeinterleavesStereo(t *testing.T) {
	dec, err := NewPCM(audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16})
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// Frames: (1, 2), (3, 4) as raw int16 values.
	input := []byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04, 0x00}
	buf, err := dec.Decode(input)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if buf.FrameCount() != 2 {
		t.Fatalf("expected 2 frames, got %d", buf.FrameCount())
	}

	left := []float64{1.0 / 32768.0, 3.0 / 32768.0}
	right := []float64{2.0 / 32768.0, 4.0 / 32768.0}
	for i := range left {
		if buf.Channels[0][i] != left[i] {
			t.Errorf("left[%d]: got %v, want %v", i, buf.Channels[0][i], left[i])
		}
		if buf.Channels[1][i] != right[i] {
			t.Errorf("right[%d]: got %v, want %v", i, buf.Channels[1][i], right[i])
		}
	}
}

func TestDecodeOddLengthFails(t *testing.T) {
	dec, err := NewPCM(monoFormat())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	for _, n := range []int{1, 3, 5, 999} {
		if _, err := dec.Decode(make([]byte, n)); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("length %d: expected ErrMalformedPayload, got %v", n, err)
		}
	}
}

func TestDecodeChannelMismatch(t *testing.T) {
	dec, err := NewPCM(audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16})
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// Three samples cannot split across two channels.
	if _, err := dec.Decode(make([]byte, 6)); !errors.Is(err, ErrChannelMismatch) {
		t.Errorf("expected ErrChannelMismatch, got %v", err)
	}
}

func TestDecodeLengthInvariant(t *testing.T) {
	// For any even-length input, frames * channels * 2 == len(input).
	rng := rand.New(rand.NewSource(1))
	dec, err := NewPCM(monoFormat())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	for trial := 0; trial < 20; trial++ {
		n := rng.Intn(4096) * 2
		data := make([]byte, n)
		rng.Read(data)

		buf, err := dec.Decode(data)
		if err != nil {
			t.Fatalf("decode failed for %d bytes: %v", n, err)
		}
		if got := buf.FrameCount() * buf.NumChannels() * 2; got != n {
			t.Errorf("length invariant broken: %d bytes in, %d accounted", n, got)
		}
	}
}

func TestPayloadBase64(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0xFF, 0x7F, 0x00, 0x80})
	buf, err := Payload(payload, monoFormat())
	if err != nil {
		t.Fatalf("payload decode failed: %v", err)
	}
	if got, want := buf.Channels[0][0], 32767.0/32768.0; got != want {
		t.Errorf("frame 0: got %v, want %v", got, want)
	}
	if got := buf.Channels[0][1]; got != -1.0 {
		t.Errorf("frame 1: got %v, want -1.0", got)
	}
}

func TestPayloadBadBase64(t *testing.T) {
	if _, err := Payload("not/base64!!", monoFormat()); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload for bad base64, got %v", err)
	}
}
