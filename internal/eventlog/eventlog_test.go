// ABOUTME: Tests for the structured event log
// ABOUTME: Verifies sink output, ordering, and tail bounds
package eventlog

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestEmitWritesToSink(t *testing.T) {
	var sink bytes.Buffer
	l := New(&sink)

	l.Emit(KindDecoded, "48000 frames at 24000Hz")

	out := sink.String()
	if !strings.Contains(out, "Decoded") {
		t.Errorf("log output missing kind: %q", out)
	}
	if !strings.Contains(out, "48000 frames") {
		t.Errorf("log output missing detail: %q", out)
	}
}

func TestTailNewestFirst(t *testing.T) {
	l := New(&bytes.Buffer{})

	l.Emit(KindDecoded, "first")
	l.Emit(KindEncoded, "second")
	l.Emit(KindPlaybackStarted, "third")

	tail := l.Tail(2)
	if len(tail) != 2 {
		t.Fatalf("expected 2 events, got %d", len(tail))
	}
	if tail[0].Kind != KindPlaybackStarted || tail[1].Kind != KindEncoded {
		t.Errorf("tail out of order: %v, %v", tail[0].Kind, tail[1].Kind)
	}
	if tail[0].At.IsZero() {
		t.Error("event missing timestamp")
	}
}

func TestTailBounded(t *testing.T) {
	l := New(&bytes.Buffer{})

	for i := 0; i < 250; i++ {
		l.Emit(KindDecoded, fmt.Sprintf("event %d", i))
	}

	if got := len(l.Tail(1000)); got != 100 {
		t.Errorf("tail holds %d events, want 100", got)
	}
	if got := l.Tail(1)[0].Detail; got != "event 249" {
		t.Errorf("newest event = %q, want event 249", got)
	}
}

func TestErrorfUsesErrorKind(t *testing.T) {
	var sink bytes.Buffer
	l := New(&sink)

	l.Errorf(fmt.Errorf("generation blocked by safety filter"))

	tail := l.Tail(1)
	if tail[0].Kind != KindError {
		t.Errorf("kind = %v, want Error", tail[0].Kind)
	}
	if !strings.Contains(sink.String(), "level=error") {
		t.Errorf("expected error level in output: %q", sink.String())
	}
}
