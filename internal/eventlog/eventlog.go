// ABOUTME: Structured event log for the audio pipeline
// ABOUTME: Emits timestamped Decoded/Encoded/Playback/Error events to a log sink
package eventlog

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Kind classifies a pipeline event.
type Kind string

const (
	// KindDecoded marks a payload successfully decoded to a sample buffer.
	KindDecoded Kind = "Decoded"

	// KindEncoded marks a sample buffer serialized for download.
	KindEncoded Kind = "Encoded"

	// KindPlaybackStarted marks a playback session start.
	KindPlaybackStarted Kind = "PlaybackStarted"

	// KindPlaybackStopped marks a playback session teardown (explicit or natural).
	KindPlaybackStopped Kind = "PlaybackStopped"

	// KindError marks any pipeline failure.
	KindError Kind = "Error"
)

// Event is one timestamped pipeline occurrence.
type Event struct {
	Kind   Kind
	Detail string
	At     time.Time
}

// Log fans events out to a structured logger and keeps a bounded in-memory
// tail for UI display, newest first.
type Log struct {
	mu     sync.Mutex
	logger *logrus.Logger
	tail   []Event
	limit  int
}

// New creates an event log writing to the given sink.
func New(out io.Writer) *Log {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	return &Log{
		logger: logger,
		limit:  100,
	}
}

// Emit records an event.
func (l *Log) Emit(kind Kind, detail string) {
	ev := Event{Kind: kind, Detail: detail, At: time.Now()}

	entry := l.logger.WithFields(logrus.Fields{
		"kind":   string(kind),
		"detail": detail,
	})
	if kind == KindError {
		entry.Error("pipeline event")
	} else {
		entry.Info("pipeline event")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.tail = append([]Event{ev}, l.tail...)
	if len(l.tail) > l.limit {
		l.tail = l.tail[:l.limit]
	}
}

// Errorf records an error event from an error value.
func (l *Log) Errorf(err error) {
	l.Emit(KindError, err.Error())
}

// Tail returns up to n recent events, newest first.
func (l *Log) Tail(n int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.tail) {
		n = len(l.tail)
	}
	out := make([]Event, n)
	copy(out, l.tail[:n])
	return out
}
