// ABOUTME: WebSocket client for streaming speech synthesis
// ABOUTME: Handles connection, synthesis requests, and chunked audio delivery
package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/profile"
)

// AudioChunk is one PCM16 fragment of a streamed synthesis response.
type AudioChunk struct {
	Seq  int    // Chunk index within the response
	Data []byte // Raw little-endian PCM16
}

// streamRequest is the JSON frame that starts a synthesis stream.
type streamRequest struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
	Voice  string `json:"voice"`
	Model  string `json:"model"`
}

// streamStatus is a JSON control frame from the server.
type streamStatus struct {
	Type   string `json:"type"`
	Reason string `json:"reason,omitempty"`
}

// StreamClient speaks the streaming synthesis protocol over a WebSocket.
// Audio arrives as binary frames; control messages as JSON text frames.
type StreamClient struct {
	config Config
	conn   *websocket.Conn
	mu     sync.RWMutex

	// Chunks receives audio fragments in order; closed when the stream ends.
	Chunks chan AudioChunk

	// Done receives nil on normal completion or the terminal error.
	Done chan error

	connected bool
	seq       int
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewStreamClient creates a streaming synthesis client.
func NewStreamClient(config Config) *StreamClient {
	ctx, cancel := context.WithCancel(context.Background())

	return &StreamClient{
		config: config,
		Chunks: make(chan AudioChunk, 100),
		Done:   make(chan error, 1),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Connect establishes the WebSocket connection.
func (c *StreamClient) Connect() error {
	u, err := url.Parse(c.config.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = "/v1beta/stream"
	q := u.Query()
	q.Set("key", c.config.APIKey)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readMessages()

	return nil
}

// Synthesize sends a synthesis request; chunks arrive on the Chunks channel.
func (c *StreamClient) Synthesize(script string, p *profile.Profile) error {
	req := streamRequest{
		Type:   "synthesize",
		Prompt: BuildPrompt(script, p),
		Voice:  c.config.Voice,
		Model:  c.config.Model,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return fmt.Errorf("not connected")
	}
	c.seq = 0
	return c.conn.WriteJSON(req)
}

// readMessages reads and routes incoming frames until the connection closes.
func (c *StreamClient) readMessages() {
	defer c.Close()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case c.Done <- fmt.Errorf("read error: %w", err):
			default:
			}
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			c.handleAudioFrame(data)
		case websocket.TextMessage:
			if final := c.handleControlFrame(data); final {
				return
			}
		}
	}
}

func (c *StreamClient) handleAudioFrame(data []byte) {
	c.mu.Lock()
	seq := c.seq
	c.seq++
	c.mu.Unlock()

	chunk := AudioChunk{Seq: seq, Data: data}
	select {
	case c.Chunks <- chunk:
	case <-c.ctx.Done():
	}
}

// handleControlFrame processes a JSON frame and reports whether the stream is over.
func (c *StreamClient) handleControlFrame(data []byte) bool {
	var status streamStatus
	if err := json.Unmarshal(data, &status); err != nil {
		log.Printf("Failed to parse control frame: %v", err)
		return false
	}

	switch status.Type {
	case "done":
		select {
		case c.Done <- nil:
		default:
		}
		return true
	case "blocked":
		select {
		case c.Done <- ErrSafetyBlocked:
		default:
		}
		return true
	case "error":
		select {
		case c.Done <- fmt.Errorf("server error: %s", status.Reason):
		default:
		}
		return true
	default:
		log.Printf("Unknown control frame type: %s", status.Type)
		return false
	}
}

// Close tears down the connection and closes the Chunks channel.
func (c *StreamClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		c.connected = false
		c.cancel()
		c.conn.Close()
		close(c.Chunks)
	}
}

// IsConnected returns connection status
func (c *StreamClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}
