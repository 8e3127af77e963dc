// ABOUTME: HTTP client for the speech generation API
// ABOUTME: Sends synthesis prompts and returns base64-encoded PCM audio
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/profile"
)

var (
	// ErrSafetyBlocked is returned when the API refuses a prompt on safety grounds.
	ErrSafetyBlocked = errors.New("tts: generation blocked by safety filter")

	// ErrEmptyAudio is returned when a successful response carries no audio payload.
	ErrEmptyAudio = errors.New("tts: response contained no audio data")
)

// Synthesizer produces base64-encoded PCM audio for a script spoken in a profile's voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, script string, p *profile.Profile) (string, error)
}

// Config holds client configuration
type Config struct {
	APIKey   string
	Endpoint string
	Model    string
	Voice    string
	Timeout  time.Duration
}

// Client calls the generateContent endpoint over HTTP.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a synthesis client. A zero Timeout defaults to 30 seconds.
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities"`
	SpeechConfig       speechConfig `json:"speechConfig"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Synthesize builds the prompt for script and profile, calls the API,
// and returns the base64-encoded PCM16 payload.
func (c *Client) Synthesize(ctx context.Context, script string, p *profile.Profile) (string, error) {
	prompt := BuildPrompt(script, p)

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: c.config.Voice},
				},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.config.Endpoint, c.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var gen generateResponse
	if err := json.Unmarshal(data, &gen); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if gen.Error != nil {
		return "", fmt.Errorf("api error %d (%s): %s", gen.Error.Code, gen.Error.Status, gen.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if len(gen.Candidates) == 0 {
		return "", ErrEmptyAudio
	}

	cand := gen.Candidates[0]
	if cand.FinishReason == "SAFETY" {
		return "", ErrSafetyBlocked
	}
	for _, part := range cand.Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return part.InlineData.Data, nil
		}
	}
	return "", ErrEmptyAudio
}
