// ABOUTME: Prompt construction for voice synthesis requests
// ABOUTME: Translates profile settings into natural-language performance directions
package tts

import (
	"fmt"
	"strings"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/profile"
)

// BuildPrompt renders a synthesis prompt for the given script and profile.
// The TTS API exposes no direct knobs for speed, pitch, or emotion, so the
// profile settings are expressed as performance directions in the prompt text.
func BuildPrompt(script string, p *profile.Profile) string {
	var parts []string

	if p.Description != "" {
		parts = append(parts, fmt.Sprintf("In the voice of %s,", p.Description))
	}
	if p.Vibe != "" {
		parts = append(parts, fmt.Sprintf("speaking in a %s style,", strings.ToLower(p.Vibe)))
	}

	s := p.Settings
	if s.Speed < 0.9 {
		parts = append(parts, "speaking slowly")
	}
	if s.Speed > 1.1 {
		parts = append(parts, "speaking quickly")
	}
	if s.Pitch < 0.9 {
		parts = append(parts, "with a low pitch")
	}
	if s.Pitch > 1.1 {
		parts = append(parts, "with a high pitch")
	}
	if s.EmotionalDepth > 0.7 {
		parts = append(parts, "with deep emotion")
	}
	if s.Clarity > 0.8 {
		parts = append(parts, "with clear articulation")
	}
	if s.BreathingLevel > 0.5 {
		parts = append(parts, "with audible breathing")
	}

	parts = append(parts, fmt.Sprintf("say: %q", script))

	return strings.Join(parts, " ")
}
