// ABOUTME: Tests for synthesis prompt construction
// ABOUTME: Verifies setting thresholds map to the right performance directions
package tts

import (
	"strings"
	"testing"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/profile"
)

func TestBuildPromptBasic(t *testing.T) {
	p := &profile.Profile{
		Name:        "Narrator",
		Description: "a warm, deep male narrator",
		Vibe:        "Documentary",
		Settings:    profile.DefaultSettings(),
	}

	got := BuildPrompt("Hello there.", p)
	want := `In the voice of a warm, deep male narrator, speaking in a documentary style, say: "Hello there."`
	if got != want {
		t.Errorf("prompt mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestBuildPromptModifiers(t *testing.T) {
	tests := []struct {
		name   string
		adjust func(*profile.Settings)
		want   string
	}{
		{"slow speed", func(s *profile.Settings) { s.Speed = 0.7 }, "speaking slowly"},
		{"fast speed", func(s *profile.Settings) { s.Speed = 1.5 }, "speaking quickly"},
		{"low pitch", func(s *profile.Settings) { s.Pitch = 0.8 }, "with a low pitch"},
		{"high pitch", func(s *profile.Settings) { s.Pitch = 1.2 }, "with a high pitch"},
		{"deep emotion", func(s *profile.Settings) { s.EmotionalDepth = 0.9 }, "with deep emotion"},
		{"clear articulation", func(s *profile.Settings) { s.Clarity = 0.95 }, "with clear articulation"},
		{"audible breathing", func(s *profile.Settings) { s.BreathingLevel = 0.6 }, "with audible breathing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &profile.Profile{
				Description: "a narrator",
				Vibe:        "Friendly",
				Settings:    profile.DefaultSettings(),
			}
			tt.adjust(&p.Settings)

			got := BuildPrompt("Test.", p)
			if !strings.Contains(got, tt.want) {
				t.Errorf("prompt %q missing %q", got, tt.want)
			}
		})
	}
}

func TestBuildPromptDefaultsAddNoModifiers(t *testing.T) {
	p := &profile.Profile{
		Description: "a narrator",
		Vibe:        "Friendly",
		Settings:    profile.DefaultSettings(),
	}

	got := BuildPrompt("Test.", p)
	for _, phrase := range []string{"slowly", "quickly", "pitch", "emotion", "articulation", "breathing"} {
		if strings.Contains(got, phrase) {
			t.Errorf("default settings produced modifier %q in %q", phrase, got)
		}
	}
}

func TestBuildPromptScriptLast(t *testing.T) {
	p := &profile.Profile{
		Description: "a narrator",
		Vibe:        "Dramatic",
		Settings:    profile.DefaultSettings(),
	}

	got := BuildPrompt("The end.", p)
	if !strings.HasSuffix(got, `say: "The end."`) {
		t.Errorf("script should come last: %q", got)
	}
}

func TestBuildPromptEmptyDescriptionAndVibe(t *testing.T) {
	p := &profile.Profile{Settings: profile.DefaultSettings()}

	got := BuildPrompt("Hi.", p)
	want := `say: "Hi."`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
