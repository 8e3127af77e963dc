// ABOUTME: Voice profile domain types
// ABOUTME: Defines profiles, tunable voice settings, and delivery vibes
package profile

import (
	"fmt"
	"time"
)

// Settings are the tunable voice parameters. Values outside language and
// accent are normalized ratios around 1.0 (speed, pitch) or in [0, 1].
type Settings struct {
	Language       string  `json:"language"`
	Speed          float64 `json:"speed"`
	Pitch          float64 `json:"pitch"`
	Temperature    float64 `json:"temperature"`
	EmotionalDepth float64 `json:"emotionalDepth"`
	Clarity        float64 `json:"clarity"`
	BreathingLevel float64 `json:"breathingLevel"`
	Stability      float64 `json:"stability"`
	Accent         string  `json:"accent"`
}

// DefaultSettings returns the settings a freshly created profile starts with.
func DefaultSettings() Settings {
	return Settings{
		Language:       "EN",
		Speed:          1.0,
		Pitch:          1.0,
		Temperature:    0.5,
		EmotionalDepth: 0.5,
		Clarity:        0.75,
		BreathingLevel: 0.1,
		Stability:      0.75,
		Accent:         "None",
	}
}

// Vibes is the closed set of delivery styles.
var Vibes = []string{
	"Dramatic", "Friendly", "Sincere", "Pirate", "Smooth Jazz DJ",
	"Whispering", "Emotional", "Documentary", "Motivational", "Villain",
	"News Anchor", "Calm Therapist", "Soft ASMR",
}

// ValidVibe reports whether v is a known delivery style.
func ValidVibe(v string) bool {
	for _, known := range Vibes {
		if v == known {
			return true
		}
	}
	return false
}

// Profile is one configured synthetic voice.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Vibe        string    `json:"vibe"`
	Folder      string    `json:"folder,omitempty"`
	Position    int       `json:"position"`
	Settings    Settings  `json:"settings"`
	SampleURL   string    `json:"audioSampleUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks profile fields before persistence.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name must not be empty")
	}
	if p.Vibe != "" && !ValidVibe(p.Vibe) {
		return fmt.Errorf("unknown vibe %q", p.Vibe)
	}
	return nil
}
