// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the studio UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/render"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/studio"
)

// Run starts the TUI and blocks until the user quits.
func Run(st *studio.Studio, cfg render.Config) error {
	p := tea.NewProgram(NewModel(st, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
