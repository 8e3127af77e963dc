// ABOUTME: Bubbletea model for the studio TUI
// ABOUTME: Defines application state, key handling, and the spectrum redraw tick
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/profile"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/render"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/studio"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/version"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/encode"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// barGlyphs maps a bar height fraction to a terminal glyph.
var barGlyphs = []rune(" ▁▂▃▄▅▆▇█")

// tickMsg drives the spectrum redraw.
type tickMsg time.Time

// generateDoneMsg reports the outcome of an async generation.
type generateDoneMsg struct {
	frames int
	err    error
}

// Model represents the TUI state
type Model struct {
	studio *studio.Studio
	cfg    render.Config

	// Profiles
	profiles []*profile.Profile
	selected int

	// Script entry
	script  string
	editing bool

	// Status line
	status  string
	isError bool

	// Dimensions
	width  int
	height int
}

// NewModel creates a TUI model bound to a studio.
func NewModel(st *studio.Studio, cfg render.Config) Model {
	m := Model{
		studio: st,
		cfg:    cfg,
		script: "Welcome to the studio.",
	}
	m.profiles, _ = st.Profiles().List(context.Background())
	return m
}

// Init starts the redraw tick.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		return m, tick()
	case generateDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("generation failed: %v", msg.err)
			m.isError = true
		} else {
			m.status = fmt.Sprintf("generated %d frames, ready to play", msg.frames)
			m.isError = false
		}
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.studio.Stop()
		return m, tea.Quit
	case " ":
		if m.studio.Controller().IsPlaying() {
			m.studio.Stop()
			m.status = "stopped"
		} else {
			m.studio.Play()
			if m.studio.Controller().IsPlaying() {
				m.status = "playing"
			} else {
				m.status = "nothing loaded; generate first"
			}
		}
		m.isError = false
	case "g":
		return m.startGeneration()
	case "e":
		m.editing = true
	case "x":
		name, _, err := m.studio.Export(encode.FormatWAV)
		if err != nil {
			m.status = fmt.Sprintf("export failed: %v", err)
			m.isError = true
		} else {
			m.status = fmt.Sprintf("exported %s", name)
			m.isError = false
		}
	case "tab", "down":
		m.cycleProfile(1)
	case "shift+tab", "up":
		m.cycleProfile(-1)
	}

	return m, nil
}

// handleEditKey handles script entry mode.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.editing = false
	case tea.KeyBackspace:
		if len(m.script) > 0 {
			runes := []rune(m.script)
			m.script = string(runes[:len(runes)-1])
		}
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeySpace:
		m.script += " "
	case tea.KeyRunes:
		m.script += string(msg.Runes)
	}
	return m, nil
}

// cycleProfile moves the selection and activates the profile.
func (m *Model) cycleProfile(delta int) {
	if len(m.profiles) == 0 {
		m.status = "no profiles yet"
		m.isError = false
		return
	}

	m.selected = (m.selected + delta + len(m.profiles)) % len(m.profiles)
	p := m.profiles[m.selected]
	if _, err := m.studio.UseProfile(context.Background(), p.ID); err != nil {
		m.status = fmt.Sprintf("profile switch failed: %v", err)
		m.isError = true
		return
	}
	m.status = fmt.Sprintf("voice: %s", p.Name)
	m.isError = false
}

// startGeneration kicks off synthesis without blocking the UI loop.
func (m Model) startGeneration() (tea.Model, tea.Cmd) {
	if m.studio.ActiveProfile() == nil {
		m.status = "select a profile first (tab)"
		m.isError = true
		return m, nil
	}

	script := m.script
	st := m.studio
	m.status = "generating..."
	m.isError = false

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		buf, err := st.Generate(ctx, script)
		if err != nil {
			return generateDoneMsg{err: err}
		}
		return generateDoneMsg{frames: buf.FrameCount()}
	}
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s v%s", version.Product, version.Version)))
	b.WriteString("\n\n")

	b.WriteString(m.renderProfiles())
	b.WriteString("\n")
	b.WriteString(m.renderSpectrum())
	b.WriteString("\n")
	b.WriteString(m.renderScript())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab:Voice  e:Edit script  g:Generate  space:Play/Stop  x:Export  q:Quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderProfiles() string {
	if len(m.profiles) == 0 {
		return labelStyle.Render("Voice:  (none - create profiles via the API)") + "\n"
	}

	active := m.studio.ActiveProfile()
	var parts []string
	for _, p := range m.profiles {
		if active != nil && p.ID == active.ID {
			parts = append(parts, activeStyle.Render("["+p.Name+"]"))
		} else {
			parts = append(parts, labelStyle.Render(p.Name))
		}
	}
	return labelStyle.Render("Voice:  ") + strings.Join(parts, "  ") + "\n"
}

// renderSpectrum paints one bar glyph per renderer bar, scaled to its height.
func (m Model) renderSpectrum() string {
	mags := m.studio.Controller().Tap().Magnitudes()
	cmds := render.Frame(m.cfg, mags, m.studio.Controller().IsPlaying())

	glyphs := make([]rune, len(cmds))
	for i, cmd := range cmds {
		frac := cmd.Height / m.cfg.Height
		idx := int(frac * float64(len(barGlyphs)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(barGlyphs) {
			idx = len(barGlyphs) - 1
		}
		glyphs[i] = barGlyphs[idx]
	}

	state := m.studio.Controller().State().String()
	return barStyle.Render(string(glyphs)) + "  " + labelStyle.Render(state) + "\n"
}

func (m Model) renderScript() string {
	cursor := ""
	if m.editing {
		cursor = "▌"
	}
	return labelStyle.Render("Script: ") + m.script + cursor + "\n"
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return "\n"
	}
	if m.isError {
		return errorStyle.Render(m.status) + "\n"
	}
	return labelStyle.Render(m.status) + "\n"
}
