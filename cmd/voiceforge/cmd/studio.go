// ABOUTME: Interactive studio subcommand
// ABOUTME: Runs the terminal UI with live audio output
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/render"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/ui"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/output"
)

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Run the interactive terminal studio",
	Long: `Runs the terminal studio: pick a voice profile, edit a script,
generate speech, and play it back with a live spectrum display.`,
	RunE: runStudio,
}

func init() {
	rootCmd.AddCommand(studioCmd)
}

func runStudio(cmd *cobra.Command, args []string) error {
	st, cfg, _, cleanup, err := buildStudio(output.NewOto())
	if err != nil {
		return err
	}
	defer cleanup()

	rcfg := render.Config{
		Width:  cfg.SurfaceWidth,
		Height: cfg.SurfaceHeight,
		Bars:   cfg.Bars,
	}
	return ui.Run(st, rcfg)
}
