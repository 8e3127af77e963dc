// ABOUTME: HTTP API subcommand
// ABOUTME: Serves profiles, generation, playback, and export endpoints
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/httpserver"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/output"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serves the studio over HTTP: profile CRUD, speech generation,
playback control, WAV export, and Prometheus metrics at /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	st, cfg, reg, cleanup, err := buildStudio(output.NewOto())
	if err != nil {
		return err
	}
	defer cleanup()

	addr := serveAddr
	if addr == "" {
		addr = cfg.HTTPAddr
	}

	fmt.Printf("VoiceForge API listening on %s\n", addr)
	return httpserver.New(st, reg).Run(addr)
}
