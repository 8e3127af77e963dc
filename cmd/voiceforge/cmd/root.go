// ABOUTME: Root cobra command and shared studio bootstrap
// ABOUTME: Wires config, storage, synthesis, and playback for all subcommands
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/config"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/eventlog"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/metrics"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/playback"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/profile"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/studio"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/tts"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/output"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/spectrum"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "voiceforge",
	Short: "VoiceForge Studio - design voices and generate speech",
	Long: `VoiceForge Studio turns scripts into speech using configurable
voice profiles.

Commands:
  studio   - interactive terminal studio with live spectrum display
  serve    - HTTP API for profiles, generation, and export
  synth    - one-shot synthesis to a WAV file`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./voiceforge.toml)")
}

// buildStudio assembles a studio instance on top of the given sink.
// The returned cleanup closes the studio and the profile store.
func buildStudio(sink output.Sink) (*studio.Studio, config.Config, *prometheus.Registry, func(), error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("voiceforge.toml"); err == nil {
			path = "voiceforge.toml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, cfg, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := profile.NewStore(cfg.DBPath)
	if err != nil {
		return nil, cfg, nil, nil, fmt.Errorf("failed to open profile store: %w", err)
	}

	var logOut io.Writer = os.Stderr
	var logFile *os.File
	if cfg.LogFile != "" {
		logFile, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			logOut = logFile
		}
	}

	reg := prometheus.NewRegistry()
	synth := tts.NewClient(tts.Config{
		APIKey:   cfg.APIKey,
		Endpoint: cfg.Endpoint,
		Model:    cfg.Model,
		Voice:    cfg.Voice,
	})
	controller := playback.New(sink, spectrum.NewTap(cfg.Bars))
	st := studio.New(cfg, synth, store, controller, eventlog.New(logOut), metrics.New(reg))

	cleanup := func() {
		st.Close()
		store.Close()
		if logFile != nil {
			logFile.Close()
		}
	}
	return st, cfg, reg, cleanup, nil
}
