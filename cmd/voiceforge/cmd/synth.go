// ABOUTME: One-shot synthesis subcommand
// ABOUTME: Generates speech for a script and writes a WAV file
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/encode"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/output"
)

var (
	synthProfile string
	synthScript  string
	synthOut     string
	synthStream  bool
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Generate speech for a script and save it as WAV",
	RunE:  runSynth,
}

func init() {
	synthCmd.Flags().StringVar(&synthProfile, "profile", "", "voice profile ID or name (required)")
	synthCmd.Flags().StringVar(&synthScript, "script", "", "text to speak (required)")
	synthCmd.Flags().StringVar(&synthOut, "out", "", "output path (default: auto-named in the current directory)")
	synthCmd.Flags().BoolVar(&synthStream, "stream", false, "use the streaming synthesis endpoint")
	synthCmd.MarkFlagRequired("profile")
	synthCmd.MarkFlagRequired("script")
	rootCmd.AddCommand(synthCmd)
}

func runSynth(cmd *cobra.Command, args []string) error {
	st, _, _, cleanup, err := buildStudio(output.NewNull())
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	id := synthProfile
	if _, err := st.UseProfile(ctx, id); err != nil {
		// Fall back to matching by name.
		matches, serr := st.Profiles().Search(ctx, synthProfile)
		if serr != nil || len(matches) == 0 {
			return fmt.Errorf("profile %q not found", synthProfile)
		}
		if _, err := st.UseProfile(ctx, matches[0].ID); err != nil {
			return err
		}
	}

	generate := st.Generate
	if synthStream {
		generate = st.GenerateStream
	}
	buf, err := generate(ctx, synthScript)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	name, data, err := st.Export(encode.FormatWAV)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path := synthOut
	if path == "" {
		path = name
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s (%.2fs of audio)\n", path, buf.Duration().Seconds())
	return nil
}
