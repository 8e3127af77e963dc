// ABOUTME: Sample import subcommand
// ABOUTME: Decodes an audio file and optionally plays it back
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/output"
)

var importPlay bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a WAV, MP3, or FLAC sample into the studio",
	Long: `Decodes an audio file into the studio's sample buffer. Useful for
checking reference samples before attaching them to a voice profile.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importPlay, "play", false, "play the sample after decoding")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	sink := output.Sink(output.NewNull())
	if importPlay {
		sink = output.NewOto()
	}

	st, _, _, cleanup, err := buildStudio(sink)
	if err != nil {
		return err
	}
	defer cleanup()

	buf, err := st.ImportSample(args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Loaded %s: %.2fs, %d Hz, %d channel(s)\n",
		args[0], buf.Duration().Seconds(), buf.SampleRate, buf.NumChannels())

	if importPlay {
		st.Play()
		for st.Controller().IsPlaying() {
			time.Sleep(100 * time.Millisecond)
		}
	}
	return nil
}
