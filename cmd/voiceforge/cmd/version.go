// ABOUTME: Version subcommand
// ABOUTME: Prints product name and version
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s v%s\n", version.Product, version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
