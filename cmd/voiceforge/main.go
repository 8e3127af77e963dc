// ABOUTME: Entry point for the voiceforge binary
// ABOUTME: Dispatches to the cobra command tree
package main

import (
	"os"

	"github.com/VoiceForge-Studio/voiceforge-go/cmd/voiceforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
