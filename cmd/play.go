package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/danielrosehill/voicenote/internal/audio"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play back a saved voice note",
	Long:  `Play a saved voice note on the default output device. Ctrl+C stops playback.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := audio.PlayFile(ctx, path); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
		return nil
	},
}
