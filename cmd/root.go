package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/danielrosehill/voicenote/internal/config"

	"github.com/spf13/cobra"
)

var (
	settingsPath string
	verboseLevel int
)

var rootCmd = &cobra.Command{
	Use:   "voicenote",
	Short: "Record short voice memos for speech-to-text upload",
	Long: `Voicenote records mono voice memos sized for speech-to-text services.

It captures from any input device, shows a live level meter, supports
pause/resume, and saves timestamped WAV files under a configurable
quality preset.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verboseLevel)

		if settingsPath == "" {
			settingsPath = config.DefaultPath()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "",
		fmt.Sprintf("settings file (default is %s)", filepath.Join("$HOME", ".config", "voicenote", "settings.json")))
	rootCmd.PersistentFlags().IntVarP(&verboseLevel, "verbose", "v", 0, "verbose level: 0=info, 1=debug")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(qualityCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// setupLogging configures slog based on the verbose level
func setupLogging(level int) {
	slogLevel := slog.LevelInfo
	if level >= 1 {
		slogLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
	}
	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
}
