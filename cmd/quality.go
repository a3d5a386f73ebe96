package cmd

import (
	"fmt"

	"github.com/danielrosehill/voicenote/internal/quality"
	"github.com/danielrosehill/voicenote/internal/service"

	"github.com/spf13/cobra"
)

var qualityCmd = &cobra.Command{
	Use:   "quality [preset]",
	Short: "List quality presets or select one",
	Long: `List the available quality presets with their capture format and the
longest recording that fits under the target file-size cap.

With a preset argument (standard, extended, maximum), selects it for
future recordings and persists the choice.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.New(settingsPath)

		if len(args) == 1 {
			preset := quality.Preset(args[0])
			if err := svc.SetQuality(preset); err != nil {
				return fmt.Errorf("failed to set quality: %w", err)
			}
			fmt.Printf("Quality preset set to %s\n", preset)
			return nil
		}

		active := svc.Settings().QualityPreset
		for _, p := range quality.All() {
			marker := " "
			if string(p.Preset) == active {
				marker = "*"
			}
			fmt.Printf(" %s %-10s %d Hz, %d-bit: %s (max %s)\n",
				marker, p.Preset, p.SampleRate, p.BitDepth(), p.Description, p.MaxDuration)
		}
		fmt.Println("\n* = active preset")
		return nil
	},
}
