package cmd

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/danielrosehill/voicenote/internal/config"
	"github.com/danielrosehill/voicenote/internal/service"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
	Long:  `View and manage Voicenote settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Load(settingsPath)
		out, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("error marshaling settings: %w", err)
		}
		fmt.Printf("# %s\n%s", settingsPath, string(out))
		return nil
	},
}

var configSaveDirCmd = &cobra.Command{
	Use:   "save-dir <directory>",
	Short: "Set the default save directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.New(settingsPath)
		svc.SetSaveDirectory(args[0])
		fmt.Printf("Default save directory set to %s\n", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveDirCmd)
}
