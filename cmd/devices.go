package cmd

import (
	"fmt"

	"github.com/danielrosehill/voicenote/internal/audio"
	"github.com/danielrosehill/voicenote/internal/service"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices [index]",
	Short: "List audio input devices or select one",
	Long: `List all available audio input devices. The system default is marked.

With an index argument, selects that device for future recordings and
persists the choice by name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := audio.ListInputDevices()
		if err != nil {
			return fmt.Errorf("failed to list input devices: %w", err)
		}

		if len(args) == 1 {
			return selectDevice(devices, args[0])
		}

		fmt.Printf("Input devices (%d found):\n", len(devices))
		for _, dev := range devices {
			marker := " "
			if dev.IsDefault {
				marker = "*"
			}
			fmt.Printf(" %s %d. %s (%d ch", marker, dev.Index, dev.Name, dev.Channels)
			if dev.SampleRate > 0 {
				fmt.Printf(", %d Hz", dev.SampleRate)
			}
			fmt.Println(")")
		}
		fmt.Println("\n* = system default")
		return nil
	},
}

func selectDevice(devices []audio.Device, arg string) error {
	var index int
	if _, err := fmt.Sscanf(arg, "%d", &index); err != nil {
		return fmt.Errorf("invalid device index %q", arg)
	}
	for _, dev := range devices {
		if dev.Index == index {
			svc := service.New(settingsPath)
			svc.SetDevice(dev.Index, dev.Name)
			fmt.Printf("Selected input device %d: %s\n", dev.Index, dev.Name)
			return nil
		}
	}
	return fmt.Errorf("no input device with index %d", index)
}
