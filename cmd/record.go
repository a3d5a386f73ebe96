package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/danielrosehill/voicenote/internal/audio"
	"github.com/danielrosehill/voicenote/internal/service"

	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a voice note from the terminal",
	Long: `Record a voice note interactively. Capture starts immediately and a
level meter is printed while recording.

Controls: 'p'+Enter pauses, 'r'+Enter resumes, 's'+Enter or Ctrl+C stops
and saves to the default save directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.New(settingsPath)
		if dir, _ := cmd.Flags().GetString("output"); dir != "" {
			svc.SetSaveDirectory(dir)
		}
		rec := svc.Recorder()

		if err := rec.Start(); err != nil {
			return err
		}
		profile := rec.Quality()
		fmt.Printf("Recording (%s, %d Hz, %d-bit). p=pause r=resume s=stop\n",
			profile.Name, profile.SampleRate, profile.BitDepth())

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		keyChan := make(chan string)
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				keyChan <- strings.TrimSpace(scanner.Text())
			}
		}()

		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()

	loop:
		for {
			select {
			case <-ticker.C:
				fmt.Printf("\r%-9s %6.1fs  %6.1f dB   ",
					rec.State(), rec.Duration(), rec.Level())
			case key := <-keyChan:
				switch key {
				case "p":
					rec.Pause()
				case "r":
					rec.Resume()
				case "s":
					break loop
				}
			case <-sigChan:
				break loop
			}
		}
		fmt.Println()

		rec.Stop()
		if rec.Duration() == 0 {
			rec.Clear()
			fmt.Println("Nothing recorded, discarding.")
			return nil
		}

		path, err := svc.SaveToDefault()
		if err != nil {
			return fmt.Errorf("failed to save voice note: %w", err)
		}
		fmt.Printf("Saved %s (%.1fs)\n", path, wavDuration(path))
		return nil
	},
}

// wavDuration re-reads the saved file's duration for the confirmation line.
func wavDuration(path string) float64 {
	d, err := audio.FileDuration(path)
	if err != nil {
		return 0
	}
	return d.Seconds()
}

func init() {
	recordCmd.Flags().StringP("output", "o", "", "save directory (overrides settings)")
}
