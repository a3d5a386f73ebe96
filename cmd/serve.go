package cmd

import (
	"fmt"
	"log/slog"

	"github.com/danielrosehill/voicenote/internal/server"
	"github.com/danielrosehill/voicenote/internal/service"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the control server for UI frontends",
	Long: `Start the JSON HTTP control server. UI shells poll GET /api/status for
state, duration and level, and drive the recorder through the POST
endpoints (start, pause, resume, stop, clear, save, quality, device).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")

		svc := service.New(settingsPath)
		srv := server.New(svc, port)

		slog.Info("Voicenote control server starting", "port", port, "settings", settingsPath)

		if err := srv.Start(); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "port for the control server")
}
