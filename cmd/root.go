package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/facemark/attendance-portal/internal/backend"
	"github.com/facemark/attendance-portal/internal/camera"
	"github.com/facemark/attendance-portal/internal/config"
	"github.com/facemark/attendance-portal/internal/portal"
)

var rootCmd = &cobra.Command{
	Use:   "attendance-portal",
	Short: "A client for the face recognition attendance service",
	Long: `Attendance Portal is the client-side controller for a face recognition
attendance service. It drives a local webcam for enrollment and attendance
marking, talks to the recognition service over HTTP, and serves a
browser-based kiosk UI for students, teachers and administrators.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// newPortal assembles the portal against the configured service and webcam.
func newPortal(cfg *config.Config) (*portal.Portal, error) {
	client, err := backend.New(cfg.Backend.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_URL: %w", err)
	}
	cam := camera.NewController(camera.NewWebcamSource(cfg.Camera))
	return portal.New(client, cam, cfg.Camera), nil
}
