package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/facemark/attendance-portal/internal/config"
	"github.com/facemark/attendance-portal/internal/portal"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll <name> <enrollment-id>",
	Short: "Enroll a new student face",
	Long: `Enroll a new student: create their folder on the recognition service,
capture a sequence of webcam frames and upload them one by one.

The capture stops at the first failed upload; re-run the command to start a
fresh sequence. Pass --train to train the recognition model afterwards.

Example:
  attendance-portal enroll "Alice Novak" EN101
  attendance-portal enroll --train "Alice Novak" EN101`,
	Args: cobra.ExactArgs(2),
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)
	enrollCmd.Flags().Bool("train", false, "Train the recognition model after capturing")
}

func runEnroll(cmd *cobra.Command, args []string) error {
	name := args[0]
	enrollID := args[1]

	cfg := config.Load()
	p, err := newPortal(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := p.Student.CreateFolder(ctx, name, enrollID); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}
	fmt.Println(p.Student.Message)
	if p.Student.Identity.FolderToken == "" {
		// Service rejected the enrollment (duplicate, bad ID); message printed above.
		return nil
	}

	fmt.Printf("Opening camera %s...\n", cfg.Camera.Device)
	if err := p.Student.OpenCamera(ctx); err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	defer p.Camera.Close() //nolint:errcheck

	captureBar := progressbar.NewOptions(portal.TotalFrames,
		progressbar.OptionSetDescription("Capturing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	err = p.Student.CaptureFaces(ctx, func(saved, total int) {
		captureBar.Add(1) //nolint:errcheck
	})
	fmt.Println()
	if err != nil {
		fmt.Println(p.Student.Message)
		return fmt.Errorf("capture failed: %w", err)
	}
	fmt.Println(p.Student.Message)

	if mustGetBool(cmd, "train") {
		fmt.Println("Training recognition model (this can take minutes)...")
		if err := p.Student.Train(ctx); err != nil {
			return fmt.Errorf("training failed: %w", err)
		}
		fmt.Println(p.Student.Message)
	}

	return nil
}
