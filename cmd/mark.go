package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facemark/attendance-portal/internal/config"
)

var markCmd = &cobra.Command{
	Use:   "mark",
	Short: "Mark attendance by face recognition",
	Long: `Capture one webcam frame and submit it to the recognition service.
A recognized face marks attendance for the matched student.`,
	Args: cobra.NoArgs,
	RunE: runMark,
}

func init() {
	rootCmd.AddCommand(markCmd)
}

func runMark(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	p, err := newPortal(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := p.Student.OpenCamera(ctx); err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	defer p.Camera.Close() //nolint:errcheck

	if err := p.Student.MarkAttendance(ctx); err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}
	fmt.Println(p.Student.Message)
	return nil
}
