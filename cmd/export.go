package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/facemark/attendance-portal/internal/config"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export attendance records to a CSV file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "attendance.csv", "Output file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	p, err := newPortal(cfg)
	if err != nil {
		return err
	}

	data, err := p.Student.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if data == nil {
		// Nothing to export; the service said why.
		fmt.Println(p.Student.Message)
		return nil
	}

	output := mustGetString(cmd, "output")
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(data), output)
	return nil
}
