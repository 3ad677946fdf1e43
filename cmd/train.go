package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facemark/attendance-portal/internal/config"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the recognition model",
	Long: `Trigger model training over all enrolled folders on the recognition
service. This is a single blocking call and can take minutes.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	p, err := newPortal(cfg)
	if err != nil {
		return err
	}

	fmt.Println("Training recognition model (this can take minutes)...")
	if err := p.Student.Train(cmd.Context()); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	fmt.Println(p.Student.Message)
	return nil
}
