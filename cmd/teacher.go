package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/facemark/attendance-portal/internal/config"
)

var teacherCmd = &cobra.Command{
	Use:   "teacher",
	Short: "Teacher panel commands",
}

var teacherCreatePinCmd = &cobra.Command{
	Use:   "create-pin <name> <teacher-id> <pin>",
	Short: "Register a teacher login PIN",
	Args:  cobra.ExactArgs(3),
	RunE:  runTeacherCreatePin,
}

var teacherAttendanceCmd = &cobra.Command{
	Use:   "attendance <teacher-id> <pin>",
	Short: "Show attendance records for a teacher",
	Long: `Log in with a teacher ID and PIN and print the attendance records.
Use --date to narrow the listing to a single day.

Example:
  attendance-portal teacher attendance T42 1234
  attendance-portal teacher attendance T42 1234 --date 2026-08-31`,
	Args: cobra.ExactArgs(2),
	RunE: runTeacherAttendance,
}

func init() {
	rootCmd.AddCommand(teacherCmd)
	teacherCmd.AddCommand(teacherCreatePinCmd)
	teacherCmd.AddCommand(teacherAttendanceCmd)

	teacherAttendanceCmd.Flags().String("date", "", "Filter to a single date (YYYY-MM-DD)")
}

func runTeacherCreatePin(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	p, err := newPortal(cfg)
	if err != nil {
		return err
	}

	if err := p.Teacher.CreatePin(cmd.Context(), args[0], args[1], args[2]); err != nil {
		return fmt.Errorf("failed to create PIN: %w", err)
	}
	fmt.Println(p.Teacher.Message)
	return nil
}

func runTeacherAttendance(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	p, err := newPortal(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := p.Teacher.Login(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if !p.Teacher.Authenticated {
		fmt.Println(p.Teacher.Message)
		return nil
	}

	if date := mustGetString(cmd, "date"); date != "" {
		if err := p.Teacher.FetchAttendance(ctx, date); err != nil {
			return fmt.Errorf("failed to fetch attendance: %w", err)
		}
	}

	fmt.Println(p.Teacher.Message)
	if p.Teacher.Table.Empty() {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, col := range p.Teacher.Table.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)
	for i := range p.Teacher.Table.Rows {
		for j, col := range p.Teacher.Table.Columns {
			if j > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, p.Teacher.Table.Cell(i, col))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
