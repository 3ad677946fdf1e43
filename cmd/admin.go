package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/facemark/attendance-portal/internal/backend"
	"github.com/facemark/attendance-portal/internal/config"
	"github.com/facemark/attendance-portal/internal/portal"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin panel commands",
}

var adminStudentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List the student directory",
	Args:  cobra.NoArgs,
	RunE:  runAdminStudents,
}

var adminTeachersCmd = &cobra.Command{
	Use:   "teachers",
	Short: "List the teacher directory",
	Args:  cobra.NoArgs,
	RunE:  runAdminTeachers,
}

var adminDeleteStudentCmd = &cobra.Command{
	Use:   "delete-student <enrollment-id>",
	Short: "Delete every attendance record for an enrollment ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDeleteStudent,
}

var adminDeleteTeacherCmd = &cobra.Command{
	Use:   "delete-teacher <teacher-id>",
	Short: "Delete a teacher record",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDeleteTeacher,
}

var adminUpdateStudentCmd = &cobra.Command{
	Use:   "update-student <record-id> <name> <enrollment-id>",
	Short: "Rewrite the name and enrollment ID of an attendance record",
	Args:  cobra.ExactArgs(3),
	RunE:  runAdminUpdateStudent,
}

var adminUpdateTeacherCmd = &cobra.Command{
	Use:   "update-teacher <record-id> <name> <teacher-id> <pin>",
	Short: "Rewrite a teacher record",
	Args:  cobra.ExactArgs(4),
	RunE:  runAdminUpdateTeacher,
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminStudentsCmd)
	adminCmd.AddCommand(adminTeachersCmd)
	adminCmd.AddCommand(adminDeleteStudentCmd)
	adminCmd.AddCommand(adminDeleteTeacherCmd)
	adminCmd.AddCommand(adminUpdateStudentCmd)
	adminCmd.AddCommand(adminUpdateTeacherCmd)

	adminCmd.PersistentFlags().String("username", "", "Admin username (or ADMIN_USERNAME)")
	adminCmd.PersistentFlags().String("password", "", "Admin password (or ADMIN_PASSWORD)")
	adminStudentsCmd.Flags().String("filter", "", "Filter by enrollment ID substring")
	adminTeachersCmd.Flags().String("filter", "", "Filter by teacher ID substring")
}

// adminLogin builds a portal and logs the admin session in, falling back to
// ADMIN_USERNAME/ADMIN_PASSWORD when flags are empty.
func adminLogin(ctx context.Context, cmd *cobra.Command) (*portal.Portal, error) {
	username := mustGetString(cmd, "username")
	password := mustGetString(cmd, "password")
	if username == "" {
		username = os.Getenv("ADMIN_USERNAME")
	}
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}

	cfg := config.Load()
	p, err := newPortal(cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Admin.Login(ctx, username, password); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if !p.Admin.Authenticated {
		return nil, fmt.Errorf("login rejected: %s", p.Admin.Message)
	}
	return p, nil
}

func runAdminStudents(cmd *cobra.Command, args []string) error {
	p, err := adminLogin(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	p.Admin.StudentFilter = mustGetString(cmd, "filter")

	students := p.Admin.Students()
	if len(students) == 0 {
		fmt.Println("No students found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tENROLLMENT ID\tDATE\tTIME")
	for _, s := range students {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.EnrollmentID, s.Date, s.Time)
	}
	return w.Flush()
}

func runAdminTeachers(cmd *cobra.Command, args []string) error {
	p, err := adminLogin(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	p.Admin.TeacherFilter = mustGetString(cmd, "filter")

	teachers := p.Admin.Teachers()
	if len(teachers) == 0 {
		fmt.Println("No teachers found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTEACHER ID\tNAME\tPIN")
	for _, t := range teachers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.TeacherID, t.Name, t.PIN)
	}
	return w.Flush()
}

func runAdminDeleteStudent(cmd *cobra.Command, args []string) error {
	p, err := adminLogin(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	if err := p.Admin.DeleteStudent(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	fmt.Println(p.Admin.Message)
	return nil
}

func runAdminDeleteTeacher(cmd *cobra.Command, args []string) error {
	p, err := adminLogin(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	if err := p.Admin.DeleteTeacher(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	fmt.Println(p.Admin.Message)
	return nil
}

func runAdminUpdateStudent(cmd *cobra.Command, args []string) error {
	p, err := adminLogin(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	if err := p.Admin.UpdateStudent(cmd.Context(), backend.RecordID(args[0]), args[1], args[2]); err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	fmt.Println(p.Admin.Message)
	return nil
}

func runAdminUpdateTeacher(cmd *cobra.Command, args []string) error {
	p, err := adminLogin(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	if err := p.Admin.UpdateTeacher(cmd.Context(), backend.RecordID(args[0]), args[1], args[2], args[3]); err != nil {
		return fmt.Errorf("failed to update teacher: %w", err)
	}
	fmt.Println(p.Admin.Message)
	return nil
}
