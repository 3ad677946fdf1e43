package portal

import (
	"context"
	"errors"

	"github.com/facemark/attendance-portal/internal/backend"
)

// ErrNotAuthenticated is returned when an operation requires a logged-in
// session.
var ErrNotAuthenticated = errors.New("not logged in")

// AttendanceTable is a rendered attendance listing. Rows are maps keyed by
// column name; a missing key renders as an empty cell, never as an error.
type AttendanceTable struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// Empty reports whether there is nothing to render.
func (t AttendanceTable) Empty() bool {
	return len(t.Rows) == 0
}

// Cell reads one cell, tolerating rows that lack the column.
func (t AttendanceTable) Cell(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][column]
}

// TeacherSession manages the teacher panel: PIN login, attendance viewing
// with an optional date filter, and PIN registration. Each fetch replaces
// the table wholesale; there is no merging or caching across fetches.
type TeacherSession struct {
	backend *backend.Client

	Authenticated bool
	TeacherID     string
	Date          string
	Table         AttendanceTable
	Message       string
}

// NewTeacherSession wires a logged-out session against the service client.
func NewTeacherSession(client *backend.Client) *TeacherSession {
	return &TeacherSession{backend: client}
}

// Login checks the teacher ID/PIN pair against the service. Authentication
// is decided by the status prefix; a successful login immediately fetches
// the full unfiltered attendance for that teacher.
func (t *TeacherSession) Login(ctx context.Context, teacherID, pin string) error {
	if teacherID == "" || pin == "" {
		t.Message = "❌ Please enter Teacher ID and PIN"
		return ErrMissingIdentity
	}

	resp, err := t.backend.TeacherLogin(ctx, teacherID, pin)
	if err != nil {
		t.Message = "❌ Error logging in"
		return err
	}

	t.Message = resp.Status
	if !statusOK(resp.Status) {
		return nil
	}

	t.Authenticated = true
	t.TeacherID = resp.TeacherID
	return t.FetchAttendance(ctx, "")
}

// FetchAttendance loads attendance rows for the logged-in teacher, filtered
// to one date when date is non-empty (YYYY-MM-DD). The previous table is
// replaced whatever the outcome shape: a status-only answer clears it.
func (t *TeacherSession) FetchAttendance(ctx context.Context, date string) error {
	if !t.Authenticated {
		return ErrNotAuthenticated
	}
	t.Date = date

	resp, err := t.backend.TeacherAttendance(ctx, t.TeacherID, date)
	if err != nil {
		t.Message = "❌ Error fetching attendance"
		return err
	}

	t.Message = resp.Status
	if resp.Attendance == nil {
		t.Table = AttendanceTable{}
		return nil
	}
	t.Table = AttendanceTable{Columns: resp.Columns, Rows: resp.Attendance}
	return nil
}

// CreatePin registers a login PIN for a teacher. Independent of the session;
// it neither requires nor establishes a login.
func (t *TeacherSession) CreatePin(ctx context.Context, name, teacherID, pin string) error {
	if name == "" || teacherID == "" || pin == "" {
		t.Message = "❌ Please enter Name, Teacher ID and PIN"
		return ErrMissingIdentity
	}

	resp, err := t.backend.CreateTeacherPIN(ctx, name, teacherID, pin)
	if err != nil {
		t.Message = "❌ Error creating PIN"
		return err
	}
	t.Message = resp.Status
	return nil
}

// Logout drops the authentication, the loaded table and the message.
func (t *TeacherSession) Logout() {
	t.Authenticated = false
	t.TeacherID = ""
	t.Date = ""
	t.Table = AttendanceTable{}
	t.Message = ""
}
