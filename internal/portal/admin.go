package portal

import (
	"context"
	"errors"

	"github.com/facemark/attendance-portal/internal/backend"
)

// ErrMissingID is returned when a directory mutation is attempted without a
// record identifier.
var ErrMissingID = errors.New("record identifier is required")

// AdminSession manages the admin panel: credential login, the student and
// teacher directories, and row deletion and editing. The directories are
// held raw as fetched; de-duplication and filtering happen in the view
// accessors so a re-fetch never loses information.
type AdminSession struct {
	backend *backend.Client

	Authenticated bool
	Message       string

	StudentFilter string
	TeacherFilter string

	students []backend.Student
	teachers []backend.Teacher
}

// NewAdminSession wires a logged-out session against the service client.
func NewAdminSession(client *backend.Client) *AdminSession {
	return &AdminSession{backend: client}
}

// Login checks the shared admin credentials. Acceptance is an exact match
// against the service's literal success status; a successful login
// immediately loads both directories.
func (a *AdminSession) Login(ctx context.Context, username, password string) error {
	resp, err := a.backend.AdminLogin(ctx, username, password)
	if err != nil {
		a.Message = "❌ Login failed"
		return err
	}
	if resp.Status != adminLoginAccepted {
		a.Message = "❌ Invalid credentials"
		return nil
	}

	a.Authenticated = true
	a.Message = ""
	return a.Refresh(ctx)
}

// Refresh re-fetches both directories and replaces the held copies
// wholesale.
func (a *AdminSession) Refresh(ctx context.Context) error {
	if !a.Authenticated {
		return ErrNotAuthenticated
	}

	students, err := a.backend.ListStudents(ctx)
	if err != nil {
		a.Message = "❌ Error fetching data"
		return err
	}
	teachers, err := a.backend.ListTeachers(ctx)
	if err != nil {
		a.Message = "❌ Error fetching data"
		return err
	}

	a.students = students
	a.teachers = teachers
	return nil
}

// DeleteStudent removes every attendance record for the enrollment ID and
// re-fetches both directories. The list is never pruned locally; what the
// service holds after the call is what gets displayed.
func (a *AdminSession) DeleteStudent(ctx context.Context, enrollID string) error {
	if !a.Authenticated {
		return ErrNotAuthenticated
	}
	if enrollID == "" {
		a.Message = "❌ Invalid enrollment ID"
		return ErrMissingID
	}

	delErr := a.backend.DeleteStudent(ctx, enrollID)
	if err := a.Refresh(ctx); err != nil {
		return err
	}
	if delErr != nil {
		a.Message = "❌ Error deleting student"
		return delErr
	}
	a.Message = "✅ Student deleted"
	return nil
}

// DeleteTeacher removes the teacher record and re-fetches both directories.
func (a *AdminSession) DeleteTeacher(ctx context.Context, teacherID string) error {
	if !a.Authenticated {
		return ErrNotAuthenticated
	}
	if teacherID == "" {
		a.Message = "❌ Invalid teacher ID"
		return ErrMissingID
	}

	delErr := a.backend.DeleteTeacher(ctx, teacherID)
	if err := a.Refresh(ctx); err != nil {
		return err
	}
	if delErr != nil {
		a.Message = "❌ Error deleting teacher"
		return delErr
	}
	a.Message = "✅ Teacher deleted"
	return nil
}

// UpdateStudent rewrites one directory row and re-fetches both directories.
func (a *AdminSession) UpdateStudent(ctx context.Context, id backend.RecordID, name, enrollID string) error {
	if !a.Authenticated {
		return ErrNotAuthenticated
	}
	if id == "" {
		a.Message = "❌ Invalid record ID"
		return ErrMissingID
	}

	resp, err := a.backend.UpdateStudent(ctx, id, name, enrollID)
	if err != nil {
		a.Message = "❌ Error updating student"
		return err
	}
	if err := a.Refresh(ctx); err != nil {
		return err
	}
	a.Message = resp.Status
	return nil
}

// UpdateTeacher rewrites one teacher row and re-fetches both directories.
func (a *AdminSession) UpdateTeacher(ctx context.Context, id backend.RecordID, name, teacherID, pin string) error {
	if !a.Authenticated {
		return ErrNotAuthenticated
	}
	if id == "" {
		a.Message = "❌ Invalid record ID"
		return ErrMissingID
	}

	resp, err := a.backend.UpdateTeacher(ctx, id, name, teacherID, pin)
	if err != nil {
		a.Message = "❌ Error updating teacher"
		return err
	}
	if err := a.Refresh(ctx); err != nil {
		return err
	}
	a.Message = resp.Status
	return nil
}

// Students returns the student directory as displayed: de-duplicated by
// enrollment ID (first position, latest value) and narrowed by the current
// filter, matched case-insensitively as a substring.
func (a *AdminSession) Students() []backend.Student {
	key := func(s backend.Student) string { return s.EnrollmentID }
	return filterByKey(dedupeByKey(a.students, key), key, a.StudentFilter)
}

// Teachers returns the teacher directory as displayed, de-duplicated and
// filtered by teacher ID.
func (a *AdminSession) Teachers() []backend.Teacher {
	key := func(t backend.Teacher) string { return t.TeacherID }
	return filterByKey(dedupeByKey(a.teachers, key), key, a.TeacherFilter)
}

// Logout drops the authentication, both directories, the filters and the
// message.
func (a *AdminSession) Logout() {
	*a = AdminSession{backend: a.backend}
}
