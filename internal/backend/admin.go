package backend

import (
	"context"
	"fmt"
	"net/url"
)

// AdminLogin checks the shared admin credentials. The caller must compare
// the returned status against the service's literal success string; any
// other well-formed status is a rejected login, not an error.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*StatusResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	return doFormJSON[StatusResponse](ctx, c, "POST", "admin/login", form)
}

// ListStudents fetches the student attendance directory. The service may
// return duplicate Enrollment_ID entries; de-duplication is the caller's job.
func (c *Client) ListStudents(ctx context.Context) ([]Student, error) {
	students, err := doGetJSON[[]Student](ctx, c, "students")
	if err != nil {
		return nil, err
	}
	return *students, nil
}

// ListTeachers fetches the teacher directory, PINs included.
func (c *Client) ListTeachers(ctx context.Context) ([]Teacher, error) {
	teachers, err := doGetJSON[[]Teacher](ctx, c, "teachers")
	if err != nil {
		return nil, err
	}
	return *teachers, nil
}

// DeleteStudent removes every attendance record for the enrollment ID.
func (c *Client) DeleteStudent(ctx context.Context, enrollID string) error {
	return doDeleteRaw(ctx, c, "delete_student", url.PathEscape(enrollID))
}

// DeleteTeacher removes the teacher record for the teacher ID.
func (c *Client) DeleteTeacher(ctx context.Context, teacherID string) error {
	return doDeleteRaw(ctx, c, "delete_teacher", url.PathEscape(teacherID))
}

// UpdateStudent rewrites the name and enrollment ID of a directory row.
func (c *Client) UpdateStudent(ctx context.Context, id RecordID, name, enrollID string) (*StatusResponse, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("enrollId", enrollID)
	return doFormJSON[StatusResponse](ctx, c, "PUT", fmt.Sprintf("update_student/%s", url.PathEscape(string(id))), form)
}

// UpdateTeacher rewrites the name, teacher ID and PIN of a directory row.
func (c *Client) UpdateTeacher(ctx context.Context, id RecordID, name, teacherID, pin string) (*StatusResponse, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("teacherId", teacherID)
	form.Set("pin", pin)
	return doFormJSON[StatusResponse](ctx, c, "PUT", fmt.Sprintf("update_teacher/%s", url.PathEscape(string(id))), form)
}
