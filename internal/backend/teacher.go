package backend

import (
	"context"
	"net/url"
)

// CreateTeacherPIN registers a teacher login PIN. Works without any session;
// it does not log the teacher in.
func (c *Client) CreateTeacherPIN(ctx context.Context, name, teacherID, pin string) (*StatusResponse, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("teacher_id", teacherID)
	form.Set("pin", pin)
	return doFormJSON[StatusResponse](ctx, c, "POST", "teacher/create", form)
}

// TeacherLogin checks a teacher ID/PIN pair. A success-prefixed status
// carries the authenticated teacher ID; any other status is a rejection.
func (c *Client) TeacherLogin(ctx context.Context, teacherID, pin string) (*TeacherLoginResponse, error) {
	form := url.Values{}
	form.Set("teacher_id", teacherID)
	form.Set("pin", pin)
	return doFormJSON[TeacherLoginResponse](ctx, c, "POST", "teacher/login", form)
}

// TeacherAttendance fetches attendance rows for a teacher, optionally
// filtered to a single date (YYYY-MM-DD). An empty date requests everything.
func (c *Client) TeacherAttendance(ctx context.Context, teacherID, date string) (*AttendanceResponse, error) {
	form := url.Values{}
	form.Set("teacher_id", teacherID)
	form.Set("date", date)
	return doFormJSON[AttendanceResponse](ctx, c, "POST", "teacher/attendance", form)
}
