package portal

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestTeacher_LoginFetchesAttendance(t *testing.T) {
	routes := map[string]http.HandlerFunc{
		"/teacher/login": func(w http.ResponseWriter, r *http.Request) {
			if r.FormValue("teacher_id") != "T42" || r.FormValue("pin") != "1234" {
				t.Errorf("unexpected form: %v", r.Form)
			}
			writeJSON(t, w, map[string]string{"status": "✅ Login successful", "teacher_id": "T42"})
		},
		"/teacher/attendance": func(w http.ResponseWriter, r *http.Request) {
			if r.FormValue("date") != "" {
				t.Errorf("expected unfiltered fetch after login, got date %q", r.FormValue("date"))
			}
			writeJSON(t, w, map[string]any{
				"status":     "✅ 2 records found",
				"columns":    []string{"Name", "Date"},
				"attendance": []map[string]string{{"Name": "Alice", "Date": "2026-08-30"}, {"Name": "Bob"}},
			})
		},
	}

	s := NewTeacherSession(newTestBackend(t, routes))
	if err := s.Login(context.Background(), "T42", "1234"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if !s.Authenticated {
		t.Error("expected authenticated session")
	}
	if s.TeacherID != "T42" {
		t.Errorf("unexpected teacher ID: %q", s.TeacherID)
	}
	if len(s.Table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(s.Table.Rows))
	}
	if got := s.Table.Cell(1, "Date"); got != "" {
		t.Errorf("expected missing cell to render empty, got %q", got)
	}
}

func TestTeacher_LoginRejected(t *testing.T) {
	var attendanceHits int
	routes := map[string]http.HandlerFunc{
		"/teacher/login": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]string{"status": "❌ Invalid PIN", "teacher_id": ""})
		},
		"/teacher/attendance": func(w http.ResponseWriter, r *http.Request) {
			attendanceHits++
		},
	}

	s := NewTeacherSession(newTestBackend(t, routes))
	if err := s.Login(context.Background(), "T42", "9999"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if s.Authenticated {
		t.Error("expected rejected login to stay logged out")
	}
	if s.Message != "❌ Invalid PIN" {
		t.Errorf("unexpected message: %q", s.Message)
	}
	if attendanceHits != 0 {
		t.Errorf("expected no attendance fetch after rejection, got %d", attendanceHits)
	}
}

func TestTeacher_LoginRequiresCredentials(t *testing.T) {
	s := NewTeacherSession(newTestBackend(t, nil))
	if err := s.Login(context.Background(), "", "1234"); !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("expected ErrMissingIdentity, got %v", err)
	}
	if err := s.Login(context.Background(), "T42", ""); !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("expected ErrMissingIdentity, got %v", err)
	}
}

func TestTeacher_FetchAttendanceReplacesTable(t *testing.T) {
	var date string
	routes := map[string]http.HandlerFunc{
		"/teacher/attendance": func(w http.ResponseWriter, r *http.Request) {
			date = r.FormValue("date")
			if date == "2026-08-30" {
				writeJSON(t, w, map[string]any{
					"status":     "✅ 1 record found",
					"columns":    []string{"Name"},
					"attendance": []map[string]string{{"Name": "Alice"}},
				})
				return
			}
			writeJSON(t, w, map[string]string{"status": "❌ No records found"})
		},
	}

	s := NewTeacherSession(newTestBackend(t, routes))
	s.Authenticated = true
	s.TeacherID = "T42"

	if err := s.FetchAttendance(context.Background(), "2026-08-30"); err != nil {
		t.Fatalf("FetchAttendance failed: %v", err)
	}
	if len(s.Table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(s.Table.Rows))
	}

	// A rowless answer clears the previous table instead of keeping it.
	if err := s.FetchAttendance(context.Background(), "2026-08-31"); err != nil {
		t.Fatalf("FetchAttendance failed: %v", err)
	}
	if date != "2026-08-31" {
		t.Errorf("unexpected date sent: %q", date)
	}
	if !s.Table.Empty() {
		t.Errorf("expected empty table, got %+v", s.Table)
	}
	if s.Message != "❌ No records found" {
		t.Errorf("unexpected message: %q", s.Message)
	}
}

func TestTeacher_FetchAttendanceRequiresLogin(t *testing.T) {
	s := NewTeacherSession(newTestBackend(t, nil))
	if err := s.FetchAttendance(context.Background(), ""); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestTeacher_CreatePinWithoutLogin(t *testing.T) {
	routes := map[string]http.HandlerFunc{
		"/teacher/create": func(w http.ResponseWriter, r *http.Request) {
			if r.FormValue("name") != "Eve" || r.FormValue("teacher_id") != "T7" || r.FormValue("pin") != "4321" {
				t.Errorf("unexpected form: %v", r.Form)
			}
			writeJSON(t, w, map[string]string{"status": "✅ PIN created"})
		},
	}

	s := NewTeacherSession(newTestBackend(t, routes))
	if err := s.CreatePin(context.Background(), "Eve", "T7", "4321"); err != nil {
		t.Fatalf("CreatePin failed: %v", err)
	}
	if s.Authenticated {
		t.Error("CreatePin must not log the teacher in")
	}
	if s.Message != "✅ PIN created" {
		t.Errorf("unexpected message: %q", s.Message)
	}
}

func TestTeacher_LogoutClearsEverything(t *testing.T) {
	s := NewTeacherSession(newTestBackend(t, nil))
	s.Authenticated = true
	s.TeacherID = "T42"
	s.Table = AttendanceTable{Columns: []string{"Name"}, Rows: []map[string]string{{"Name": "Alice"}}}
	s.Message = "✅ 1 record found"

	s.Logout()

	if s.Authenticated || s.TeacherID != "" || !s.Table.Empty() || s.Message != "" {
		t.Errorf("expected cleared session, got %+v", s)
	}
}
