package portal

import (
	"context"
	"testing"

	"github.com/facemark/attendance-portal/internal/camera"
	"github.com/facemark/attendance-portal/internal/config"
)

func newTestPortal(t *testing.T) *Portal {
	t.Helper()
	cam := camera.NewController(&stubSource{frame: fakeJPEG})
	p := New(newTestBackend(t, nil), cam, config.CameraConfig{Quality: 85})
	p.Student.Interval = 0
	return p
}

func TestPortal_BackFromStudentModeReleasesCamera(t *testing.T) {
	p := newTestPortal(t)
	p.SelectRole(RoleStudent)
	p.SelectStudentMode(ModeNew)

	if err := p.Camera.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	p.Student.Identity = EnrollmentIdentity{Name: "Alice", EnrollID: "EN101", FolderToken: "alice_en101"}

	p.Back()

	if p.Nav.Screen() != ScreenStudentOptions {
		t.Errorf("expected student_options, got %s", p.Nav.Screen())
	}
	if p.Camera.IsOpen() {
		t.Error("expected camera released on navigation")
	}
	if p.Student.Identity != (EnrollmentIdentity{}) {
		t.Errorf("expected identity discarded, got %+v", p.Student.Identity)
	}
}

func TestPortal_BackToMenuResetsAllRoles(t *testing.T) {
	p := newTestPortal(t)
	p.SelectRole(RoleAdmin)
	p.Admin.Authenticated = true
	p.Teacher.Authenticated = true
	p.Teacher.TeacherID = "T42"
	p.Student.Message = "✅ Folder created"
	if err := p.Camera.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	p.BackToMenu()

	if p.Nav != (NavigationState{}) {
		t.Errorf("expected role selection, got %+v", p.Nav)
	}
	if p.Camera.IsOpen() {
		t.Error("expected camera released")
	}
	if p.Admin.Authenticated || p.Teacher.Authenticated || p.Student.Message != "" {
		t.Error("expected all role state reset")
	}
}

func TestPortal_RolesAreIsolated(t *testing.T) {
	p := newTestPortal(t)

	p.SelectRole(RoleTeacher)
	p.Teacher.Authenticated = true
	p.Teacher.TeacherID = "T42"

	// Entering the teacher panel never disturbs the other roles.
	if p.Admin.Authenticated {
		t.Error("admin session must be untouched")
	}
	if p.Student.Identity != (EnrollmentIdentity{}) {
		t.Error("student state must be untouched")
	}
}
