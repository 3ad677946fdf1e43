package portal

import (
	"github.com/facemark/attendance-portal/internal/backend"
	"github.com/facemark/attendance-portal/internal/camera"
	"github.com/facemark/attendance-portal/internal/config"
)

// Portal is the aggregate client state: one navigation machine plus the
// per-role controllers, all sharing a single capture device. Exactly one
// screen is active at a time; entering a role never disturbs the state of
// the others, leaving one resets it.
type Portal struct {
	Nav     NavigationState
	Camera  *camera.Controller
	Student *StudentController
	Teacher *TeacherSession
	Admin   *AdminSession
}

// New assembles a portal on the role-selection screen.
func New(client *backend.Client, cam *camera.Controller, cfg config.CameraConfig) *Portal {
	return &Portal{
		Camera:  cam,
		Student: NewStudentController(client, cam, cfg),
		Teacher: NewTeacherSession(client),
		Admin:   NewAdminSession(client),
	}
}

// SelectRole enters a role from the role-selection screen.
func (p *Portal) SelectRole(role Role) {
	p.Nav = p.Nav.SelectRole(role)
}

// SelectStudentMode picks new/existing on the student options screen.
func (p *Portal) SelectStudentMode(mode StudentMode) {
	p.Nav = p.Nav.SelectStudentMode(mode)
}

// Back steps one level up. Leaving a student sub-mode discards the screen's
// identity and capture state and releases the device; leaving a role panel
// is a full return to the menu.
func (p *Portal) Back() {
	if p.Nav.Role == RoleStudent && p.Nav.StudentMode != ModeNone {
		p.Student.Reset()
		p.Camera.Close() //nolint:errcheck // releasing on navigation is best-effort
		p.Nav = p.Nav.Back()
		return
	}
	p.BackToMenu()
}

// BackToMenu returns to role selection from anywhere, releasing the capture
// device and resetting every role controller.
func (p *Portal) BackToMenu() {
	p.Camera.Close() //nolint:errcheck // releasing on navigation is best-effort
	p.Student.Reset()
	p.Teacher.Logout()
	p.Admin.Logout()
	p.Nav = p.Nav.BackToMenu()
}
