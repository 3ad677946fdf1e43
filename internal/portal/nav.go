package portal

// Role is the top-level portal selection. Each role has disjoint screens
// and state.
type Role string

const (
	RoleNone    Role = ""
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// StudentMode is the sub-mode within the student role.
type StudentMode string

const (
	ModeNone     StudentMode = ""
	ModeNew      StudentMode = "new"
	ModeExisting StudentMode = "existing"
)

// Screen identifies the single active screen derived from navigation state.
type Screen string

const (
	ScreenRoleSelect      Screen = "role_select"
	ScreenStudentOptions  Screen = "student_options"
	ScreenStudentNew      Screen = "student_new"
	ScreenStudentExisting Screen = "student_existing"
	ScreenTeacherPanel    Screen = "teacher_panel"
	ScreenAdminPanel      Screen = "admin_panel"
)

// NavigationState tracks which screen is active. The zero value is the
// initial role-selection state. Invariant: StudentMode != ModeNone implies
// Role == RoleStudent. The state is never persisted.
type NavigationState struct {
	Role        Role        `json:"role"`
	StudentMode StudentMode `json:"student_mode"`
}

// SelectRole enters a role from the role-selection screen. Selecting a role
// while another is active is ignored; screens are left only through Back or
// BackToMenu, never sideways.
func (n NavigationState) SelectRole(role Role) NavigationState {
	if n.Role != RoleNone {
		return n
	}
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return NavigationState{Role: role}
	default:
		return n
	}
}

// SelectStudentMode picks new/existing on the student options screen. Only
// valid while the student role is active with no mode chosen yet.
func (n NavigationState) SelectStudentMode(mode StudentMode) NavigationState {
	if n.Role != RoleStudent || n.StudentMode != ModeNone {
		return n
	}
	switch mode {
	case ModeNew, ModeExisting:
		n.StudentMode = mode
		return n
	default:
		return n
	}
}

// Back steps one level up: a student sub-mode returns to the options screen,
// anything else returns to role selection.
func (n NavigationState) Back() NavigationState {
	if n.Role == RoleStudent && n.StudentMode != ModeNone {
		return NavigationState{Role: RoleStudent}
	}
	return NavigationState{}
}

// BackToMenu returns to role selection from any state. Callers owning
// role-specific state must reset it alongside; see Portal.BackToMenu.
func (n NavigationState) BackToMenu() NavigationState {
	return NavigationState{}
}

// Screen derives the single active screen.
func (n NavigationState) Screen() Screen {
	switch n.Role {
	case RoleStudent:
		switch n.StudentMode {
		case ModeNew:
			return ScreenStudentNew
		case ModeExisting:
			return ScreenStudentExisting
		default:
			return ScreenStudentOptions
		}
	case RoleTeacher:
		return ScreenTeacherPanel
	case RoleAdmin:
		return ScreenAdminPanel
	default:
		return ScreenRoleSelect
	}
}

// Valid reports whether the state satisfies the navigation invariant.
func (n NavigationState) Valid() bool {
	if n.StudentMode != ModeNone && n.Role != RoleStudent {
		return false
	}
	switch n.Role {
	case RoleNone, RoleStudent, RoleTeacher, RoleAdmin:
	default:
		return false
	}
	switch n.StudentMode {
	case ModeNone, ModeNew, ModeExisting:
	default:
		return false
	}
	return true
}
