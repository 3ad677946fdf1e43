package portal

import "testing"

func TestNavigationState_RoleSelection(t *testing.T) {
	var nav NavigationState

	if nav.Screen() != ScreenRoleSelect {
		t.Errorf("expected initial screen role_select, got %s", nav.Screen())
	}

	nav = nav.SelectRole(RoleTeacher)
	if nav.Screen() != ScreenTeacherPanel {
		t.Errorf("expected teacher_panel, got %s", nav.Screen())
	}

	// Switching roles sideways must be ignored.
	nav = nav.SelectRole(RoleAdmin)
	if nav.Role != RoleTeacher {
		t.Errorf("expected role to stay teacher, got %s", nav.Role)
	}
}

func TestNavigationState_StudentModes(t *testing.T) {
	var nav NavigationState

	nav = nav.SelectRole(RoleStudent)
	if nav.Screen() != ScreenStudentOptions {
		t.Errorf("expected student_options, got %s", nav.Screen())
	}

	nav = nav.SelectStudentMode(ModeNew)
	if nav.Screen() != ScreenStudentNew {
		t.Errorf("expected student_new, got %s", nav.Screen())
	}

	// Mode is sticky until Back.
	nav = nav.SelectStudentMode(ModeExisting)
	if nav.StudentMode != ModeNew {
		t.Errorf("expected mode to stay new, got %s", nav.StudentMode)
	}

	nav = nav.Back()
	if nav.Screen() != ScreenStudentOptions {
		t.Errorf("expected back to student_options, got %s", nav.Screen())
	}

	nav = nav.SelectStudentMode(ModeExisting)
	if nav.Screen() != ScreenStudentExisting {
		t.Errorf("expected student_existing, got %s", nav.Screen())
	}
}

func TestNavigationState_ModeRequiresStudentRole(t *testing.T) {
	var nav NavigationState

	nav = nav.SelectStudentMode(ModeNew)
	if nav != (NavigationState{}) {
		t.Errorf("expected mode selection without role to be ignored, got %+v", nav)
	}

	nav = nav.SelectRole(RoleAdmin).SelectStudentMode(ModeNew)
	if nav.StudentMode != ModeNone {
		t.Errorf("expected mode selection under admin to be ignored, got %s", nav.StudentMode)
	}
}

func TestNavigationState_BackFromRoot(t *testing.T) {
	cases := []struct {
		name string
		nav  NavigationState
	}{
		{"teacher", NavigationState{Role: RoleTeacher}},
		{"admin", NavigationState{Role: RoleAdmin}},
		{"student options", NavigationState{Role: RoleStudent}},
	}

	for _, tc := range cases {
		if got := tc.nav.Back(); got != (NavigationState{}) {
			t.Errorf("%s: expected back to role selection, got %+v", tc.name, got)
		}
	}
}

func TestNavigationState_BackToMenuFromAnywhere(t *testing.T) {
	nav := NavigationState{Role: RoleStudent, StudentMode: ModeExisting}
	if got := nav.BackToMenu(); got != (NavigationState{}) {
		t.Errorf("expected zero state, got %+v", got)
	}
}

func TestNavigationState_TransitionsPreserveValidity(t *testing.T) {
	states := []NavigationState{{}}
	for _, role := range []Role{RoleStudent, RoleTeacher, RoleAdmin} {
		states = append(states, NavigationState{Role: role})
	}
	states = append(states,
		NavigationState{Role: RoleStudent, StudentMode: ModeNew},
		NavigationState{Role: RoleStudent, StudentMode: ModeExisting},
	)

	for _, s := range states {
		if !s.Valid() {
			t.Fatalf("reachable state %+v must be valid", s)
		}
		next := []NavigationState{
			s.SelectRole(RoleStudent),
			s.SelectRole(RoleTeacher),
			s.SelectRole(RoleAdmin),
			s.SelectStudentMode(ModeNew),
			s.SelectStudentMode(ModeExisting),
			s.Back(),
			s.BackToMenu(),
		}
		for _, n := range next {
			if !n.Valid() {
				t.Errorf("transition from %+v produced invalid state %+v", s, n)
			}
		}
	}
}
