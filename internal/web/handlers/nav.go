package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/facemark/attendance-portal/internal/portal"
)

// NavHandler exposes the navigation state machine over HTTP. The UI renders
// whatever screen the server says is active.
type NavHandler struct {
	state *PortalState
}

// NewNavHandler creates a new navigation handler
func NewNavHandler(state *PortalState) *NavHandler {
	return &NavHandler{state: state}
}

// navResponse is the serialized navigation state plus the derived screen.
type navResponse struct {
	Role        portal.Role        `json:"role"`
	StudentMode portal.StudentMode `json:"student_mode"`
	Screen      portal.Screen      `json:"screen"`
}

func navFromPortal(p *portal.Portal) navResponse {
	return navResponse{
		Role:        p.Nav.Role,
		StudentMode: p.Nav.StudentMode,
		Screen:      p.Nav.Screen(),
	}
}

// Get returns the current navigation state
func (h *NavHandler) Get(w http.ResponseWriter, r *http.Request) {
	var resp navResponse
	h.state.With(func(p *portal.Portal) {
		resp = navFromPortal(p)
	})
	respondJSON(w, http.StatusOK, resp)
}

// SelectRole enters a role from the role-selection screen
func (h *NavHandler) SelectRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	var resp navResponse
	h.state.With(func(p *portal.Portal) {
		p.SelectRole(portal.Role(req.Role))
		resp = navFromPortal(p)
	})
	respondJSON(w, http.StatusOK, resp)
}

// SelectMode picks the new/existing sub-mode on the student options screen
func (h *NavHandler) SelectMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	var resp navResponse
	h.state.With(func(p *portal.Portal) {
		p.SelectStudentMode(portal.StudentMode(req.Mode))
		resp = navFromPortal(p)
	})
	respondJSON(w, http.StatusOK, resp)
}

// Back steps one navigation level up
func (h *NavHandler) Back(w http.ResponseWriter, r *http.Request) {
	var resp navResponse
	h.state.With(func(p *portal.Portal) {
		p.Back()
		resp = navFromPortal(p)
	})
	respondJSON(w, http.StatusOK, resp)
}

// Menu returns to role selection and resets all role state
func (h *NavHandler) Menu(w http.ResponseWriter, r *http.Request) {
	var resp navResponse
	h.state.With(func(p *portal.Portal) {
		p.BackToMenu()
		resp = navFromPortal(p)
	})
	respondJSON(w, http.StatusOK, resp)
}
