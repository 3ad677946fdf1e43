package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/facemark/attendance-portal/internal/backend"
	"github.com/facemark/attendance-portal/internal/portal"
)

// AdminHandler serves the admin panel: the student and teacher directories
// with filtering, plus row deletion and editing.
type AdminHandler struct {
	state *PortalState
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(state *PortalState) *AdminHandler {
	return &AdminHandler{state: state}
}

// studentsResponse is the filtered student directory plus the status message.
type studentsResponse struct {
	Message  string            `json:"message"`
	Students []backend.Student `json:"students"`
}

// teachersResponse is the filtered teacher directory plus the status message.
type teachersResponse struct {
	Message  string            `json:"message"`
	Teachers []backend.Teacher `json:"teachers"`
}

// Students returns the student directory, narrowed by the filter query
// parameter (case-insensitive enrollment ID substring)
func (h *AdminHandler) Students(w http.ResponseWriter, r *http.Request) {
	var resp studentsResponse
	var authErr error
	h.state.With(func(p *portal.Portal) {
		if !p.Admin.Authenticated {
			authErr = portal.ErrNotAuthenticated
			return
		}
		p.Admin.StudentFilter = r.URL.Query().Get("filter")
		resp = studentsResponse{Message: p.Admin.Message, Students: p.Admin.Students()}
	})
	if authErr != nil {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Teachers returns the teacher directory, narrowed by the filter query
// parameter (case-insensitive teacher ID substring)
func (h *AdminHandler) Teachers(w http.ResponseWriter, r *http.Request) {
	var resp teachersResponse
	var authErr error
	h.state.With(func(p *portal.Portal) {
		if !p.Admin.Authenticated {
			authErr = portal.ErrNotAuthenticated
			return
		}
		p.Admin.TeacherFilter = r.URL.Query().Get("filter")
		resp = teachersResponse{Message: p.Admin.Message, Teachers: p.Admin.Teachers()}
	})
	if authErr != nil {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// DeleteStudent removes every attendance record for the enrollment ID and
// returns the re-fetched directory
func (h *AdminHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	enrollID, err := url.PathUnescape(chi.URLParam(r, "enrollId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid enrollment ID")
		return
	}

	var resp studentsResponse
	var delErr error
	h.state.With(func(p *portal.Portal) {
		delErr = p.Admin.DeleteStudent(r.Context(), enrollID)
		resp = studentsResponse{Message: p.Admin.Message, Students: p.Admin.Students()}
	})
	h.respondMutation(w, delErr, resp)
}

// DeleteTeacher removes the teacher record and returns the re-fetched
// directory
func (h *AdminHandler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID, err := url.PathUnescape(chi.URLParam(r, "teacherId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid teacher ID")
		return
	}

	var resp teachersResponse
	var delErr error
	h.state.With(func(p *portal.Portal) {
		delErr = p.Admin.DeleteTeacher(r.Context(), teacherID)
		resp = teachersResponse{Message: p.Admin.Message, Teachers: p.Admin.Teachers()}
	})
	h.respondMutation(w, delErr, resp)
}

// UpdateStudent rewrites one student directory row
func (h *AdminHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		EnrollID string `json:"enroll_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	id := backend.RecordID(chi.URLParam(r, "id"))

	var resp studentsResponse
	var updErr error
	h.state.With(func(p *portal.Portal) {
		updErr = p.Admin.UpdateStudent(r.Context(), id, req.Name, req.EnrollID)
		resp = studentsResponse{Message: p.Admin.Message, Students: p.Admin.Students()}
	})
	h.respondMutation(w, updErr, resp)
}

// UpdateTeacher rewrites one teacher directory row
func (h *AdminHandler) UpdateTeacher(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		TeacherID string `json:"teacher_id"`
		PIN       string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	id := backend.RecordID(chi.URLParam(r, "id"))

	var resp teachersResponse
	var updErr error
	h.state.With(func(p *portal.Portal) {
		updErr = p.Admin.UpdateTeacher(r.Context(), id, req.Name, req.TeacherID, req.PIN)
		resp = teachersResponse{Message: p.Admin.Message, Teachers: p.Admin.Teachers()}
	})
	h.respondMutation(w, updErr, resp)
}

// respondMutation maps a directory mutation outcome onto an HTTP response.
func (h *AdminHandler) respondMutation(w http.ResponseWriter, err error, resp any) {
	switch {
	case errors.Is(err, portal.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "not logged in")
	case errors.Is(err, portal.ErrMissingID):
		respondError(w, http.StatusBadRequest, "record identifier is required")
	case err != nil:
		respondJSON(w, http.StatusBadGateway, resp)
	default:
		respondJSON(w, http.StatusOK, resp)
	}
}
