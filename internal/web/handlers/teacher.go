package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/facemark/attendance-portal/internal/portal"
)

// TeacherHandler serves the teacher panel: attendance viewing with an
// optional date filter and PIN registration.
type TeacherHandler struct {
	state *PortalState
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(state *PortalState) *TeacherHandler {
	return &TeacherHandler{state: state}
}

// attendanceResponse is a rendered attendance table plus the status message.
type attendanceResponse struct {
	Message string                 `json:"message"`
	Table   portal.AttendanceTable `json:"table"`
}

// Attendance returns attendance rows for the logged-in teacher, filtered to
// the date query parameter when present (YYYY-MM-DD)
func (h *TeacherHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	var resp attendanceResponse
	var fetchErr error
	h.state.With(func(p *portal.Portal) {
		fetchErr = p.Teacher.FetchAttendance(r.Context(), date)
		resp = attendanceResponse{Message: p.Teacher.Message, Table: p.Teacher.Table}
	})
	switch {
	case errors.Is(fetchErr, portal.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "not logged in")
	case fetchErr != nil:
		respondJSON(w, http.StatusBadGateway, resp)
	default:
		respondJSON(w, http.StatusOK, resp)
	}
}

// CreatePin registers a teacher login PIN. The route takes no session; a
// new teacher has no credentials to authenticate with yet.
func (h *TeacherHandler) CreatePin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		TeacherID string `json:"teacher_id"`
		PIN       string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	var message string
	var createErr error
	h.state.With(func(p *portal.Portal) {
		createErr = p.Teacher.CreatePin(r.Context(), req.Name, req.TeacherID, req.PIN)
		message = p.Teacher.Message
	})
	switch {
	case errors.Is(createErr, portal.ErrMissingIdentity):
		respondError(w, http.StatusBadRequest, message)
	case createErr != nil:
		respondJSON(w, http.StatusBadGateway, messageResponse{Message: message})
	default:
		respondJSON(w, http.StatusOK, messageResponse{Message: message})
	}
}
