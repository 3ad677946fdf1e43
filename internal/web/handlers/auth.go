package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/facemark/attendance-portal/internal/portal"
	"github.com/facemark/attendance-portal/internal/web/middleware"
)

// AuthHandler handles teacher and admin login against the recognition
// service and maps successful logins onto signed browser sessions.
type AuthHandler struct {
	state          *PortalState
	sessionManager *middleware.SessionManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(state *PortalState, sm *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{
		state:          state,
		sessionManager: sm,
	}
}

// LoginResponse represents a login response
type LoginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// TeacherLogin checks a teacher ID/PIN pair against the service
func (h *AuthHandler) TeacherLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeacherID string `json:"teacher_id"`
		PIN       string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.TeacherID == "" || req.PIN == "" {
		respondError(w, http.StatusBadRequest, "teacher_id and pin are required")
		return
	}

	var (
		ok        bool
		message   string
		teacherID string
		loginErr  error
	)
	h.state.With(func(p *portal.Portal) {
		loginErr = p.Teacher.Login(r.Context(), req.TeacherID, req.PIN)
		ok = p.Teacher.Authenticated
		message = p.Teacher.Message
		teacherID = p.Teacher.TeacherID
	})
	if loginErr != nil && !ok {
		respondJSON(w, http.StatusBadGateway, LoginResponse{Success: false, Message: message})
		return
	}
	if !ok {
		respondJSON(w, http.StatusUnauthorized, LoginResponse{Success: false, Message: message})
		return
	}

	session, err := h.sessionManager.CreateSession(middleware.RoleTeacher, teacherID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	h.sessionManager.SetSessionCookie(w, session)

	respondJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		Message:   message,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	})
}

// AdminLogin checks the shared admin credentials against the service
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	var (
		ok       bool
		message  string
		loginErr error
	)
	h.state.With(func(p *portal.Portal) {
		loginErr = p.Admin.Login(r.Context(), req.Username, req.Password)
		ok = p.Admin.Authenticated
		message = p.Admin.Message
	})
	if loginErr != nil && !ok {
		respondJSON(w, http.StatusBadGateway, LoginResponse{Success: false, Message: message})
		return
	}
	if !ok {
		respondJSON(w, http.StatusUnauthorized, LoginResponse{Success: false, Message: message})
		return
	}

	session, err := h.sessionManager.CreateSession(middleware.RoleAdmin, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	h.sessionManager.SetSessionCookie(w, session)

	respondJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	})
}

// Logout drops the browser session and the matching portal session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := h.sessionManager.GetSessionFromRequest(r)
	if session != nil {
		h.state.With(func(p *portal.Portal) {
			switch session.Role {
			case middleware.RoleTeacher:
				p.Teacher.Logout()
			case middleware.RoleAdmin:
				p.Admin.Logout()
			}
		})
		h.sessionManager.DeleteSession(session.ID)
	}

	h.sessionManager.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AuthStatusResponse represents the auth status response
type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	TeacherID     string `json:"teacher_id,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

// Status checks if the user is authenticated by validating the session.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	session := h.sessionManager.GetSessionFromRequest(r)
	if session == nil {
		respondJSON(w, http.StatusOK, AuthStatusResponse{Authenticated: false})
		return
	}
	respondJSON(w, http.StatusOK, AuthStatusResponse{
		Authenticated: true,
		Role:          session.Role,
		TeacherID:     session.TeacherID,
		ExpiresAt:     session.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	})
}
