package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/facemark/attendance-portal/internal/portal"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// PortalState serializes access to the shared portal. The portal models a
// single kiosk screen, so handlers take the lock for the whole operation,
// capture runs included; concurrent requests queue behind it.
type PortalState struct {
	mu     sync.Mutex
	portal *portal.Portal
}

// NewPortalState wraps a portal for handler use.
func NewPortalState(p *portal.Portal) *PortalState {
	return &PortalState{portal: p}
}

// With runs fn with exclusive access to the portal.
func (ps *PortalState) With(fn func(p *portal.Portal)) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	fn(ps.portal)
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
