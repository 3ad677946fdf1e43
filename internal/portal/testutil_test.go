package portal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/facemark/attendance-portal/internal/backend"
	"github.com/facemark/attendance-portal/internal/camera"
	"github.com/facemark/attendance-portal/internal/config"
)

// fakeJPEG stands in for camera output; resizing is disabled in tests so the
// bytes only travel, they are never decoded.
var fakeJPEG = []byte{0xff, 0xd8, 0xff, 0xd9}

// stubSource is a camera source producing a fixed frame.
type stubSource struct {
	frame []byte
}

func (s *stubSource) Start(ctx context.Context) error { return nil }
func (s *stubSource) Stop() error                     { return nil }
func (s *stubSource) Frame(ctx context.Context) ([]byte, error) {
	return s.frame, nil
}

// newTestBackend spins up a mock service and a client pointed at it.
func newTestBackend(t *testing.T, routes map[string]http.HandlerFunc) *backend.Client {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

// newTestStudent builds a student controller with a stub camera and no
// inter-frame delay.
func newTestStudent(t *testing.T, routes map[string]http.HandlerFunc) (*StudentController, *camera.Controller) {
	t.Helper()

	cam := camera.NewController(&stubSource{frame: fakeJPEG})
	s := NewStudentController(newTestBackend(t, routes), cam, config.CameraConfig{Quality: 85})
	s.Interval = 0
	return s, cam
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}
