package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/facemark/attendance-portal/internal/backend"
	"github.com/facemark/attendance-portal/internal/camera"
	"github.com/facemark/attendance-portal/internal/config"
	"github.com/facemark/attendance-portal/internal/portal"
)

// fakeJPEG stands in for camera output; resizing is disabled in tests.
var fakeJPEG = []byte{0xff, 0xd8, 0xff, 0xd9}

// stubSource is a camera source producing a fixed frame.
type stubSource struct{}

func (s *stubSource) Start(ctx context.Context) error { return nil }
func (s *stubSource) Stop() error                     { return nil }
func (s *stubSource) Frame(ctx context.Context) ([]byte, error) {
	return fakeJPEG, nil
}

// newTestState builds a portal wired to a mock service and a stub camera,
// wrapped for handler use.
func newTestState(t *testing.T, routes map[string]http.HandlerFunc) *PortalState {
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

	cam := camera.NewController(&stubSource{})
	p := portal.New(client, cam, config.CameraConfig{Quality: 85})
	p.Student.Interval = 0
	return NewPortalState(p)
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// writeServiceJSON writes a mock recognition-service JSON body.
func writeServiceJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}
