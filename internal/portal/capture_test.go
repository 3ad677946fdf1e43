package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestCaptureSession_CompletesAfterFullSequence(t *testing.T) {
	s := NewCaptureSession().Begin()

	for i := 0; i < TotalFrames; i++ {
		if s.State != CaptureRunning {
			t.Fatalf("expected capturing before frame %d, got %s", i, s.State)
		}
		s = s.Step(nil)
	}

	if s.State != CaptureCompleted {
		t.Errorf("expected completed, got %s", s.State)
	}
	if s.FramesSaved != TotalFrames {
		t.Errorf("expected %d frames saved, got %d", TotalFrames, s.FramesSaved)
	}
	if s.FailedIndex != -1 {
		t.Errorf("expected no failed index, got %d", s.FailedIndex)
	}
}

func TestCaptureSession_FailsAtFirstError(t *testing.T) {
	s := NewCaptureSession().Begin()

	for i := 0; i < 17; i++ {
		s = s.Step(nil)
	}
	s = s.Step(errors.New("upload failed"))

	if s.State != CaptureFailed {
		t.Errorf("expected failed, got %s", s.State)
	}
	if s.FramesSaved != 17 {
		t.Errorf("expected 17 frames saved, got %d", s.FramesSaved)
	}
	if s.FailedIndex != 17 {
		t.Errorf("expected failed index 17, got %d", s.FailedIndex)
	}

	// Terminal states absorb further steps.
	after := s.Step(nil)
	if after != s {
		t.Errorf("expected failed session to ignore steps, got %+v", after)
	}
}

func TestCaptureSession_BeginOnlyFromNonTerminal(t *testing.T) {
	done := CaptureSession{State: CaptureCompleted, FramesSaved: TotalFrames, TotalFrames: TotalFrames, FailedIndex: -1}
	if got := done.Begin(); got != done {
		t.Errorf("expected completed session to ignore Begin, got %+v", got)
	}

	fresh := NewCaptureSession()
	if got := fresh.Begin(); got.State != CaptureRunning || got.FramesSaved != 0 {
		t.Errorf("unexpected session after Begin: %+v", got)
	}
}

func TestCaptureFaces_UploadsFullOrderedSequence(t *testing.T) {
	var uploads []string
	routes := map[string]http.HandlerFunc{
		"/create_folder": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]string{"status": "✅ Folder created", "folder": "alice_en101"})
		},
		"/capture_multiple": func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("failed to parse multipart form: %v", err)
			}
			if folder := r.FormValue("folder"); folder != "alice_en101" {
				t.Errorf("unexpected folder field: %q", folder)
			}
			_, header, err := r.FormFile("file")
			if err != nil {
				t.Errorf("missing file part: %v", err)
				return
			}
			uploads = append(uploads, header.Filename)
			writeJSON(t, w, map[string]string{"status": "✅ Image saved"})
		},
	}

	s, _ := newTestStudent(t, routes)
	ctx := context.Background()

	if err := s.CreateFolder(ctx, "Alice", "EN101"); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if err := s.OpenCamera(ctx); err != nil {
		t.Fatalf("OpenCamera failed: %v", err)
	}

	var progress int
	if err := s.CaptureFaces(ctx, func(saved, total int) { progress = saved }); err != nil {
		t.Fatalf("CaptureFaces failed: %v", err)
	}

	if len(uploads) != TotalFrames {
		t.Fatalf("expected %d uploads, got %d", TotalFrames, len(uploads))
	}
	for i, name := range uploads {
		if want := fmt.Sprintf("alice_en101_%d.jpg", i); name != want {
			t.Errorf("upload %d: expected %q, got %q", i, want, name)
		}
	}
	if s.Session.State != CaptureCompleted {
		t.Errorf("expected completed session, got %s", s.Session.State)
	}
	if progress != TotalFrames {
		t.Errorf("expected final progress %d, got %d", TotalFrames, progress)
	}
	if s.Message != "✅ 50 images saved for Alice" {
		t.Errorf("unexpected message: %q", s.Message)
	}
}

func TestCaptureFaces_StopsAtFirstFailure(t *testing.T) {
	const failAt = 12

	var calls int
	routes := map[string]http.HandlerFunc{
		"/create_folder": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]string{"status": "✅ Folder created", "folder": "bob_en202"})
		},
		"/capture_multiple": func(w http.ResponseWriter, r *http.Request) {
			if calls == failAt {
				calls++
				http.Error(w, "disk full", http.StatusInternalServerError)
				return
			}
			calls++
			writeJSON(t, w, map[string]string{"status": "✅ Image saved"})
		},
	}

	s, _ := newTestStudent(t, routes)
	ctx := context.Background()

	if err := s.CreateFolder(ctx, "Bob", "EN202"); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if err := s.OpenCamera(ctx); err != nil {
		t.Fatalf("OpenCamera failed: %v", err)
	}

	if err := s.CaptureFaces(ctx, nil); err == nil {
		t.Fatal("expected capture to fail")
	}

	if calls != failAt+1 {
		t.Errorf("expected no uploads past the failure, got %d calls", calls)
	}
	if s.Session.State != CaptureFailed {
		t.Errorf("expected failed session, got %s", s.Session.State)
	}
	if s.Session.FramesSaved != failAt {
		t.Errorf("expected %d frames saved, got %d", failAt, s.Session.FramesSaved)
	}
	if s.Session.FailedIndex != failAt {
		t.Errorf("expected failed index %d, got %d", failAt, s.Session.FailedIndex)
	}
	if s.Message != fmt.Sprintf("❌ Error saving image %d", failAt+1) {
		t.Errorf("unexpected message: %q", s.Message)
	}
}

func TestCaptureFaces_WaitPrecedesFirstUpload(t *testing.T) {
	var hits int
	routes := map[string]http.HandlerFunc{
		"/create_folder": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]string{"status": "✅ Folder created", "folder": "carol_en303"})
		},
		"/capture_multiple": func(w http.ResponseWriter, r *http.Request) {
			hits++
			writeJSON(t, w, map[string]string{"status": "✅ Image saved"})
		},
	}

	s, _ := newTestStudent(t, routes)
	s.Interval = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.CreateFolder(ctx, "Carol", "EN303"); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if err := s.OpenCamera(ctx); err != nil {
		t.Fatalf("OpenCamera failed: %v", err)
	}
	cancel()

	// The run pauses before frame 0; a cancellation during that pause must
	// end the run with nothing uploaded.
	if err := s.CaptureFaces(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if hits != 0 {
		t.Errorf("expected no uploads before the first wait elapses, got %d", hits)
	}
	if s.Session.State != CaptureFailed {
		t.Errorf("expected failed session, got %s", s.Session.State)
	}
	if s.Session.FramesSaved != 0 {
		t.Errorf("expected 0 frames saved, got %d", s.Session.FramesSaved)
	}
	if s.Message != "❌ Error saving image 1" {
		t.Errorf("unexpected message: %q", s.Message)
	}
}

func TestCaptureFaces_PreconditionsBlockNetwork(t *testing.T) {
	var hits int
	routes := map[string]http.HandlerFunc{
		"/capture_multiple": func(w http.ResponseWriter, r *http.Request) {
			hits++
			writeJSON(t, w, map[string]string{"status": "✅ Image saved"})
		},
	}

	s, _ := newTestStudent(t, routes)
	ctx := context.Background()

	if err := s.CaptureFaces(ctx, nil); !errors.Is(err, ErrNoFolder) {
		t.Errorf("expected ErrNoFolder, got %v", err)
	}

	s.Identity.FolderToken = "alice_en101"
	if err := s.CaptureFaces(ctx, nil); err == nil {
		t.Error("expected error with closed camera")
	}

	if hits != 0 {
		t.Errorf("expected no uploads on precondition failures, got %d", hits)
	}
}
