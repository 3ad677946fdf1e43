package camera

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"testing"
)

// stubSource is a Source backed by a fixed frame, tracking lifecycle calls.
type stubSource struct {
	frame      []byte
	startCalls int
	stopCalls  int
	startErr   error
}

func (s *stubSource) Start(ctx context.Context) error {
	s.startCalls++
	return s.startErr
}

func (s *stubSource) Stop() error {
	s.stopCalls++
	return nil
}

func (s *stubSource) Frame(ctx context.Context) ([]byte, error) {
	return s.frame, nil
}

func TestController_SnapshotRequiresOpen(t *testing.T) {
	c := NewController(&stubSource{frame: []byte{0xff, 0xd8}})

	if _, err := c.Snapshot(context.Background()); !errors.Is(err, ErrDeviceNotOpen) {
		t.Errorf("expected ErrDeviceNotOpen, got %v", err)
	}

	if err := c.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	frame, err := c.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !bytes.Equal(frame, []byte{0xff, 0xd8}) {
		t.Errorf("unexpected frame bytes: %v", frame)
	}
}

func TestController_OpenCloseIdempotent(t *testing.T) {
	src := &stubSource{}
	c := NewController(src)

	ctx := context.Background()
	if err := c.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := c.Open(ctx); err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	if src.startCalls != 1 {
		t.Errorf("expected 1 Start call, got %d", src.startCalls)
	}
	if !c.IsOpen() {
		t.Error("expected controller to report open")
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if src.stopCalls != 1 {
		t.Errorf("expected 1 Stop call, got %d", src.stopCalls)
	}
	if c.IsOpen() {
		t.Error("expected controller to report closed")
	}
}

func TestController_SnapshotAfterCloseFails(t *testing.T) {
	c := NewController(&stubSource{frame: []byte{1}})
	ctx := context.Background()

	if err := c.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := c.Snapshot(ctx); !errors.Is(err, ErrDeviceNotOpen) {
		t.Errorf("expected ErrDeviceNotOpen after close, got %v", err)
	}
}

func TestController_OpenPropagatesSourceError(t *testing.T) {
	src := &stubSource{startErr: errors.New("device busy")}
	c := NewController(src)

	if err := c.Open(context.Background()); err == nil {
		t.Error("expected error when source fails to start")
	}
	if c.IsOpen() {
		t.Error("controller must stay closed after a failed open")
	}
}

// encodeTestJPEG produces a JPEG of the given dimensions for resize tests.
func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestRecompress_DownscalesLargeFrames(t *testing.T) {
	data := encodeTestJPEG(t, 1600, 1200)

	out, err := Recompress(data, 800, 85)
	if err != nil {
		t.Fatalf("Recompress failed: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 600 {
		t.Errorf("expected 800x600, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRecompress_SmallFramesPassThrough(t *testing.T) {
	data := encodeTestJPEG(t, 640, 480)

	out, err := Recompress(data, 800, 85)
	if err != nil {
		t.Fatalf("Recompress failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("expected small frame to pass through unchanged")
	}
}

func TestRecompress_DisabledWhenMaxSizeZero(t *testing.T) {
	data := []byte("not even a jpeg")

	out, err := Recompress(data, 0, 85)
	if err != nil {
		t.Fatalf("Recompress failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("expected pass-through when disabled")
	}
}

func TestRecompress_RejectsGarbage(t *testing.T) {
	if _, err := Recompress([]byte("garbage"), 800, 85); err == nil {
		t.Error("expected decode error for garbage input")
	}
}
