package camera

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"github.com/facemark/attendance-portal/internal/config"
)

// WebcamSource captures JPEG frames from a local V4L2 webcam through a
// GStreamer pipeline:
//
//	v4l2src → videoconvert → videoscale → capsfilter → jpegenc → appsink
//
// The appsink keeps only the latest frame (max-buffers=1, drop=true) so a
// Frame call always observes a recent image rather than a stale buffer.
type WebcamSource struct {
	cfg config.CameraConfig

	mu       sync.Mutex
	pipeline *gst.Pipeline
	frames   chan []byte
	running  bool
}

// NewWebcamSource creates an idle webcam source. The pipeline is built on
// Start, not here, so construction never touches the device.
func NewWebcamSource(cfg config.CameraConfig) *WebcamSource {
	return &WebcamSource{cfg: cfg}
}

// Start builds the GStreamer pipeline and sets it to PLAYING. Frames start
// arriving asynchronously once the pipeline prerolls.
func (s *WebcamSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	gst.Init(nil)

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	src, err := gst.NewElement("v4l2src")
	if err != nil {
		return fmt.Errorf("failed to create v4l2src: %w", err)
	}
	src.SetProperty("device", s.cfg.Device)

	converter, err := gst.NewElement("videoconvert")
	if err != nil {
		return fmt.Errorf("failed to create videoconvert: %w", err)
	}

	scaler, err := gst.NewElement("videoscale")
	if err != nil {
		return fmt.Errorf("failed to create videoscale: %w", err)
	}

	capsfilter, err := gst.NewElement("capsfilter")
	if err != nil {
		return fmt.Errorf("failed to create capsfilter: %w", err)
	}
	capsStr := fmt.Sprintf("video/x-raw,width=%d,height=%d", s.cfg.Width, s.cfg.Height)
	capsfilter.SetProperty("caps", gst.NewCapsFromString(capsStr))

	encoder, err := gst.NewElement("jpegenc")
	if err != nil {
		return fmt.Errorf("failed to create jpegenc: %w", err)
	}
	encoder.SetProperty("quality", s.cfg.Quality)

	appsink, err := app.NewAppSink()
	if err != nil {
		return fmt.Errorf("failed to create appsink: %w", err)
	}
	appsink.SetProperty("sync", false)
	appsink.SetProperty("max-buffers", 1) // keep only latest frame
	appsink.SetProperty("drop", true)

	pipeline.AddMany(src, converter, scaler, capsfilter, encoder, appsink.Element)
	if err := gst.ElementLinkMany(src, converter, scaler, capsfilter, encoder, appsink.Element); err != nil {
		return fmt.Errorf("failed to link pipeline elements: %w", err)
	}

	frames := make(chan []byte, 1)
	appsink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: func(sink *app.Sink) gst.FlowReturn {
			return onNewSample(sink, frames)
		},
	})

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		return fmt.Errorf("failed to start pipeline: %w", err)
	}

	s.pipeline = pipeline
	s.frames = frames
	s.running = true
	slog.Info("camera: pipeline started", "device", s.cfg.Device, "width", s.cfg.Width, "height", s.cfg.Height)
	return nil
}

// Stop tears the pipeline down. Idempotent.
func (s *WebcamSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	if err := s.pipeline.SetState(gst.StateNull); err != nil {
		return fmt.Errorf("failed to stop pipeline: %w", err)
	}
	s.pipeline = nil
	s.frames = nil
	s.running = false
	slog.Info("camera: pipeline stopped", "device", s.cfg.Device)
	return nil
}

// Frame returns the next encoded frame, blocking until one arrives or the
// context is cancelled.
func (s *WebcamSource) Frame(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	frames := s.frames
	s.mu.Unlock()

	if frames == nil {
		return nil, ErrDeviceNotOpen
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case frame := <-frames:
		return frame, nil
	}
}

// onNewSample pulls one JPEG sample from the appsink and publishes it.
// The channel holds the latest frame only; a stale undelivered frame is
// replaced rather than queued.
func onNewSample(sink *app.Sink, frames chan []byte) gst.FlowReturn {
	sample := sink.PullSample()
	if sample == nil {
		// A single corrupted frame should not kill the pipeline.
		slog.Warn("camera: failed to pull sample from appsink, skipping frame")
		return gst.FlowOK
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		slog.Warn("camera: failed to get buffer from sample, skipping frame")
		return gst.FlowOK
	}

	mapInfo := buffer.Map(gst.MapRead)
	data := mapInfo.Bytes()
	if len(data) == 0 {
		buffer.Unmap()
		slog.Warn("camera: empty buffer received")
		return gst.FlowOK
	}

	// Copy frame data, GStreamer will reuse the buffer.
	frame := make([]byte, len(data))
	copy(frame, data)
	buffer.Unmap()

	for {
		select {
		case frames <- frame:
			return gst.FlowOK
		default:
			// Drop the stale frame and retry with the fresh one.
			select {
			case <-frames:
			default:
			}
		}
	}
}
