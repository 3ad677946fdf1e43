package portal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facemark/attendance-portal/internal/backend"
	"github.com/facemark/attendance-portal/internal/camera"
	"github.com/facemark/attendance-portal/internal/config"
)

var (
	// ErrMissingIdentity is returned when enrollment is attempted without
	// both a name and an enrollment ID.
	ErrMissingIdentity = errors.New("name and enrollment ID are required")

	// ErrNoFolder is returned when capture is attempted before the
	// enrollment folder has been created.
	ErrNoFolder = errors.New("enrollment folder has not been created")
)

// EnrollmentIdentity is the identity entered on the new-student screen. It
// lives only as long as the screen; navigating away discards it.
type EnrollmentIdentity struct {
	Name        string `json:"name"`
	EnrollID    string `json:"enroll_id"`
	FolderToken string `json:"folder_token"`
}

// StudentController drives the two student workflows: enrolling a new face
// (folder creation, sequential frame capture, training) and marking
// attendance by recognition. Outcomes surface through Message; returned
// errors carry the same information for non-interactive callers.
type StudentController struct {
	backend *backend.Client
	camera  *camera.Controller

	maxSize int
	quality int

	// interval between consecutive frame uploads; tests set it to zero.
	Interval time.Duration

	Identity EnrollmentIdentity
	Session  CaptureSession
	Message  string
}

// NewStudentController wires a controller against the service client and the
// shared capture device.
func NewStudentController(client *backend.Client, cam *camera.Controller, cfg config.CameraConfig) *StudentController {
	return &StudentController{
		backend:  client,
		camera:   cam,
		maxSize:  cfg.MaxSize,
		quality:  cfg.Quality,
		Interval: frameInterval,
		Session:  NewCaptureSession(),
	}
}

// OpenCamera starts the capture device. The session reflects device state
// only while no capture run has finished.
func (s *StudentController) OpenCamera(ctx context.Context) error {
	if err := s.camera.Open(ctx); err != nil {
		s.Message = "❌ Error opening camera"
		return err
	}
	if !s.Session.Terminal() {
		s.Session.State = CaptureCameraOpen
	}
	return nil
}

// CloseCamera stops the capture device.
func (s *StudentController) CloseCamera() error {
	if err := s.camera.Close(); err != nil {
		return err
	}
	if s.Session.State == CaptureCameraOpen {
		s.Session.State = CaptureIdle
	}
	return nil
}

// CreateFolder registers the enrollee on the service and stores the returned
// folder token for the capture run. Both identity fields are required; the
// check happens before any network traffic.
func (s *StudentController) CreateFolder(ctx context.Context, name, enrollID string) error {
	if name == "" || enrollID == "" {
		s.Message = "❌ Please enter name and enrollment ID"
		return ErrMissingIdentity
	}

	resp, err := s.backend.CreateFolder(ctx, name, enrollID)
	if err != nil {
		s.Message = "❌ Error creating folder"
		return err
	}

	s.Message = resp.Status
	if !statusOK(resp.Status) {
		return nil
	}
	s.Identity = EnrollmentIdentity{Name: name, EnrollID: enrollID, FolderToken: resp.Folder}
	s.Session = NewCaptureSession()
	if s.camera.IsOpen() {
		s.Session.State = CaptureCameraOpen
	}
	return nil
}

// CaptureFaces runs the sequential enrollment capture: wait, snapshot,
// upload, fifty times over. Frame i+1 is never sent before frame i's upload
// succeeded, and the first failure aborts the run with no retry and no
// resume. Preconditions (folder token, open camera) are checked before any
// network traffic. onProgress, if non-nil, is called after every saved frame.
func (s *StudentController) CaptureFaces(ctx context.Context, onProgress func(saved, total int)) error {
	if s.Identity.FolderToken == "" {
		s.Message = "❌ Please create a folder first"
		return ErrNoFolder
	}
	if !s.camera.IsOpen() {
		s.Message = "❌ Please open the camera first"
		return camera.ErrDeviceNotOpen
	}

	s.Session = NewCaptureSession().Begin()
	for i := 0; i < s.Session.TotalFrames; i++ {
		if s.Interval > 0 {
			select {
			case <-time.After(s.Interval):
			case <-ctx.Done():
				s.Session = s.Session.Step(ctx.Err())
				s.Message = fmt.Sprintf("❌ Error saving image %d", i+1)
				return ctx.Err()
			}
		}

		err := s.captureFrame(ctx, i)
		s.Session = s.Session.Step(err)
		if err != nil {
			s.Message = fmt.Sprintf("❌ Error saving image %d", i+1)
			return fmt.Errorf("could not save image %d: %w", i+1, err)
		}
		if onProgress != nil {
			onProgress(s.Session.FramesSaved, s.Session.TotalFrames)
		}
	}

	s.Message = fmt.Sprintf("✅ %d images saved for %s", s.Session.TotalFrames, s.Identity.Name)
	return nil
}

// captureFrame grabs one snapshot and uploads it as {folder}_{i}.jpg.
func (s *StudentController) captureFrame(ctx context.Context, i int) error {
	frame, err := s.camera.Snapshot(ctx)
	if err != nil {
		return err
	}
	frame, err = camera.Recompress(frame, s.maxSize, s.quality)
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("%s_%d.jpg", s.Identity.FolderToken, i)
	resp, err := s.backend.UploadFrame(ctx, s.Identity.FolderToken, fileName, frame)
	if err != nil {
		return err
	}
	if !statusOK(resp.Status) {
		return fmt.Errorf("service rejected frame: %s", resp.Status)
	}
	return nil
}

// Train triggers model training on the service. The call blocks until the
// service answers; there is no progress reporting.
func (s *StudentController) Train(ctx context.Context) error {
	resp, err := s.backend.Train(ctx)
	if err != nil {
		s.Message = "❌ Error training model"
		return err
	}
	s.Message = resp.Status
	return nil
}

// MarkAttendance snapshots the open camera and submits the frame for
// recognition. A recognized face yields a success message with the matched
// name and timestamp; an unrecognized one a distinct rejection message.
func (s *StudentController) MarkAttendance(ctx context.Context) error {
	if !s.camera.IsOpen() {
		s.Message = "❌ Please open the camera first"
		return camera.ErrDeviceNotOpen
	}

	frame, err := s.camera.Snapshot(ctx)
	if err != nil {
		s.Message = "❌ Error in recognition"
		return err
	}
	frame, err = camera.Recompress(frame, s.maxSize, s.quality)
	if err != nil {
		s.Message = "❌ Error in recognition"
		return err
	}

	resp, err := s.backend.Recognize(ctx, frame)
	if err != nil {
		s.Message = "❌ Error in recognition"
		return err
	}
	if resp.Status != recognizeSuccess {
		s.Message = "❌ Face not recognized. Please try again."
		return nil
	}
	s.Message = fmt.Sprintf("✅ Attendance marked for %s at %s", resp.Name, resp.Time)
	return nil
}

// Export downloads the attendance spreadsheet. The CSV bytes are returned to
// the caller to write wherever they want; a service-side "nothing to export"
// status comes back as a message with nil bytes.
func (s *StudentController) Export(ctx context.Context) ([]byte, error) {
	data, status, err := s.backend.Export(ctx)
	if err != nil {
		s.Message = "❌ Error exporting attendance"
		return nil, err
	}
	if data == nil {
		s.Message = status
		return nil, nil
	}
	s.Message = "✅ Attendance exported successfully!"
	return data, nil
}

// Reset discards identity, session and message, as navigating away from the
// student screens does.
func (s *StudentController) Reset() {
	s.Identity = EnrollmentIdentity{}
	s.Session = NewCaptureSession()
	s.Message = ""
}
