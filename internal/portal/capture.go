package portal

import "time"

// TotalFrames is the fixed length of one enrollment capture sequence.
const TotalFrames = 50

// frameInterval throttles the capture loop so consecutive frames are not
// near-duplicates and uploads are rate-limited.
const frameInterval = 200 * time.Millisecond

// CaptureState is the lifecycle state of a capture session.
type CaptureState string

const (
	CaptureIdle       CaptureState = "idle"
	CaptureCameraOpen CaptureState = "camera_open"
	CaptureRunning    CaptureState = "capturing"
	CaptureCompleted  CaptureState = "completed"
	CaptureFailed     CaptureState = "failed"
)

// CaptureSession is one run of the sequential snapshot-and-upload loop.
// FramesSaved counts leading frames successfully persisted, never completed
// uploads of an unordered batch: frame i+1 is not sent before frame i's
// result is known. A session terminates in Completed or Failed; a fresh
// attempt starts a new session from zero.
type CaptureSession struct {
	State       CaptureState `json:"state"`
	FramesSaved int          `json:"frames_saved"`
	TotalFrames int          `json:"total_frames"`
	FailedIndex int          `json:"failed_index"` // 0-based index of the failed upload, -1 otherwise
}

// NewCaptureSession creates an idle session for the standard sequence length.
func NewCaptureSession() CaptureSession {
	return CaptureSession{State: CaptureIdle, TotalFrames: TotalFrames, FailedIndex: -1}
}

// Begin transitions the session into the capturing state with zero frames
// saved. Only idle or camera-open sessions may begin; terminal sessions
// must be replaced, not restarted.
func (s CaptureSession) Begin() CaptureSession {
	if s.State != CaptureIdle && s.State != CaptureCameraOpen {
		return s
	}
	s.State = CaptureRunning
	s.FramesSaved = 0
	s.FailedIndex = -1
	return s
}

// Step applies one upload result to a capturing session. A nil result saves
// the frame and completes the session when the sequence is full; a non-nil
// result fails the session at the current index. Steps on a non-capturing
// session are ignored, so no uploads can be recorded past a failure.
func (s CaptureSession) Step(uploadErr error) CaptureSession {
	if s.State != CaptureRunning {
		return s
	}
	if uploadErr != nil {
		s.State = CaptureFailed
		s.FailedIndex = s.FramesSaved
		return s
	}
	s.FramesSaved++
	if s.FramesSaved >= s.TotalFrames {
		s.State = CaptureCompleted
	}
	return s
}

// Terminal reports whether the session has finished, successfully or not.
func (s CaptureSession) Terminal() bool {
	return s.State == CaptureCompleted || s.State == CaptureFailed
}
