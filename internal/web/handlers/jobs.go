package handlers

import (
	"sync"
	"time"

	"github.com/facemark/attendance-portal/internal/constants"
	"github.com/facemark/attendance-portal/internal/portal"
)

// JobStatus represents the status of an async job.
type JobStatus string

// JobStatus constants define the lifecycle states of an async job. There is
// no cancelled state: a capture run is never interrupted mid-sequence, it
// either completes or fails at a frame.
const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// CaptureJob represents an async enrollment capture run.
type CaptureJob struct {
	EventBroadcaster

	ID          string     `json:"id"`
	Folder      string     `json:"folder"`
	Status      JobStatus  `json:"status"`
	FramesSaved int        `json:"frames_saved"`
	TotalFrames int        `json:"total_frames"`
	FailedIndex int        `json:"failed_index"`
	Error       string     `json:"error,omitempty"`
	Message     string     `json:"message,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// GetStatus returns the current job status (implements SSEJob).
func (j *CaptureJob) GetStatus() JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Status
}

// SetProgress records a saved frame and broadcasts it.
func (j *CaptureJob) SetProgress(saved, total int) {
	j.mu.Lock()
	j.FramesSaved = saved
	j.TotalFrames = total
	j.mu.Unlock()
	j.SendEvent(JobEvent{
		Type: "progress",
		Data: map[string]int{"frames_saved": saved, "total_frames": total},
	})
}

// Complete marks the job finished and broadcasts the final state.
func (j *CaptureJob) Complete(message string) {
	now := time.Now()
	j.mu.Lock()
	j.Status = JobStatusCompleted
	j.Message = message
	j.CompletedAt = &now
	j.mu.Unlock()
	j.SendEvent(JobEvent{Type: "completed", Message: message})
}

// Fail marks the job failed at the given frame index and broadcasts it.
func (j *CaptureJob) Fail(session portal.CaptureSession, message string) {
	now := time.Now()
	j.mu.Lock()
	j.Status = JobStatusFailed
	j.FramesSaved = session.FramesSaved
	j.FailedIndex = session.FailedIndex
	j.Error = message
	j.Message = message
	j.CompletedAt = &now
	j.mu.Unlock()
	j.SendEvent(JobEvent{Type: "job_error", Message: message})
}

// JobEvent represents an event from a job.
type JobEvent struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// EventBroadcaster provides listener management and event broadcasting for async jobs.
// Embed this in job structs to get AddListener, RemoveListener, and SendEvent methods.
type EventBroadcaster struct {
	listeners []chan JobEvent
	mu        sync.RWMutex
}

// AddListener adds an event listener.
func (b *EventBroadcaster) AddListener() chan JobEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan JobEvent, constants.EventChannelBuffer)
	b.listeners = append(b.listeners, ch)
	return ch
}

// RemoveListener removes an event listener.
func (b *EventBroadcaster) RemoveListener(ch chan JobEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, listener := range b.listeners {
		if listener == ch {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			close(ch)
			return
		}
	}
}

// SendEvent sends an event to all listeners.
func (b *EventBroadcaster) SendEvent(event JobEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, listener := range b.listeners {
		select {
		case listener <- event:
		default:
			// Listener buffer full, skip.
		}
	}
}

// SSEJob is the interface required by streamSSEEvents to stream job events via SSE.
type SSEJob interface {
	AddListener() chan JobEvent
	RemoveListener(ch chan JobEvent)
	GetStatus() JobStatus
}

// JobManager manages async capture jobs.
type JobManager struct {
	jobs map[string]*CaptureJob
	mu   sync.RWMutex
}

// NewJobManager creates a new job manager.
func NewJobManager() *JobManager {
	return &JobManager{
		jobs: make(map[string]*CaptureJob),
	}
}

// CreateJob creates a new capture job. Finished jobs beyond the retention
// limit are pruned so the map does not grow with every enrollment.
func (m *JobManager) CreateJob(id, folder string, totalFrames int) *CaptureJob {
	job := &CaptureJob{
		ID:          id,
		Folder:      folder,
		Status:      JobStatusPending,
		TotalFrames: totalFrames,
		FailedIndex: -1,
		StartedAt:   time.Now(),
	}

	m.mu.Lock()
	if len(m.jobs) >= constants.MaxCaptureUploadRetainedJobs {
		for jid, j := range m.jobs {
			if s := j.GetStatus(); s == JobStatusCompleted || s == JobStatusFailed {
				delete(m.jobs, jid)
			}
		}
	}
	m.jobs[id] = job
	m.mu.Unlock()

	return job
}

// GetJob retrieves a job by ID.
func (m *JobManager) GetJob(id string) *CaptureJob {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobs[id]
}

// DeleteJob removes a job.
func (m *JobManager) DeleteJob(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
}
