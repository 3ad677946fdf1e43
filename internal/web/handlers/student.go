package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/facemark/attendance-portal/internal/camera"
	"github.com/facemark/attendance-portal/internal/portal"
)

// StudentHandler drives the student workflows over HTTP: camera control,
// enrollment (folder, capture run, training) and attendance marking.
type StudentHandler struct {
	state      *PortalState
	jobManager *JobManager
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(state *PortalState, jm *JobManager) *StudentHandler {
	return &StudentHandler{
		state:      state,
		jobManager: jm,
	}
}

// messageResponse carries a controller's rolling status message.
type messageResponse struct {
	Message string `json:"message"`
}

// CameraOpen starts the capture device
func (h *StudentHandler) CameraOpen(w http.ResponseWriter, r *http.Request) {
	var openErr error
	var message string
	h.state.With(func(p *portal.Portal) {
		openErr = p.Student.OpenCamera(r.Context())
		message = p.Student.Message
	})
	if openErr != nil {
		slog.Error("failed to open camera", "error", openErr)
		respondError(w, http.StatusInternalServerError, message)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"open": true})
}

// CameraClose stops the capture device
func (h *StudentHandler) CameraClose(w http.ResponseWriter, r *http.Request) {
	var closeErr error
	h.state.With(func(p *portal.Portal) {
		closeErr = p.Student.CloseCamera()
	})
	if closeErr != nil {
		slog.Error("failed to close camera", "error", closeErr)
		respondError(w, http.StatusInternalServerError, "failed to close camera")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"open": false})
}

// CameraStatus reports whether the capture device is open
func (h *StudentHandler) CameraStatus(w http.ResponseWriter, r *http.Request) {
	var open bool
	h.state.With(func(p *portal.Portal) {
		open = p.Camera.IsOpen()
	})
	respondJSON(w, http.StatusOK, map[string]bool{"open": open})
}

// folderResponse is the enrollment folder creation result.
type folderResponse struct {
	Message     string `json:"message"`
	FolderToken string `json:"folder_token,omitempty"`
}

// CreateFolder registers an enrollee on the service
func (h *StudentHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		EnrollID string `json:"enroll_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	var resp folderResponse
	var createErr error
	h.state.With(func(p *portal.Portal) {
		createErr = p.Student.CreateFolder(r.Context(), req.Name, req.EnrollID)
		resp = folderResponse{
			Message:     p.Student.Message,
			FolderToken: p.Student.Identity.FolderToken,
		}
	})
	switch {
	case errors.Is(createErr, portal.ErrMissingIdentity):
		respondError(w, http.StatusBadRequest, resp.Message)
	case createErr != nil:
		respondJSON(w, http.StatusBadGateway, resp)
	default:
		respondJSON(w, http.StatusOK, resp)
	}
}

// CaptureStart launches the sequential enrollment capture as a background
// job and returns its ID. Progress streams via the job's SSE endpoint.
// Precondition failures (no folder, closed camera) are reported
// synchronously and no job is created.
func (h *StudentHandler) CaptureStart(w http.ResponseWriter, r *http.Request) {
	var (
		folder  string
		ready   bool
		message string
	)
	h.state.With(func(p *portal.Portal) {
		folder = p.Student.Identity.FolderToken
		ready = folder != "" && p.Camera.IsOpen()
		switch {
		case folder == "":
			message = "❌ Please create a folder first"
		case !p.Camera.IsOpen():
			message = "❌ Please open the camera first"
		}
	})
	if !ready {
		respondError(w, http.StatusBadRequest, message)
		return
	}

	jobID := uuid.New().String()
	job := h.jobManager.CreateJob(jobID, folder, portal.TotalFrames)

	go h.runCaptureJob(job)

	respondJSON(w, http.StatusAccepted, map[string]string{
		"job_id": jobID,
		"folder": folder,
		"status": string(JobStatusPending),
	})
}

// runCaptureJob runs the capture loop in the background, holding the portal
// for the whole sequence. The run is never cancelled mid-sequence; it ends
// completed or failed at a frame.
func (h *StudentHandler) runCaptureJob(job *CaptureJob) {
	job.mu.Lock()
	job.Status = JobStatusRunning
	job.mu.Unlock()
	job.SendEvent(JobEvent{Type: "started", Message: "Capture started"})

	h.state.With(func(p *portal.Portal) {
		err := p.Student.CaptureFaces(context.Background(), job.SetProgress)
		if err != nil {
			slog.Error("capture run failed",
				"folder", sanitizeForLog(job.Folder),
				"frames_saved", p.Student.Session.FramesSaved,
				"error", err)
			job.Fail(p.Student.Session, p.Student.Message)
			return
		}
		job.Complete(p.Student.Message)
	})
}

// CaptureStatus returns the state of a capture job
func (h *StudentHandler) CaptureStatus(w http.ResponseWriter, r *http.Request) {
	job := h.jobManager.GetJob(chi.URLParam(r, "jobId"))
	if job == nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	job.mu.RLock()
	defer job.mu.RUnlock()
	respondJSON(w, http.StatusOK, job)
}

// CaptureEvents streams capture job events via SSE
func (h *StudentHandler) CaptureEvents(w http.ResponseWriter, r *http.Request) {
	streamSSEEvents(w, r,
		func(id string) SSEJob {
			job := h.jobManager.GetJob(id)
			if job == nil {
				return nil
			}
			return job
		},
		func(job SSEJob) any {
			return job
		},
	)
}

// Train triggers model training on the service. This blocks until the
// service answers; the route runs under a long timeout for that reason.
func (h *StudentHandler) Train(w http.ResponseWriter, r *http.Request) {
	var trainErr error
	var message string
	h.state.With(func(p *portal.Portal) {
		trainErr = p.Student.Train(r.Context())
		message = p.Student.Message
	})
	if trainErr != nil {
		respondJSON(w, http.StatusBadGateway, messageResponse{Message: message})
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: message})
}

// Mark snapshots the camera and submits the frame for recognition
func (h *StudentHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var markErr error
	var message string
	h.state.With(func(p *portal.Portal) {
		markErr = p.Student.MarkAttendance(r.Context())
		message = p.Student.Message
	})
	switch {
	case errors.Is(markErr, camera.ErrDeviceNotOpen):
		respondError(w, http.StatusBadRequest, message)
	case markErr != nil:
		respondJSON(w, http.StatusBadGateway, messageResponse{Message: message})
	default:
		respondJSON(w, http.StatusOK, messageResponse{Message: message})
	}
}

// Export downloads the attendance spreadsheet as a CSV attachment
func (h *StudentHandler) Export(w http.ResponseWriter, r *http.Request) {
	var (
		data      []byte
		message   string
		exportErr error
	)
	h.state.With(func(p *portal.Portal) {
		data, exportErr = p.Student.Export(r.Context())
		message = p.Student.Message
	})
	if exportErr != nil {
		respondJSON(w, http.StatusBadGateway, messageResponse{Message: message})
		return
	}
	if data == nil {
		respondJSON(w, http.StatusOK, messageResponse{Message: message})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}
