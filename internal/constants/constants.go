// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Event streaming constants
const (
	// EventChannelBuffer is the buffer size of per-listener job event channels.
	// Slow SSE consumers drop events rather than stall the capture loop.
	EventChannelBuffer = 100
)

// Capture constants
const (
	// MaxCaptureUploadRetainedJobs is the number of finished capture jobs kept
	// in memory for late status polls before cleanup.
	MaxCaptureUploadRetainedJobs = 16
)
