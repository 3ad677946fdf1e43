package backend

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// RecordID is a directory record identifier. The service emits it as a JSON
// number for rows it generated and as a string for rows round-tripped
// through its CSV files, so both encodings must be accepted.
type RecordID string

func (id *RecordID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = RecordID(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = RecordID(strconv.FormatInt(n, 10))
		return nil
	}
	return fmt.Errorf("unmarshal record id: unexpected value %s", data)
}

// StatusResponse is the generic service response carrying a status message.
type StatusResponse struct {
	Status string `json:"status"`
}

// FolderResponse is returned by the enrollment folder creation endpoint.
// Folder is the opaque token tagging all subsequent frame uploads.
type FolderResponse struct {
	Status string `json:"status"`
	Folder string `json:"folder"`
}

// RecognizeResponse is returned by the face recognition endpoint.
// Status is the literal "success" on a match; any other value means the
// face was not recognized.
type RecognizeResponse struct {
	Status string `json:"status"`
	Name   string `json:"name"`
	Time   string `json:"time"`
}

// TeacherLoginResponse is returned by the teacher login endpoint.
type TeacherLoginResponse struct {
	Status    string `json:"status"`
	TeacherID string `json:"teacher_id"`
}

// AttendanceResponse is returned by the teacher attendance endpoint.
// Attendance and Columns may be absent when no records match.
type AttendanceResponse struct {
	Status     string              `json:"status"`
	Attendance []map[string]string `json:"attendance"`
	Columns    []string            `json:"columns"`
}

// Student is one attendance record row from the student directory.
// The service does not guarantee Enrollment_ID uniqueness.
type Student struct {
	ID           RecordID `json:"id"`
	Name         string   `json:"Name"`
	EnrollmentID string   `json:"Enrollment_ID"`
	Date         string   `json:"Date"`
	Time         string   `json:"Time"`
}

// Teacher is one record from the teacher directory. The PIN travels in
// plaintext; the service stores it that way.
type Teacher struct {
	ID        RecordID `json:"id"`
	TeacherID string   `json:"Teacher_ID"`
	Name      string   `json:"Name"`
	PIN       string   `json:"PIN"`
}
