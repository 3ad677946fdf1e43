// Package portal implements the client-side controllers of the attendance
// portal: the role/mode navigation state machine, the enrollment capture
// pipeline, the recognition workflow and the teacher/admin session managers.
// Every workflow reports through a single rolling status message per
// controller; errors never propagate past the operation that produced them.
package portal

import "strings"

// The service prefixes success statuses with a checkmark and rejections with
// a cross. These literals are part of the wire contract and are compared
// verbatim, admin login included.
const (
	successMarker      = "✅"
	adminLoginAccepted = "✅ Login successful"

	recognizeSuccess = "success"
)

// statusOK reports whether a service status message signals success.
func statusOK(status string) bool {
	return strings.HasPrefix(status, successMarker)
}
