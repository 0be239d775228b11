package dto

// ── attendance requests ──

// MarkAttendanceRequest is a QR check-in attempt. StudentID is advisory
// only; the engine resolves the student from the authenticated caller.
// Timestamps are ISO-8601.
type MarkAttendanceRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	CourseID  string `json:"courseId"  binding:"required,uuid"`
	StudentID string `json:"studentId" binding:"required"`
	Timestamp string `json:"timestamp" binding:"required"`
	ExpiresAt string `json:"expiresAt" binding:"required"`
}

// MarkManualAttendanceRequest is a lecturer-initiated override.
type MarkManualAttendanceRequest struct {
	StudentID string `json:"studentId" binding:"required,uuid"`
	Timestamp string `json:"timestamp" binding:"required"`
}

// ── attendance responses ──

// MarkAttendanceResponse reports a successful check-in.
type MarkAttendanceResponse struct {
	Status      string `json:"status"`
	CheckInTime string `json:"check_in_time"`
}

// CourseAttendanceStatus is one record in the per-course day view.
// Status is re-derived from the check-in time, not read from storage.
type CourseAttendanceStatus struct {
	Status      string `json:"status"`
	CheckInTime string `json:"check_in_time"`
	StudentName string `json:"student_name"`
	StudentCode string `json:"student_id"`
}

// QRSessionResponse is a freshly issued QR session.
type QRSessionResponse struct {
	SessionID string `json:"sessionId"`
	CourseID  string `json:"courseId"`
	ExpiresAt string `json:"expiresAt"`
}
