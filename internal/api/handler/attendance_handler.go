package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"attendtrack/internal/dto"
	"attendtrack/internal/service"
	"attendtrack/pkg/response"
)

// AttendanceHandler serves the check-in endpoints.
type AttendanceHandler struct {
	attSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attSvc: attSvc}
}

// Mark records a QR check-in for the authenticated student.
// POST /api/v1/attendance
func (h *AttendanceHandler) Mark(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.attSvc.Mark(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleMarkError(c, err)
		return
	}

	response.SuccessWith(c, "Attendance marked successfully", gin.H{
		"status":        result.Status,
		"check_in_time": result.CheckInTime,
	})
}

// handleMarkError translates the decision engine's terminal outcomes.
// A duplicate scan is a benign outcome and answers 200 with
// success:false; the frontend shows it as a notice, not an error.
func (h *AttendanceHandler) handleMarkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentProfileNotFound):
		response.NotFound(c, "Student record not found for the current user.")
	case errors.Is(err, service.ErrQRCodeExpired):
		response.BadRequest(c, "QR code has expired. Please scan a new QR code.")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, "Course not found")
	case errors.Is(err, service.ErrScheduleNotSet):
		response.BadRequest(c, "Course schedule is not set")
	case errors.Is(err, service.ErrAlreadyMarked):
		response.Fail(c, http.StatusOK, "You have already marked attendance for this session")
	case errors.Is(err, service.ErrNotEnrolled):
		response.BadRequest(c, "Please enroll in the course first")
	case errors.Is(err, service.ErrInvalidTimestamp):
		response.Fail(c, http.StatusUnprocessableEntity, "Invalid timestamp format")
	default:
		response.InternalError(c)
	}
}

// ManualMark records attendance on a lecturer's behalf.
// POST /api/v1/manual-attendance/:courseId
func (h *AttendanceHandler) ManualMark(c *gin.Context) {
	var req dto.MarkManualAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.attSvc.MarkManual(c.Request.Context(), c.Param("courseId"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, "Course not found")
		case errors.Is(err, service.ErrScheduleNotSet):
			response.BadRequest(c, "Course schedule is not set")
		case errors.Is(err, service.ErrNotEnrolled):
			response.BadRequest(c, "Student is not enrolled in this course")
		case errors.Is(err, service.ErrAlreadyMarkedToday):
			response.BadRequest(c, "Attendance already marked today")
		case errors.Is(err, service.ErrInvalidTimestamp):
			response.Fail(c, http.StatusUnprocessableEntity, "Invalid timestamp format")
		default:
			response.InternalError(c)
		}
		return
	}

	response.SuccessWith(c, "Attendance marked successfully", gin.H{
		"status":        result.Status,
		"check_in_time": result.CheckInTime,
	})
}

// Cancel deletes a student's record for today.
// DELETE /api/v1/attendance/:courseId/:studentId
func (h *AttendanceHandler) Cancel(c *gin.Context) {
	err := h.attSvc.Cancel(c.Request.Context(), c.Param("courseId"), c.Param("studentId"))
	if err != nil {
		if errors.Is(err, service.ErrAttendanceNotFound) {
			response.NotFound(c, "No attendance record found for today")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, "Attendance cancelled")
}

// StatusByCourse returns the day's records for a course, keyed by
// student id.
// GET /api/v1/attendance-status/course/:courseId
func (h *AttendanceHandler) StatusByCourse(c *gin.Context) {
	result, err := h.attSvc.StatusByCourse(c.Request.Context(), c.Param("courseId"), c.Query("date"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, "Course not found")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Data(c, result)
}
