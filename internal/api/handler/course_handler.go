package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"attendtrack/internal/dto"
	"attendtrack/internal/service"
	"attendtrack/pkg/response"
)

// CourseHandler serves course, enrollment and QR-session endpoints.
type CourseHandler struct {
	courseSvc service.CourseService
	qrSvc     service.QRService
}

// NewCourseHandler creates a CourseHandler.
func NewCourseHandler(courseSvc service.CourseService, qrSvc service.QRService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, qrSvc: qrSvc}
}

// Create creates a course owned by the calling lecturer.
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLecturerProfileNotFound):
			response.NotFound(c, "Lecturer record not found for the current user")
		case errors.Is(err, service.ErrInvalidSchedule):
			response.BadRequest(c, "Start time must be an HH:MM time before end time")
		case errors.Is(err, service.ErrCourseCodeTaken):
			response.BadRequest(c, "Course code is already in use")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, course)
}

// List returns all courses.
// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Data(c, courses)
}

// ListByLecturer returns the courses a lecturer teaches.
// GET /api/v1/lecturers/:userId/courses
func (h *CourseHandler) ListByLecturer(c *gin.Context) {
	courses, err := h.courseSvc.ListByLecturer(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, service.ErrLecturerProfileNotFound) {
			response.NotFound(c, "Lecturer record not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.Data(c, courses)
}

// Roster returns the students enrolled in a course.
// GET /api/v1/courses/:courseId/students
func (h *CourseHandler) Roster(c *gin.Context) {
	roster, err := h.courseSvc.Roster(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, "Course not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.Data(c, roster)
}

// Enroll enrolls the calling student by course code.
// POST /api/v1/enrollments
func (h *CourseHandler) Enroll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	course, err := h.courseSvc.Enroll(c.Request.Context(), userID, req.CourseCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentProfileNotFound):
			response.NotFound(c, "Student record not found for the current user")
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, "Course not found")
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.BadRequest(c, "Already enrolled in this course")
		default:
			response.InternalError(c)
		}
		return
	}

	response.SuccessWith(c, "Enrolled successfully", gin.H{"course": course})
}

// Unenroll removes the calling student from a course.
// DELETE /api/v1/enrollments/:courseCode
func (h *CourseHandler) Unenroll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.courseSvc.Unenroll(c.Request.Context(), userID, c.Param("courseCode"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentProfileNotFound):
			response.NotFound(c, "Student record not found for the current user")
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, "Course not found")
		case errors.Is(err, service.ErrNotEnrolled):
			response.BadRequest(c, "Not enrolled in this course")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Success(c, "Unenrolled successfully")
}

// Timetable returns the caller's weekly timetable.
// GET /api/v1/timetable
func (h *CourseHandler) Timetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	entries, err := h.courseSvc.Timetable(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Data(c, entries)
}

// GenerateQRSession issues a fresh QR session for a course the caller
// teaches.
// POST /api/v1/courses/:courseId/qr-session
func (h *CourseHandler) GenerateQRSession(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.qrSvc.Generate(c.Request.Context(), userID, c.Param("courseId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLecturerProfileNotFound):
			response.NotFound(c, "Lecturer record not found for the current user")
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, "Course not found")
		case errors.Is(err, service.ErrNotCourseOwner):
			response.Forbidden(c, "You do not teach this course")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Data(c, session)
}
