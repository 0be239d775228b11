package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendtrack/internal/service"
	"attendtrack/pkg/response"
)

// StatsHandler serves the attendance reporting endpoints.
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// monthParam parses a 1-based month query value; absent or malformed
// values come back as 0 and the service applies its defaults.
func monthParam(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

// Daily returns a student's per-course view for one date.
// GET /api/v1/students/:userId/daily-attendance
func (h *StatsHandler) Daily(c *gin.Context) {
	rows, err := h.statsSvc.Daily(c.Request.Context(), c.Param("userId"), c.Query("date"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentProfileNotFound):
			response.NotFound(c, "Student record not found")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Data(c, rows)
}

// StudentStats returns a student's month-window statistics.
// GET /api/v1/students/:userId/attendance-stats
func (h *StatsHandler) StudentStats(c *gin.Context) {
	stats, err := h.statsSvc.StudentStats(c.Request.Context(), c.Param("userId"),
		monthParam(c, "startMonth"), monthParam(c, "endMonth"))
	if err != nil {
		if errors.Is(err, service.ErrStudentProfileNotFound) {
			response.NotFound(c, "Student record not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.Data(c, stats)
}

// CourseStats returns a course's month-window statistics.
// GET /api/v1/course/:courseId/attendance-stats
func (h *StatsHandler) CourseStats(c *gin.Context) {
	stats, err := h.statsSvc.CourseStats(c.Request.Context(), c.Param("courseId"),
		monthParam(c, "startMonth"), monthParam(c, "endMonth"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, "Course not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.Data(c, stats)
}
