package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"attendtrack/internal/service"
	"attendtrack/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the file download endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// AttendanceReport downloads a course's month-window statistics as an
// xlsx workbook.
// GET /api/v1/export/course/:courseId/attendance.xlsx
func (h *ExportHandler) AttendanceReport(c *gin.Context) {
	buf, filename, err := h.exportSvc.AttendanceReport(c.Request.Context(), c.Param("courseId"),
		monthParam(c, "startMonth"), monthParam(c, "endMonth"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, "Course not found")
			return
		}
		response.InternalError(c)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Timetable downloads the caller's weekly timetable as an iCalendar
// feed.
// GET /api/v1/export/timetable.ics
func (h *ExportHandler) Timetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	data, err := h.exportSvc.TimetableICS(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=timetable.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}
