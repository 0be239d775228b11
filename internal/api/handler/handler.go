package handler

import "attendtrack/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth       *AuthHandler
	Course     *CourseHandler
	Attendance *AttendanceHandler
	Stats      *StatsHandler
	Export     *ExportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Course:     NewCourseHandler(svc.Course, svc.QR),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Stats:      NewStatsHandler(svc.Stats),
		Export:     NewExportHandler(svc.Export),
	}
}
