package service

import (
	"go.uber.org/zap"

	"attendtrack/config"
	"attendtrack/internal/repository"
	"attendtrack/pkg/clock"
	"attendtrack/pkg/jwt"
	"attendtrack/pkg/redis"
)

// Service bundles all business services for dependency injection.
type Service struct {
	Auth       AuthService
	Course     CourseService
	Attendance AttendanceService
	Stats      StatsService
	QR         QRService
	Export     ExportService
}

// NewService wires every service with its dependencies. rdb may be nil;
// services that use Redis degrade gracefully without it.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, clk clock.Clock, logger *zap.Logger) *Service {
	courseSvc := NewCourseService(repo, logger)
	statsSvc := NewStatsService(repo, clk, logger)

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Course:     courseSvc,
		Attendance: NewAttendanceService(repo, clk, logger),
		Stats:      statsSvc,
		QR:         NewQRService(cfg, repo, rdb, clk, logger),
		Export:     NewExportService(repo, statsSvc, courseSvc, clk, logger),
	}
}
