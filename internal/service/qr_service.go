package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendtrack/config"
	"attendtrack/internal/dto"
	"attendtrack/internal/repository"
	"attendtrack/pkg/clock"
	"attendtrack/pkg/redis"
)

// ErrNotCourseOwner rejects QR issuance for a course the caller does not teach.
var ErrNotCourseOwner = errors.New("course is not taught by the current user")

// QRService issues short-lived QR check-in sessions.
type QRService interface {
	Generate(ctx context.Context, userID, courseID string) (*dto.QRSessionResponse, error)
}

type qrService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	clk    clock.Clock
	logger *zap.Logger
}

// NewQRService creates a QRService instance.
func NewQRService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, clk clock.Clock, logger *zap.Logger) QRService {
	return &qrService{cfg: cfg, repo: repo, rdb: rdb, clk: clk, logger: logger}
}

// Generate issues a fresh session token for a course the caller teaches.
// The token expires after the configured QR session TTL; check-in
// attempts after that instant are rejected by the attendance engine.
func (s *qrService) Generate(ctx context.Context, userID, courseID string) (*dto.QRSessionResponse, error) {
	lecturer, err := s.repo.Lecturer.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLecturerProfileNotFound
		}
		s.logger.Error("look up lecturer profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("look up course", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	if course.LecturerID != lecturer.LecturerID {
		return nil, ErrNotCourseOwner
	}

	token := uuid.New().String()
	expiresAt := s.clk.Now().Add(s.cfg.App.QRSessionTTL)

	if s.rdb != nil {
		if err := s.rdb.StoreQRSession(ctx, token, courseID, s.cfg.App.QRSessionTTL); err != nil {
			// The expiry carried by the QR payload still bounds the
			// session; losing the lookup record is not fatal.
			s.logger.Warn("store qr session", zap.Error(err))
		}
	}

	s.logger.Info("qr session issued",
		zap.String("course_id", courseID),
		zap.String("session_id", token),
		zap.Time("expires_at", expiresAt))

	return &dto.QRSessionResponse{
		SessionID: token,
		CourseID:  courseID,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}
