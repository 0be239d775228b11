package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendtrack/internal/dto"
	"attendtrack/internal/model"
	"attendtrack/internal/repository"
	"attendtrack/pkg/clock"
	pkgerrors "attendtrack/pkg/errors"
)

// ── attendance business errors ──

var (
	ErrStudentProfileNotFound = errors.New("student record not found for the current user")
	ErrQRCodeExpired          = errors.New("qr code has expired")
	ErrScheduleNotSet         = errors.New("course start or end time not set")
	ErrAlreadyMarked          = errors.New("attendance already marked for this session")
	ErrAlreadyMarkedToday     = errors.New("attendance already marked for today")
	ErrNotEnrolled            = errors.New("student is not enrolled in this course")
	ErrAttendanceNotFound     = errors.New("no attendance record found for today")
	ErrInvalidTimestamp       = errors.New("invalid timestamp format")
	ErrInvalidDate            = errors.New("invalid date format")
)

// Classification window around the scheduled start, in minutes. A
// check-in between 10 minutes early and 15 minutes late counts as
// present; anything outside is late. Absent is never decided here — it
// only materializes in reports as the absence of a record.
const (
	earlyGraceMinutes = 10
	lateGraceMinutes  = 15
)

// AttendanceService is the check-in decision engine.
type AttendanceService interface {
	Mark(ctx context.Context, userID string, req *dto.MarkAttendanceRequest) (*dto.MarkAttendanceResponse, error)
	MarkManual(ctx context.Context, courseID string, req *dto.MarkManualAttendanceRequest) (*dto.MarkAttendanceResponse, error)
	Cancel(ctx context.Context, courseID, studentID string) error
	StatusByCourse(ctx context.Context, courseID, date string) (map[string]dto.CourseAttendanceStatus, error)
}

type attendanceService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewAttendanceService creates an AttendanceService instance.
func NewAttendanceService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, clk: clk, logger: logger}
}

// ────────────────────── Mark ──────────────────────

// Mark evaluates a QR check-in. The rejections run in a fixed order and
// each is a distinct terminal outcome; expiry is checked against the
// server clock rather than the claimed scan time so a stale client
// clock cannot replay an old code.
func (s *attendanceService) Mark(ctx context.Context, userID string, req *dto.MarkAttendanceRequest) (*dto.MarkAttendanceResponse, error) {
	loc := s.clk.Location()

	// 1. The caller must own a student profile; the request's studentId
	//    is never trusted.
	student, err := s.repo.Student.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentProfileNotFound
		}
		s.logger.Error("look up student profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 2. QR expiry, against server "now".
	expiresAt, err := parseTimestamp(req.ExpiresAt, loc)
	if err != nil {
		return nil, ErrInvalidTimestamp
	}
	now := s.clk.Now()
	if now.After(expiresAt) {
		return nil, ErrQRCodeExpired
	}

	// 3. Course must exist.
	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("look up course", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	// 4. Course must have a configured schedule.
	if !course.HasSchedule() {
		return nil, ErrScheduleNotSet
	}

	today := clock.Today(s.clk)
	windowStart, err := course.StartOnDay(today, loc)
	if err != nil {
		return nil, ErrScheduleNotSet
	}
	windowEnd, err := course.EndOnDay(today, loc)
	if err != nil {
		return nil, ErrScheduleNotSet
	}

	// 5. Duplicate scan inside today's session window.
	if _, err := s.repo.Attendance.FindInWindow(ctx, student.StudentID, course.CourseID, windowStart, windowEnd); err == nil {
		return nil, ErrAlreadyMarked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check existing attendance", zap.Error(err))
		return nil, err
	}

	// 6. Enrollment gate.
	enrolled, err := s.repo.Enrollment.Exists(ctx, student.StudentID, course.CourseID)
	if err != nil {
		s.logger.Error("check enrollment", zap.Error(err))
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	// 7. Classify against today's scheduled start.
	checkIn, err := parseTimestamp(req.Timestamp, loc)
	if err != nil {
		return nil, ErrInvalidTimestamp
	}
	status := classifyStatus(checkIn, windowStart)

	// 8. Persist. The unique day index is the authoritative duplicate
	//    gate; a conflict here means another request won the race.
	token := req.SessionID
	record := &model.Attendance{
		StudentID:    student.StudentID,
		CourseID:     course.CourseID,
		CheckInTime:  checkIn,
		CheckInDate:  clock.StartOfDay(checkIn),
		SessionToken: &token,
		Status:       status,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		if errors.Is(err, pkgerrors.ErrConflict) {
			return nil, ErrAlreadyMarked
		}
		s.logger.Error("persist attendance", zap.Error(err))
		return nil, err
	}

	return &dto.MarkAttendanceResponse{
		Status:      status,
		CheckInTime: checkIn.Format("2006-01-02 15:04:05"),
	}, nil
}

// ────────────────────── MarkManual ──────────────────────

// MarkManual records attendance on a lecturer's behalf. No session
// token or expiry applies, the duplicate scope widens to the calendar
// day, and the classification formula is the same as the QR path.
func (s *attendanceService) MarkManual(ctx context.Context, courseID string, req *dto.MarkManualAttendanceRequest) (*dto.MarkAttendanceResponse, error) {
	loc := s.clk.Location()

	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("look up course", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	if !course.HasSchedule() {
		return nil, ErrScheduleNotSet
	}

	enrolled, err := s.repo.Enrollment.Exists(ctx, req.StudentID, course.CourseID)
	if err != nil {
		s.logger.Error("check enrollment", zap.Error(err))
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	today := clock.Today(s.clk)
	if _, err := s.repo.Attendance.FindOnDate(ctx, req.StudentID, course.CourseID, today); err == nil {
		return nil, ErrAlreadyMarkedToday
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check existing attendance", zap.Error(err))
		return nil, err
	}

	courseStart, err := course.StartOnDay(today, loc)
	if err != nil {
		return nil, ErrScheduleNotSet
	}

	checkIn, err := parseTimestamp(req.Timestamp, loc)
	if err != nil {
		return nil, ErrInvalidTimestamp
	}
	status := classifyStatus(checkIn, courseStart)

	record := &model.Attendance{
		StudentID:   req.StudentID,
		CourseID:    course.CourseID,
		CheckInTime: checkIn,
		CheckInDate: clock.StartOfDay(checkIn),
		Status:      status,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		if errors.Is(err, pkgerrors.ErrConflict) {
			return nil, ErrAlreadyMarkedToday
		}
		s.logger.Error("persist attendance", zap.Error(err))
		return nil, err
	}

	return &dto.MarkAttendanceResponse{
		Status:      status,
		CheckInTime: checkIn.Format("2006-01-02 15:04:05"),
	}, nil
}

// ────────────────────── Cancel ──────────────────────

// Cancel deletes the record for (student, course) on today's calendar
// date only. Records from prior days stay out of reach.
func (s *attendanceService) Cancel(ctx context.Context, courseID, studentID string) error {
	today := clock.Today(s.clk)

	rows, err := s.repo.Attendance.DeleteOnDate(ctx, studentID, courseID, today)
	if err != nil {
		s.logger.Error("delete attendance", zap.Error(err))
		return err
	}
	if rows == 0 {
		return ErrAttendanceNotFound
	}

	s.logger.Info("attendance cancelled",
		zap.String("course_id", courseID),
		zap.String("student_id", studentID),
		zap.String("date", today.Format("2006-01-02")),
	)
	return nil
}

// ────────────────────── StatusByCourse ──────────────────────

// StatusByCourse returns the day's records for a course keyed by
// student id. Status is re-derived from the stored check-in time with
// the same formula the write path used, so the two can never drift.
func (s *attendanceService) StatusByCourse(ctx context.Context, courseID, date string) (map[string]dto.CourseAttendanceStatus, error) {
	loc := s.clk.Location()

	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("look up course", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	day := clock.Today(s.clk)
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return nil, ErrInvalidDate
		}
		day = parsed
	}

	records, err := s.repo.Attendance.ListByCourseOnDate(ctx, course.CourseID, day)
	if err != nil {
		s.logger.Error("list attendance", zap.Error(err))
		return nil, err
	}

	result := make(map[string]dto.CourseAttendanceStatus, len(records))
	for _, record := range records {
		courseStart, err := course.StartOnDay(clock.StartOfDay(record.CheckInTime.In(loc)), loc)
		if err != nil {
			return nil, ErrScheduleNotSet
		}

		entry := dto.CourseAttendanceStatus{
			Status:      classifyStatus(record.CheckInTime, courseStart),
			CheckInTime: record.CheckInTime.In(loc).Format("2006-01-02 15:04:05"),
		}
		if record.Student != nil {
			entry.StudentName = record.Student.Name
			entry.StudentCode = record.Student.StudentCode
		}
		result[record.StudentID] = entry
	}

	return result, nil
}

// ── helpers ──

// classifyStatus applies the present/late window. Minutes are signed
// (check-in minus scheduled start) and truncated toward zero, so the
// −10 and +15 boundaries are inclusive to the second.
func classifyStatus(checkIn, courseStart time.Time) string {
	minutes := int(checkIn.Sub(courseStart).Minutes())
	if minutes >= -earlyGraceMinutes && minutes <= lateGraceMinutes {
		return model.StatusPresent
	}
	return model.StatusLate
}

// timestampLayouts are the accepted wire formats. Offset-less values
// are interpreted in the civil timezone.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
