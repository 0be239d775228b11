package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"attendtrack/internal/model"
	pkgerrors "attendtrack/pkg/errors"
)

const dateLayout = "2006-01-02"

// AttendanceRepository is the attendance-record data-access interface.
// The date parameters are civil dates; only their calendar day is used.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *model.Attendance) error
	FindInWindow(ctx context.Context, studentID, courseID string, from, to time.Time) (*model.Attendance, error)
	FindOnDate(ctx context.Context, studentID, courseID string, date time.Time) (*model.Attendance, error)
	DeleteOnDate(ctx context.Context, studentID, courseID string, date time.Time) (int64, error)
	ListByCourseOnDate(ctx context.Context, courseID string, date time.Time) ([]model.Attendance, error)
	ListForStudentBetween(ctx context.Context, studentID, courseID string, from, to time.Time) ([]model.Attendance, error)
	CountDistinctSessions(ctx context.Context, courseID string, from, to time.Time) (int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates the GORM-backed AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

// Create inserts a record. The uniq_attendance_day index makes the
// insert the authoritative duplicate gate; a violation surfaces as
// ErrConflict for the service to map onto "already marked".
func (r *attendanceRepo) Create(ctx context.Context, attendance *model.Attendance) error {
	err := r.db.WithContext(ctx).Create(attendance).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrConflict
	}
	return err
}

func (r *attendanceRepo) FindInWindow(ctx context.Context, studentID, courseID string, from, to time.Time) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND check_in_time BETWEEN ? AND ?",
			studentID, courseID, from, to).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepo) FindOnDate(ctx context.Context, studentID, courseID string, date time.Time) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND check_in_date = ?",
			studentID, courseID, date.Format(dateLayout)).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepo) DeleteOnDate(ctx context.Context, studentID, courseID string, date time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND check_in_date = ?",
			studentID, courseID, date.Format(dateLayout)).
		Delete(&model.Attendance{})
	return result.RowsAffected, result.Error
}

func (r *attendanceRepo) ListByCourseOnDate(ctx context.Context, courseID string, date time.Time) ([]model.Attendance, error) {
	var attendances []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("course_id = ? AND check_in_date = ?", courseID, date.Format(dateLayout)).
		Order("check_in_time ASC").
		Find(&attendances).Error
	return attendances, err
}

func (r *attendanceRepo) ListForStudentBetween(ctx context.Context, studentID, courseID string, from, to time.Time) ([]model.Attendance, error) {
	var attendances []model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND check_in_time BETWEEN ? AND ?",
			studentID, courseID, from, to).
		Order("check_in_time ASC").
		Find(&attendances).Error
	return attendances, err
}

// CountDistinctSessions counts the QR sessions recorded for a course in
// range. Manual records carry no token and never create a session on
// their own.
func (r *attendanceRepo) CountDistinctSessions(ctx context.Context, courseID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("course_id = ? AND session_token IS NOT NULL AND check_in_time BETWEEN ? AND ?",
			courseID, from, to).
		Distinct("session_token").
		Count(&count).Error
	return count, err
}
