package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"attendtrack/internal/model"
	pkgerrors "attendtrack/pkg/errors"
)

// EnrollmentRepository is the roster data-access interface.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	Exists(ctx context.Context, studentID, courseID string) (bool, error)
	Delete(ctx context.Context, studentID, courseID string) (int64, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo creates the GORM-backed EnrollmentRepository.
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	err := r.db.WithContext(ctx).Create(enrollment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrConflict
	}
	return err
}

func (r *enrollmentRepo) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *enrollmentRepo) Delete(ctx context.Context, studentID, courseID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Delete(&model.Enrollment{})
	return result.RowsAffected, result.Error
}
