package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"attendtrack/internal/model"
	pkgerrors "attendtrack/pkg/errors"
)

// CourseRepository is the course data-access interface.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	GetByCode(ctx context.Context, code string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListByLecturer(ctx context.Context, lecturerID string) ([]model.Course, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Course, error)
	ListByStudentOnWeekday(ctx context.Context, studentID string, weekday int) ([]model.Course, error)
	ListStudents(ctx context.Context, courseID string) ([]model.Student, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo creates the GORM-backed CourseRepository.
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	err := r.db.WithContext(ctx).Create(course).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrConflict
	}
	return err
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Lecturer").
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Lecturer").
		Where("course_code = ?", code).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("Lecturer").
		Order("created_at ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByLecturer(ctx context.Context, lecturerID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("lecturer_id = ?", lecturerID).
		Order("created_at ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("Lecturer").
		Joins("JOIN enrollments ON enrollments.course_id = courses.course_id").
		Where("enrollments.student_id = ?", studentID).
		Order("courses.start_time ASC, courses.weekday ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByStudentOnWeekday(ctx context.Context, studentID string, weekday int) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.course_id").
		Where("enrollments.student_id = ? AND courses.weekday = ?", studentID, weekday).
		Order("courses.start_time ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListStudents(ctx context.Context, courseID string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.student_id = students.student_id").
		Where("enrollments.course_id = ?", courseID).
		Order("students.student_code ASC").
		Find(&students).Error
	return students, err
}
