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
	pkgerrors "attendtrack/pkg/errors"
)

// ── course business errors ──

var (
	ErrCourseNotFound          = errors.New("course not found")
	ErrCourseCodeTaken         = errors.New("course code already in use")
	ErrInvalidSchedule         = errors.New("course start time must be before end time")
	ErrLecturerProfileNotFound = errors.New("lecturer record not found for the current user")
	ErrAlreadyEnrolled         = errors.New("student is already enrolled in this course")
)

// CourseService manages courses, rosters and enrollment.
type CourseService interface {
	Create(ctx context.Context, userID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	ListByLecturer(ctx context.Context, userID string) ([]dto.CourseResponse, error)
	Roster(ctx context.Context, courseID string) ([]dto.RosterEntry, error)
	Enroll(ctx context.Context, userID, courseCode string) (*dto.CourseResponse, error)
	Unenroll(ctx context.Context, userID, courseCode string) error
	Timetable(ctx context.Context, userID string) ([]dto.TimetableEntry, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService creates a CourseService instance.
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, userID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	lecturer, err := s.repo.Lecturer.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLecturerProfileNotFound
		}
		s.logger.Error("look up lecturer profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// Times-of-day must parse and order; weekday bounds are handled by
	// request binding.
	start, err := time.Parse(model.TimeOfDayLayout, req.StartTime)
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	end, err := time.Parse(model.TimeOfDayLayout, req.EndTime)
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	if !start.Before(end) {
		return nil, ErrInvalidSchedule
	}

	course := &model.Course{
		CourseCode: req.CourseCode,
		CourseName: req.CourseName,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		LecturerID: lecturer.LecturerID,
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		if errors.Is(err, pkgerrors.ErrConflict) {
			return nil, ErrCourseCodeTaken
		}
		s.logger.Error("create course", zap.Error(err))
		return nil, err
	}

	course.Lecturer = lecturer
	return toCourseResponse(course), nil
}

// ────────────────────── List / ListByLecturer ──────────────────────

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("list courses", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, nil
}

func (s *courseService) ListByLecturer(ctx context.Context, userID string) ([]dto.CourseResponse, error) {
	lecturer, err := s.repo.Lecturer.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLecturerProfileNotFound
		}
		s.logger.Error("look up lecturer profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	courses, err := s.repo.Course.ListByLecturer(ctx, lecturer.LecturerID)
	if err != nil {
		s.logger.Error("list lecturer courses", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── Roster ──────────────────────

func (s *courseService) Roster(ctx context.Context, courseID string) ([]dto.RosterEntry, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("look up course", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	students, err := s.repo.Course.ListStudents(ctx, courseID)
	if err != nil {
		s.logger.Error("list roster", zap.Error(err))
		return nil, err
	}

	roster := make([]dto.RosterEntry, 0, len(students))
	for _, student := range students {
		roster = append(roster, dto.RosterEntry{
			StudentCode: student.StudentCode,
			Name:        student.Name,
		})
	}
	return roster, nil
}

// ────────────────────── Enroll / Unenroll ──────────────────────

func (s *courseService) Enroll(ctx context.Context, userID, courseCode string) (*dto.CourseResponse, error) {
	student, err := s.repo.Student.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentProfileNotFound
		}
		s.logger.Error("look up student profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	course, err := s.repo.Course.GetByCode(ctx, courseCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("look up course", zap.String("course_code", courseCode), zap.Error(err))
		return nil, err
	}

	enrolled, err := s.repo.Enrollment.Exists(ctx, student.StudentID, course.CourseID)
	if err != nil {
		s.logger.Error("check enrollment", zap.Error(err))
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		StudentID: student.StudentID,
		CourseID:  course.CourseID,
	}
	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		if errors.Is(err, pkgerrors.ErrConflict) {
			return nil, ErrAlreadyEnrolled
		}
		s.logger.Error("create enrollment", zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

func (s *courseService) Unenroll(ctx context.Context, userID, courseCode string) error {
	student, err := s.repo.Student.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentProfileNotFound
		}
		s.logger.Error("look up student profile", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	course, err := s.repo.Course.GetByCode(ctx, courseCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("look up course", zap.String("course_code", courseCode), zap.Error(err))
		return err
	}

	rows, err := s.repo.Enrollment.Delete(ctx, student.StudentID, course.CourseID)
	if err != nil {
		s.logger.Error("delete enrollment", zap.Error(err))
		return err
	}
	if rows == 0 {
		return ErrNotEnrolled
	}
	return nil
}

// ────────────────────── Timetable ──────────────────────

// Timetable returns the caller's weekly courses: enrolled courses for
// students, taught courses for lecturers.
func (s *courseService) Timetable(ctx context.Context, userID string) ([]dto.TimetableEntry, error) {
	if student, err := s.repo.Student.GetByUserID(ctx, userID); err == nil {
		courses, err := s.repo.Course.ListByStudent(ctx, student.StudentID)
		if err != nil {
			s.logger.Error("list enrolled courses", zap.Error(err))
			return nil, err
		}
		return toTimetable(courses), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("look up student profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	lecturer, err := s.repo.Lecturer.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No profile of either kind: an empty timetable, not an error.
			return []dto.TimetableEntry{}, nil
		}
		s.logger.Error("look up lecturer profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	courses, err := s.repo.Course.ListByLecturer(ctx, lecturer.LecturerID)
	if err != nil {
		s.logger.Error("list lecturer courses", zap.Error(err))
		return nil, err
	}
	return toTimetable(courses), nil
}

// ── helpers ──

func toCourseResponse(course *model.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:         course.CourseID,
		CourseCode: course.CourseCode,
		CourseName: course.CourseName,
		StartTime:  course.StartTime,
		EndTime:    course.EndTime,
		Weekday:    course.Weekday,
	}
	if course.Lecturer != nil {
		resp.LecturerName = course.Lecturer.Name
	}
	return resp
}

func toTimetable(courses []model.Course) []dto.TimetableEntry {
	entries := make([]dto.TimetableEntry, 0, len(courses))
	for _, course := range courses {
		entry := dto.TimetableEntry{
			CourseCode: course.CourseCode,
			CourseName: course.CourseName,
			StartTime:  course.StartTime,
			EndTime:    course.EndTime,
			Weekday:    course.Weekday,
		}
		if course.Lecturer != nil {
			entry.LecturerName = course.Lecturer.Name
		}
		entries = append(entries, entry)
	}
	return entries
}
