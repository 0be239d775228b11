package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendtrack/internal/dto"
	"attendtrack/internal/model"
	"attendtrack/internal/repository"
	"attendtrack/pkg/clock"
)

// StatsService aggregates attendance records into daily views and
// month-window rates.
type StatsService interface {
	Daily(ctx context.Context, userID, date string) ([]dto.DailyAttendanceRow, error)
	StudentStats(ctx context.Context, userID string, startMonth, endMonth int) (*dto.StudentAttendanceStats, error)
	CourseStats(ctx context.Context, courseID string, startMonth, endMonth int) (*dto.CourseAttendanceStats, error)
}

type statsService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewStatsService creates a StatsService instance.
func NewStatsService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, clk: clk, logger: logger}
}

// ────────────────────── Daily ──────────────────────

// Daily returns one row per course the student has scheduled on the
// date's weekday. "absent" exists only here: a scheduled course with no
// record for the day is reported absent, never stored as such. Courses
// scheduled on other weekdays are excluded entirely.
func (s *statsService) Daily(ctx context.Context, userID, date string) ([]dto.DailyAttendanceRow, error) {
	loc := s.clk.Location()

	student, err := s.repo.Student.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentProfileNotFound
		}
		s.logger.Error("look up student profile", zap.String("user_id", userID), zap.Error(err))
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

	courses, err := s.repo.Course.ListByStudentOnWeekday(ctx, student.StudentID, clock.ISOWeekday(day))
	if err != nil {
		s.logger.Error("list scheduled courses", zap.Error(err))
		return nil, err
	}

	rows := make([]dto.DailyAttendanceRow, 0, len(courses))
	for _, course := range courses {
		row := dto.DailyAttendanceRow{
			CourseID:   course.CourseID,
			CourseCode: course.CourseCode,
			CourseName: course.CourseName,
			Weekday:    course.Weekday,
			Status:     model.StatusAbsent,
		}

		record, err := s.repo.Attendance.FindOnDate(ctx, student.StudentID, course.CourseID, day)
		if err == nil {
			checkIn := record.CheckInTime.In(loc).Format("2006-01-02 15:04:05")
			row.Status = record.Status
			row.CheckInTime = &checkIn
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("look up attendance", zap.Error(err))
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ────────────────────── StudentStats ──────────────────────

// StudentStats summarizes a student's attendance per enrolled course
// over a month window. Class days are counted as distinct session
// tokens recorded for the course by anyone in range; a course with no
// sessions contributes a zero rate, never a division error.
func (s *statsService) StudentStats(ctx context.Context, userID string, startMonth, endMonth int) (*dto.StudentAttendanceStats, error) {
	student, err := s.repo.Student.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentProfileNotFound
		}
		s.logger.Error("look up student profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	from, to := s.monthWindow(startMonth, endMonth)

	courses, err := s.repo.Course.ListByStudent(ctx, student.StudentID)
	if err != nil {
		s.logger.Error("list enrolled courses", zap.Error(err))
		return nil, err
	}

	stats := &dto.StudentAttendanceStats{
		Period:      dto.Period{Start: from.Format("2006-01-02"), End: to.Format("2006-01-02")},
		CourseStats: make([]dto.CourseStatRow, 0, len(courses)),
	}

	for _, course := range courses {
		records, err := s.repo.Attendance.ListForStudentBetween(ctx, student.StudentID, course.CourseID, from, to)
		if err != nil {
			s.logger.Error("list attendance", zap.Error(err))
			return nil, err
		}

		classDays, err := s.repo.Attendance.CountDistinctSessions(ctx, course.CourseID, from, to)
		if err != nil {
			s.logger.Error("count class sessions", zap.Error(err))
			return nil, err
		}

		present, late := 0, 0
		for _, record := range records {
			switch record.Status {
			case model.StatusPresent:
				present++
			case model.StatusLate:
				late++
			}
		}

		row := dto.CourseStatRow{
			CourseCode:     course.CourseCode,
			CourseName:     course.CourseName,
			TotalClasses:   int(classDays),
			Present:        present,
			Late:           late,
			Absent:         int(classDays) - len(records),
			AttendanceRate: rate(present+late, int(classDays)),
		}

		stats.Present += row.Present
		stats.Late += row.Late
		stats.Absent += row.Absent
		stats.TotalClasses += row.TotalClasses
		stats.CourseStats = append(stats.CourseStats, row)
	}

	stats.OverallAttendanceRate = rate(stats.Present+stats.Late, stats.TotalClasses)
	return stats, nil
}

// ────────────────────── CourseStats ──────────────────────

// CourseStats is the symmetric per-course view: one row per enrolled
// student, with the class-day count computed once for the course and
// the overall rate taken over classDays × enrolledStudents.
func (s *statsService) CourseStats(ctx context.Context, courseID string, startMonth, endMonth int) (*dto.CourseAttendanceStats, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("look up course", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	from, to := s.monthWindow(startMonth, endMonth)

	students, err := s.repo.Course.ListStudents(ctx, course.CourseID)
	if err != nil {
		s.logger.Error("list roster", zap.Error(err))
		return nil, err
	}

	classDays, err := s.repo.Attendance.CountDistinctSessions(ctx, course.CourseID, from, to)
	if err != nil {
		s.logger.Error("count class sessions", zap.Error(err))
		return nil, err
	}

	stats := &dto.CourseAttendanceStats{
		TotalClasses: int(classDays),
		Period:       dto.Period{Start: from.Format("2006-01-02"), End: to.Format("2006-01-02")},
		StudentStats: make([]dto.StudentStatRow, 0, len(students)),
	}

	totalPresent, totalLate := 0, 0
	for _, student := range students {
		records, err := s.repo.Attendance.ListForStudentBetween(ctx, student.StudentID, course.CourseID, from, to)
		if err != nil {
			s.logger.Error("list attendance", zap.Error(err))
			return nil, err
		}

		present, late := 0, 0
		for _, record := range records {
			switch record.Status {
			case model.StatusPresent:
				present++
			case model.StatusLate:
				late++
			}
		}

		stats.StudentStats = append(stats.StudentStats, dto.StudentStatRow{
			StudentCode:    student.StudentCode,
			Name:           student.Name,
			TotalClasses:   int(classDays),
			Present:        present,
			Late:           late,
			Absent:         int(classDays) - present - late,
			AttendanceRate: rate(present+late, int(classDays)),
		})

		totalPresent += present
		totalLate += late
	}

	totalPossible := int(classDays) * len(students)
	stats.OverallAttendanceRate = rate(totalPresent+totalLate, totalPossible)
	return stats, nil
}

// ── helpers ──

// monthWindow resolves 1-based month numbers of the current civil year
// into [start of startMonth, end of endMonth]. Zero values default to
// the current month; an inverted range simply yields an empty window.
func (s *statsService) monthWindow(startMonth, endMonth int) (time.Time, time.Time) {
	now := s.clk.Now()
	loc := s.clk.Location()

	if startMonth < 1 || startMonth > 12 {
		startMonth = int(now.Month())
	}
	if endMonth < 1 || endMonth > 12 {
		endMonth = startMonth
	}

	from := time.Date(now.Year(), time.Month(startMonth), 1, 0, 0, 0, 0, loc)
	to := time.Date(now.Year(), time.Month(endMonth)+1, 1, 0, 0, 0, 0, loc).Add(-time.Second)
	return from, to
}

// rate is the percentage attended/total rounded to 2 decimals, zero
// when total is zero.
func rate(attended, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(total)*100*100) / 100
}
