package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"attendtrack/internal/repository"
	"attendtrack/pkg/clock"
)

// ExportService renders attendance reports and timetables as files.
type ExportService interface {
	AttendanceReport(ctx context.Context, courseID string, startMonth, endMonth int) (*bytes.Buffer, string, error)
	TimetableICS(ctx context.Context, userID string) ([]byte, error)
}

type exportService struct {
	repo    *repository.Repository
	stats   StatsService
	courses CourseService
	clk     clock.Clock
	logger  *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, stats StatsService, courses CourseService, clk clock.Clock, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, stats: stats, courses: courses, clk: clk, logger: logger}
}

// ────────────────────── AttendanceReport ──────────────────────

var reportHeader = []string{"Student ID", "Name", "Total Classes", "Present", "Late", "Absent", "Attendance Rate (%)"}

// AttendanceReport renders a course's month-window statistics as an
// xlsx workbook, one row per enrolled student. Returns the workbook
// buffer and a suggested filename.
func (s *exportService) AttendanceReport(ctx context.Context, courseID string, startMonth, endMonth int) (*bytes.Buffer, string, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		return nil, "", ErrCourseNotFound
	}

	stats, err := s.stats.CourseStats(ctx, courseID, startMonth, endMonth)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for i, row := range stats.StudentStats {
		values := []interface{}{
			row.StudentCode, row.Name,
			row.TotalClasses, row.Present, row.Late, row.Absent,
			row.AttendanceRate,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	// Summary block under the table.
	summaryRow := len(stats.StudentStats) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(sheet, cell, "Period")
	cell, _ = excelize.CoordinatesToCellName(2, summaryRow)
	f.SetCellValue(sheet, cell, fmt.Sprintf("%s to %s", stats.Period.Start, stats.Period.End))
	cell, _ = excelize.CoordinatesToCellName(1, summaryRow+1)
	f.SetCellValue(sheet, cell, "Overall Attendance Rate (%)")
	cell, _ = excelize.CoordinatesToCellName(2, summaryRow+1)
	f.SetCellValue(sheet, cell, stats.OverallAttendanceRate)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write xlsx", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", course.CourseCode, stats.Period.Start)
	return buf, filename, nil
}

// ────────────────────── TimetableICS ──────────────────────

// icsWeekdays maps ISO weekday numbers (Monday=1) to RRULE BYDAY codes.
var icsWeekdays = [7]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// TimetableICS renders the caller's weekly timetable as an iCalendar
// feed with one weekly recurring event per course.
func (s *exportService) TimetableICS(ctx context.Context, userID string) ([]byte, error) {
	entries, err := s.courses.Timetable(ctx, userID)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//attendtrack//timetable//EN")

	loc := s.clk.Location()
	today := clock.Today(s.clk)

	for _, entry := range entries {
		if entry.Weekday < 1 || entry.Weekday > 7 {
			continue
		}
		start, err := nextOccurrence(today, entry.Weekday, entry.StartTime, loc)
		if err != nil {
			s.logger.Warn("skip malformed timetable entry",
				zap.String("course_code", entry.CourseCode), zap.Error(err))
			continue
		}
		end, err := nextOccurrence(today, entry.Weekday, entry.EndTime, loc)
		if err != nil {
			s.logger.Warn("skip malformed timetable entry",
				zap.String("course_code", entry.CourseCode), zap.Error(err))
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s@attendtrack", entry.CourseCode))
		event.SetDtStampTime(s.clk.Now())
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s %s", entry.CourseCode, entry.CourseName))
		if entry.LecturerName != "" {
			event.SetDescription(fmt.Sprintf("Lecturer: %s", entry.LecturerName))
		}
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", icsWeekdays[entry.Weekday-1]))
	}

	return []byte(cal.Serialize()), nil
}

// nextOccurrence anchors an "HH:MM" time of day to the next calendar
// day (today included) falling on the given ISO weekday.
func nextOccurrence(today time.Time, weekday int, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", hhmm, loc)
	if err != nil {
		return time.Time{}, err
	}
	daysAhead := (weekday - clock.ISOWeekday(today) + 7) % 7
	day := today.AddDate(0, 0, daysAhead)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
