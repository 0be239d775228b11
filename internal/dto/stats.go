package dto

// ── statistics responses ──

// DailyAttendanceRow is one scheduled course on a student's day. A
// course with no record for the day appears with status "absent" and a
// nil check-in time; courses scheduled on other weekdays do not appear.
type DailyAttendanceRow struct {
	CourseID    string  `json:"course_id"`
	CourseCode  string  `json:"course_code"`
	CourseName  string  `json:"course_name"`
	Weekday     int     `json:"weekday"`
	Status      string  `json:"status"`
	CheckInTime *string `json:"check_in_time"`
}

// Period echoes the resolved month window of a stats query.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CourseStatRow is one course in a student's range statistics.
type CourseStatRow struct {
	CourseCode     string  `json:"course_code"`
	CourseName     string  `json:"course_name"`
	TotalClasses   int     `json:"total_classes"`
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	Absent         int     `json:"absent"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// StudentAttendanceStats is a student's statistics across all enrolled
// courses for a month window.
type StudentAttendanceStats struct {
	Present               int             `json:"present"`
	Late                  int             `json:"late"`
	Absent                int             `json:"absent"`
	TotalClasses          int             `json:"total_classes"`
	OverallAttendanceRate float64         `json:"overall_attendance_rate"`
	Period                Period          `json:"period"`
	CourseStats           []CourseStatRow `json:"courseStats"`
}

// StudentStatRow is one student in a course's range statistics.
type StudentStatRow struct {
	StudentCode    string  `json:"student_id"`
	Name           string  `json:"name"`
	TotalClasses   int     `json:"total_classes"`
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	Absent         int     `json:"absent"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// CourseAttendanceStats is a course's statistics across its roster for
// a month window.
type CourseAttendanceStats struct {
	TotalClasses          int              `json:"total_classes"`
	OverallAttendanceRate float64          `json:"overall_attendance_rate"`
	Period                Period           `json:"period"`
	StudentStats          []StudentStatRow `json:"studentStats"`
}
