package dto

// ── course requests ──

// CreateCourseRequest creates a course owned by the calling lecturer.
// Times are "HH:MM" in the civil timezone; weekday is ISO (Monday=1).
type CreateCourseRequest struct {
	CourseCode string `json:"course_code" binding:"required,max=20"`
	CourseName string `json:"course_name" binding:"required,max=255"`
	StartTime  string `json:"start_time"  binding:"required"`
	EndTime    string `json:"end_time"    binding:"required"`
	Weekday    int    `json:"weekday"     binding:"required,min=1,max=7"`
}

// EnrollRequest enrolls the calling student by course code.
type EnrollRequest struct {
	CourseCode string `json:"course_code" binding:"required"`
}

// ── course responses ──

// CourseResponse is the public view of a course.
type CourseResponse struct {
	ID           string `json:"id"`
	CourseCode   string `json:"course_code"`
	CourseName   string `json:"course_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Weekday      int    `json:"weekday"`
	LecturerName string `json:"lecturer_name,omitempty"`
}

// RosterEntry is one student on a course roster.
type RosterEntry struct {
	StudentCode string `json:"student_id"`
	Name        string `json:"name"`
}

// TimetableEntry is one course in a personal weekly timetable.
type TimetableEntry struct {
	CourseCode   string `json:"course_code"`
	CourseName   string `json:"course_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Weekday      int    `json:"weekday"`
	LecturerName string `json:"lecturer_name,omitempty"`
}
