package model

import "time"

// Attendance statuses. Absent is never stored by the check-in flow; it
// is synthesized by reports when no record exists for a scheduled day.
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
)

// Attendance — maps to attendances. SessionToken identifies the QR
// issuance the student scanned; it is nil for manually marked records.
// CheckInDate duplicates the civil date of CheckInTime so the
// uniq_attendance_day index can enforce one record per day.
type Attendance struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	StudentID    string    `gorm:"type:uuid;not null;uniqueIndex:uniq_attendance_day" json:"student_id"`
	CourseID     string    `gorm:"type:uuid;not null;uniqueIndex:uniq_attendance_day" json:"course_id"`
	CheckInTime  time.Time `gorm:"not null"                                       json:"check_in_time"`
	CheckInDate  time.Time `gorm:"type:date;not null;uniqueIndex:uniq_attendance_day" json:"check_in_date"`
	SessionToken *string   `gorm:"type:varchar(64)"                               json:"session_token,omitempty"`
	Status       string    `gorm:"type:varchar(10);not null"                      json:"status"`
	BaseModel

	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
}

func (Attendance) TableName() string { return "attendances" }
