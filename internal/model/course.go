package model

import (
	"fmt"
	"time"
)

// TimeOfDayLayout is the wire and storage format for course times.
const TimeOfDayLayout = "15:04"

// Course — maps to courses. Weekday uses ISO numbering (Monday=1 ..
// Sunday=7); StartTime/EndTime are "HH:MM" times of day in the civil
// timezone, combined with a concrete date at evaluation time.
type Course struct {
	CourseID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	CourseCode string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"course_code"`
	CourseName string `gorm:"type:varchar(255);not null"                     json:"course_name"`
	Weekday    int    `gorm:"type:smallint;not null"                         json:"weekday"`
	StartTime  string `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime    string `gorm:"type:varchar(5);not null"                       json:"end_time"`
	LecturerID string `gorm:"type:uuid;not null"                             json:"lecturer_id"`
	BaseModel

	Lecturer *Lecturer `gorm:"foreignKey:LecturerID;references:LecturerID" json:"lecturer,omitempty"`
	Students []Student `gorm:"many2many:enrollments;foreignKey:CourseID;joinForeignKey:CourseID;references:StudentID;joinReferences:StudentID" json:"students,omitempty"`
}

func (Course) TableName() string { return "courses" }

// HasSchedule reports whether both times of day are configured.
func (c *Course) HasSchedule() bool {
	return c.StartTime != "" && c.EndTime != ""
}

// StartOnDay anchors the course's start time of day to day's date.
func (c *Course) StartOnDay(day time.Time, loc *time.Location) (time.Time, error) {
	return CombineDayTime(day, c.StartTime, loc)
}

// EndOnDay anchors the course's end time of day to day's date.
func (c *Course) EndOnDay(day time.Time, loc *time.Location) (time.Time, error) {
	return CombineDayTime(day, c.EndTime, loc)
}

// CombineDayTime builds the instant at hhmm on day's civil date in loc.
func CombineDayTime(day time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(TimeOfDayLayout, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", hhmm, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
