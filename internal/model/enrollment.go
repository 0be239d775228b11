package model

// Enrollment — maps to enrollments. A (student, course) pair enrolls at
// most once, enforced by the uniq_enrollment index.
type Enrollment struct {
	EnrollmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	StudentID    string `gorm:"type:uuid;not null;uniqueIndex:uniq_enrollment" json:"student_id"`
	CourseID     string `gorm:"type:uuid;not null;uniqueIndex:uniq_enrollment" json:"course_id"`
	BaseModel

	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
}

func (Enrollment) TableName() string { return "enrollments" }
