package model

// Student — student profile, maps to students.
// StudentCode is the externally visible matric number shown on reports.
type Student struct {
	StudentID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	StudentCode string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"student_code"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	UserID      string `gorm:"type:uuid;not null"                             json:"user_id"`
	BaseModel

	User    *User    `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Courses []Course `gorm:"many2many:enrollments;foreignKey:StudentID;joinForeignKey:StudentID;references:CourseID;joinReferences:CourseID" json:"courses,omitempty"`
}

func (Student) TableName() string { return "students" }
