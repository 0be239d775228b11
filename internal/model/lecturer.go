package model

// Lecturer — lecturer profile, maps to lecturers.
type Lecturer struct {
	LecturerID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lecturer_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	UserID     string `gorm:"type:uuid;not null"                             json:"user_id"`
	BaseModel

	User    *User    `gorm:"foreignKey:UserID;references:UserID"         json:"user,omitempty"`
	Courses []Course `gorm:"foreignKey:LecturerID;references:LecturerID" json:"courses,omitempty"`
}

func (Lecturer) TableName() string { return "lecturers" }
