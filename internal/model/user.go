package model

// Account roles. A user owns at most one student or lecturer profile.
const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
	RoleAdmin    = "admin"
)

// User — login account, maps to users.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	BaseModel

	Student  *Student  `gorm:"foreignKey:UserID;references:UserID" json:"student,omitempty"`
	Lecturer *Lecturer `gorm:"foreignKey:UserID;references:UserID" json:"lecturer,omitempty"`
}

func (User) TableName() string { return "users" }
