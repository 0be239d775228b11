package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	User       UserRepository
	Student    StudentRepository
	Lecturer   LecturerRepository
	Course     CourseRepository
	Enrollment EnrollmentRepository
	Attendance AttendanceRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Student:    NewStudentRepo(db),
		Lecturer:   NewLecturerRepo(db),
		Course:     NewCourseRepo(db),
		Enrollment: NewEnrollmentRepo(db),
		Attendance: NewAttendanceRepo(db),
	}
}
