package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"attendtrack/internal/model"
	"attendtrack/internal/repository"
	pkgerrors "attendtrack/pkg/errors"
)

// In-memory repository doubles. Each mirrors its interface's lookup
// semantics, including gorm.ErrRecordNotFound on misses and ErrConflict
// on unique violations, so services exercise the same error paths the
// GORM implementations produce.

// ── users ──

type mockUserRepo struct {
	users map[string]*model.User // by user id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return pkgerrors.ErrConflict
		}
	}
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── students ──

type mockStudentRepo struct {
	students map[string]*model.Student // by student id
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(ctx context.Context, student *model.Student) error {
	if student.StudentID == "" {
		student.StudentID = fmt.Sprintf("student-%d", len(m.students)+1)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	if student, ok := m.students[id]; ok {
		return student, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByUserID(ctx context.Context, userID string) (*model.Student, error) {
	for _, student := range m.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByCode(ctx context.Context, code string) (*model.Student, error) {
	for _, student := range m.students {
		if student.StudentCode == code {
			return student, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── lecturers ──

type mockLecturerRepo struct {
	lecturers map[string]*model.Lecturer // by lecturer id
}

func newMockLecturerRepo() *mockLecturerRepo {
	return &mockLecturerRepo{lecturers: make(map[string]*model.Lecturer)}
}

func (m *mockLecturerRepo) Create(ctx context.Context, lecturer *model.Lecturer) error {
	if lecturer.LecturerID == "" {
		lecturer.LecturerID = fmt.Sprintf("lecturer-%d", len(m.lecturers)+1)
	}
	m.lecturers[lecturer.LecturerID] = lecturer
	return nil
}

func (m *mockLecturerRepo) GetByID(ctx context.Context, id string) (*model.Lecturer, error) {
	if lecturer, ok := m.lecturers[id]; ok {
		return lecturer, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLecturerRepo) GetByUserID(ctx context.Context, userID string) (*model.Lecturer, error) {
	for _, lecturer := range m.lecturers {
		if lecturer.UserID == userID {
			return lecturer, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── courses ──

type mockCourseRepo struct {
	courses     map[string]*model.Course // by course id
	enrollments *mockEnrollmentRepo
	students    *mockStudentRepo
}

func newMockCourseRepo(enrollments *mockEnrollmentRepo, students *mockStudentRepo) *mockCourseRepo {
	return &mockCourseRepo{
		courses:     make(map[string]*model.Course),
		enrollments: enrollments,
		students:    students,
	}
}

func (m *mockCourseRepo) Create(ctx context.Context, course *model.Course) error {
	for _, existing := range m.courses {
		if existing.CourseCode == course.CourseCode {
			return pkgerrors.ErrConflict
		}
	}
	if course.CourseID == "" {
		course.CourseID = fmt.Sprintf("course-%d", len(m.courses)+1)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	if course, ok := m.courses[id]; ok {
		return course, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	for _, course := range m.courses {
		if course.CourseCode == code {
			return course, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(ctx context.Context) ([]model.Course, error) {
	out := make([]model.Course, 0, len(m.courses))
	for _, course := range m.courses {
		out = append(out, *course)
	}
	return out, nil
}

func (m *mockCourseRepo) ListByLecturer(ctx context.Context, lecturerID string) ([]model.Course, error) {
	var out []model.Course
	for _, course := range m.courses {
		if course.LecturerID == lecturerID {
			out = append(out, *course)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Course, error) {
	var out []model.Course
	for _, course := range m.courses {
		if m.enrollments.has(studentID, course.CourseID) {
			out = append(out, *course)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) ListByStudentOnWeekday(ctx context.Context, studentID string, weekday int) ([]model.Course, error) {
	var out []model.Course
	for _, course := range m.courses {
		if course.Weekday == weekday && m.enrollments.has(studentID, course.CourseID) {
			out = append(out, *course)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) ListStudents(ctx context.Context, courseID string) ([]model.Student, error) {
	var out []model.Student
	for _, key := range m.enrollments.keys() {
		if key.courseID == courseID {
			if student, ok := m.students.students[key.studentID]; ok {
				out = append(out, *student)
			}
		}
	}
	return out, nil
}

// ── enrollments ──

type enrollKey struct {
	studentID string
	courseID  string
}

type mockEnrollmentRepo struct {
	set map[enrollKey]bool
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{set: make(map[enrollKey]bool)}
}

func (m *mockEnrollmentRepo) has(studentID, courseID string) bool {
	return m.set[enrollKey{studentID, courseID}]
}

func (m *mockEnrollmentRepo) keys() []enrollKey {
	out := make([]enrollKey, 0, len(m.set))
	for key := range m.set {
		out = append(out, key)
	}
	return out
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	key := enrollKey{enrollment.StudentID, enrollment.CourseID}
	if m.set[key] {
		return pkgerrors.ErrConflict
	}
	m.set[key] = true
	return nil
}

func (m *mockEnrollmentRepo) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	return m.has(studentID, courseID), nil
}

func (m *mockEnrollmentRepo) Delete(ctx context.Context, studentID, courseID string) (int64, error) {
	key := enrollKey{studentID, courseID}
	if !m.set[key] {
		return 0, nil
	}
	delete(m.set, key)
	return 1, nil
}

// ── attendances ──

type mockAttendanceRepo struct {
	records  []*model.Attendance
	students *mockStudentRepo
	nextID   int
}

func newMockAttendanceRepo(students *mockStudentRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{students: students}
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// Create enforces the one-record-per-day unique index the real schema
// carries, returning ErrConflict exactly like the translated GORM error.
func (m *mockAttendanceRepo) Create(ctx context.Context, attendance *model.Attendance) error {
	for _, existing := range m.records {
		if existing.StudentID == attendance.StudentID &&
			existing.CourseID == attendance.CourseID &&
			sameDate(existing.CheckInDate, attendance.CheckInDate) {
			return pkgerrors.ErrConflict
		}
	}
	m.nextID++
	attendance.AttendanceID = fmt.Sprintf("attendance-%d", m.nextID)
	m.records = append(m.records, attendance)
	return nil
}

func (m *mockAttendanceRepo) FindInWindow(ctx context.Context, studentID, courseID string, from, to time.Time) (*model.Attendance, error) {
	for _, record := range m.records {
		if record.StudentID == studentID && record.CourseID == courseID &&
			!record.CheckInTime.Before(from) && !record.CheckInTime.After(to) {
			return record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) FindOnDate(ctx context.Context, studentID, courseID string, date time.Time) (*model.Attendance, error) {
	for _, record := range m.records {
		if record.StudentID == studentID && record.CourseID == courseID &&
			sameDate(record.CheckInDate, date) {
			return record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) DeleteOnDate(ctx context.Context, studentID, courseID string, date time.Time) (int64, error) {
	kept := m.records[:0]
	var deleted int64
	for _, record := range m.records {
		if record.StudentID == studentID && record.CourseID == courseID &&
			sameDate(record.CheckInDate, date) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	m.records = kept
	return deleted, nil
}

func (m *mockAttendanceRepo) ListByCourseOnDate(ctx context.Context, courseID string, date time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, record := range m.records {
		if record.CourseID == courseID && sameDate(record.CheckInDate, date) {
			copied := *record
			if student, ok := m.students.students[record.StudentID]; ok {
				copied.Student = student
			}
			out = append(out, copied)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) ListForStudentBetween(ctx context.Context, studentID, courseID string, from, to time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, record := range m.records {
		if record.StudentID == studentID && record.CourseID == courseID &&
			!record.CheckInTime.Before(from) && !record.CheckInTime.After(to) {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) CountDistinctSessions(ctx context.Context, courseID string, from, to time.Time) (int64, error) {
	tokens := make(map[string]bool)
	for _, record := range m.records {
		if record.CourseID == courseID && record.SessionToken != nil &&
			!record.CheckInTime.Before(from) && !record.CheckInTime.After(to) {
			tokens[*record.SessionToken] = true
		}
	}
	return int64(len(tokens)), nil
}

// ── fixture ──

type fixture struct {
	repo        *repository.Repository
	users       *mockUserRepo
	students    *mockStudentRepo
	lecturers   *mockLecturerRepo
	courses     *mockCourseRepo
	enrollments *mockEnrollmentRepo
	attendances *mockAttendanceRepo
}

func newFixture() *fixture {
	users := newMockUserRepo()
	students := newMockStudentRepo()
	lecturers := newMockLecturerRepo()
	enrollments := newMockEnrollmentRepo()
	courses := newMockCourseRepo(enrollments, students)
	attendances := newMockAttendanceRepo(students)

	return &fixture{
		repo: &repository.Repository{
			User:       users,
			Student:    students,
			Lecturer:   lecturers,
			Course:     courses,
			Enrollment: enrollments,
			Attendance: attendances,
		},
		users:       users,
		students:    students,
		lecturers:   lecturers,
		courses:     courses,
		enrollments: enrollments,
		attendances: attendances,
	}
}

func (f *fixture) addStudent(studentID, userID, code, name string) {
	f.students.students[studentID] = &model.Student{
		StudentID:   studentID,
		StudentCode: code,
		Name:        name,
		UserID:      userID,
	}
}

func (f *fixture) addLecturer(lecturerID, userID, name string) {
	f.lecturers.lecturers[lecturerID] = &model.Lecturer{
		LecturerID: lecturerID,
		Name:       name,
		UserID:     userID,
	}
}

func (f *fixture) addCourse(course *model.Course) {
	f.courses.courses[course.CourseID] = course
}

func (f *fixture) enroll(studentID, courseID string) {
	f.enrollments.set[enrollKey{studentID, courseID}] = true
}
