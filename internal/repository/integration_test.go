//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"attendtrack/internal/model"
	"attendtrack/internal/repository"
	pkgerrors "attendtrack/pkg/errors"
)

var (
	testDB *gorm.DB
	myt    = time.FixedZone("MYT", 8*3600)
)

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=attendtrack password=attendtrack dbname=attendtrack_test sslmode=disable TimeZone=Asia/Kuala_Lumpur"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.Lecturer{},
		&model.Course{},
		&model.Enrollment{},
		&model.Attendance{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	testDB.Exec("TRUNCATE attendances, enrollments, courses, lecturers, students, users CASCADE")
	os.Exit(code)
}

func cleanup(t *testing.T) {
	t.Helper()
	testDB.Exec("TRUNCATE attendances, enrollments, courses, lecturers, students, users CASCADE")
}

func seedStudentAndCourse(t *testing.T, repo *repository.Repository) (studentID, courseID string) {
	t.Helper()
	ctx := context.Background()

	user := &model.User{Name: "Aina", Email: "aina@example.edu", PasswordHash: "x", Role: model.RoleStudent}
	if err := repo.User.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	student := &model.Student{StudentCode: "S1001", Name: "Aina", UserID: user.UserID}
	if err := repo.Student.Create(ctx, student); err != nil {
		t.Fatalf("create student: %v", err)
	}

	lectUser := &model.User{Name: "Dr. Tan", Email: "tan@example.edu", PasswordHash: "x", Role: model.RoleLecturer}
	if err := repo.User.Create(ctx, lectUser); err != nil {
		t.Fatalf("create lecturer user: %v", err)
	}
	lecturer := &model.Lecturer{Name: "Dr. Tan", UserID: lectUser.UserID}
	if err := repo.Lecturer.Create(ctx, lecturer); err != nil {
		t.Fatalf("create lecturer: %v", err)
	}

	course := &model.Course{
		CourseCode: "CS101", CourseName: "Intro to Computing",
		Weekday: 1, StartTime: "09:00", EndTime: "11:00",
		LecturerID: lecturer.LecturerID,
	}
	if err := repo.Course.Create(ctx, course); err != nil {
		t.Fatalf("create course: %v", err)
	}

	return student.StudentID, course.CourseID
}

func TestAttendanceUniquePerDay(t *testing.T) {
	cleanup(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	studentID, courseID := seedStudentAndCourse(t, repo)

	checkIn := time.Date(2025, 3, 10, 9, 5, 0, 0, myt)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, myt)
	token := "session-1"

	first := &model.Attendance{
		StudentID: studentID, CourseID: courseID,
		CheckInTime: checkIn, CheckInDate: day,
		SessionToken: &token, Status: model.StatusPresent,
	}
	if err := repo.Attendance.Create(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same day, different time and token: the day index must refuse it.
	second := &model.Attendance{
		StudentID: studentID, CourseID: courseID,
		CheckInTime: checkIn.Add(time.Hour), CheckInDate: day,
		Status: model.StatusLate,
	}
	if err := repo.Attendance.Create(ctx, second); err != pkgerrors.ErrConflict {
		t.Errorf("second create err = %v, want ErrConflict", err)
	}

	// The next day is a fresh slot.
	third := &model.Attendance{
		StudentID: studentID, CourseID: courseID,
		CheckInTime: checkIn.AddDate(0, 0, 1), CheckInDate: day.AddDate(0, 0, 1),
		Status: model.StatusPresent,
	}
	if err := repo.Attendance.Create(ctx, third); err != nil {
		t.Errorf("next-day create: %v", err)
	}
}

func TestEnrollmentUnique(t *testing.T) {
	cleanup(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	studentID, courseID := seedStudentAndCourse(t, repo)

	if err := repo.Enrollment.Create(ctx, &model.Enrollment{StudentID: studentID, CourseID: courseID}); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if err := repo.Enrollment.Create(ctx, &model.Enrollment{StudentID: studentID, CourseID: courseID}); err != pkgerrors.ErrConflict {
		t.Errorf("second enroll err = %v, want ErrConflict", err)
	}
}

func TestFindInWindowAndOnDate(t *testing.T) {
	cleanup(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	studentID, courseID := seedStudentAndCourse(t, repo)

	early := time.Date(2025, 3, 10, 7, 0, 0, 0, myt)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, myt)
	record := &model.Attendance{
		StudentID: studentID, CourseID: courseID,
		CheckInTime: early, CheckInDate: day,
		Status: model.StatusLate,
	}
	if err := repo.Attendance.Create(ctx, record); err != nil {
		t.Fatalf("create: %v", err)
	}

	// 07:00 sits outside the 09:00-11:00 window.
	windowStart := time.Date(2025, 3, 10, 9, 0, 0, 0, myt)
	windowEnd := time.Date(2025, 3, 10, 11, 0, 0, 0, myt)
	if _, err := repo.Attendance.FindInWindow(ctx, studentID, courseID, windowStart, windowEnd); err != gorm.ErrRecordNotFound {
		t.Errorf("FindInWindow err = %v, want ErrRecordNotFound", err)
	}

	// The calendar-day lookup still sees it.
	if _, err := repo.Attendance.FindOnDate(ctx, studentID, courseID, day); err != nil {
		t.Errorf("FindOnDate: %v", err)
	}
}

func TestCountDistinctSessions(t *testing.T) {
	cleanup(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	studentID, courseID := seedStudentAndCourse(t, repo)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, myt)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, myt)

	sessA, sessB := "sess-a", "sess-b"
	days := []struct {
		day   int
		token *string
	}{
		{3, &sessA},
		{10, &sessB},
		{17, nil}, // manual record, no session
	}
	for _, d := range days {
		at := time.Date(2025, 3, d.day, 9, 0, 0, 0, myt)
		err := repo.Attendance.Create(ctx, &model.Attendance{
			StudentID: studentID, CourseID: courseID,
			CheckInTime: at, CheckInDate: time.Date(2025, 3, d.day, 0, 0, 0, 0, myt),
			SessionToken: d.token, Status: model.StatusPresent,
		})
		if err != nil {
			t.Fatalf("create day %d: %v", d.day, err)
		}
	}

	count, err := repo.Attendance.CountDistinctSessions(ctx, courseID, from, to)
	if err != nil {
		t.Fatalf("CountDistinctSessions: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 (manual record must not count)", count)
	}
}
