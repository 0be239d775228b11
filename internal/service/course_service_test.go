package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"attendtrack/internal/dto"
)

func newCourseFixture(t *testing.T) (*fixture, CourseService) {
	t.Helper()
	f := newFixture()
	svc := NewCourseService(f.repo, zap.NewNop())

	f.addLecturer("lecturer-1", "user-lect", "Dr. Tan Wei Ming")
	f.addStudent("student-1", "user-1", "S1001", "Aina Binti Rahman")
	return f, svc
}

func createCourseRequest() *dto.CreateCourseRequest {
	return &dto.CreateCourseRequest{
		CourseCode: "CS101",
		CourseName: "Intro to Computing",
		StartTime:  "09:00",
		EndTime:    "11:00",
		Weekday:    1,
	}
}

func TestCreateCourse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		_, svc := newCourseFixture(t)
		resp, err := svc.Create(context.Background(), "user-lect", createCourseRequest())
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if resp.CourseCode != "CS101" || resp.LecturerName != "Dr. Tan Wei Ming" {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("caller is not a lecturer", func(t *testing.T) {
		_, svc := newCourseFixture(t)
		_, err := svc.Create(context.Background(), "user-1", createCourseRequest())
		if !errors.Is(err, ErrLecturerProfileNotFound) {
			t.Errorf("err = %v, want ErrLecturerProfileNotFound", err)
		}
	})

	t.Run("duplicate course code", func(t *testing.T) {
		_, svc := newCourseFixture(t)
		if _, err := svc.Create(context.Background(), "user-lect", createCourseRequest()); err != nil {
			t.Fatalf("first Create: %v", err)
		}
		_, err := svc.Create(context.Background(), "user-lect", createCourseRequest())
		if !errors.Is(err, ErrCourseCodeTaken) {
			t.Errorf("err = %v, want ErrCourseCodeTaken", err)
		}
	})

	t.Run("schedule validation", func(t *testing.T) {
		cases := []struct {
			name       string
			start, end string
		}{
			{"unparseable start", "9am", "11:00"},
			{"unparseable end", "09:00", "eleven"},
			{"start equals end", "09:00", "09:00"},
			{"start after end", "11:00", "09:00"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, svc := newCourseFixture(t)
				req := createCourseRequest()
				req.StartTime, req.EndTime = tc.start, tc.end
				if _, err := svc.Create(context.Background(), "user-lect", req); !errors.Is(err, ErrInvalidSchedule) {
					t.Errorf("err = %v, want ErrInvalidSchedule", err)
				}
			})
		}
	})
}

func TestEnroll(t *testing.T) {
	t.Run("success by course code", func(t *testing.T) {
		f, svc := newCourseFixture(t)
		f.addCourse(mondayCourse())

		resp, err := svc.Enroll(context.Background(), "user-1", "CS101")
		if err != nil {
			t.Fatalf("Enroll: %v", err)
		}
		if resp.CourseCode != "CS101" {
			t.Errorf("resp = %+v", resp)
		}
		if !f.enrollments.has("student-1", "course-cs101") {
			t.Errorf("enrollment not recorded")
		}
	})

	t.Run("duplicate enrollment", func(t *testing.T) {
		f, svc := newCourseFixture(t)
		f.addCourse(mondayCourse())
		f.enroll("student-1", "course-cs101")

		_, err := svc.Enroll(context.Background(), "user-1", "CS101")
		if !errors.Is(err, ErrAlreadyEnrolled) {
			t.Errorf("err = %v, want ErrAlreadyEnrolled", err)
		}
	})

	t.Run("unknown course code", func(t *testing.T) {
		_, svc := newCourseFixture(t)
		_, err := svc.Enroll(context.Background(), "user-1", "XX999")
		if !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("err = %v, want ErrCourseNotFound", err)
		}
	})

	t.Run("caller is not a student", func(t *testing.T) {
		f, svc := newCourseFixture(t)
		f.addCourse(mondayCourse())
		_, err := svc.Enroll(context.Background(), "user-lect", "CS101")
		if !errors.Is(err, ErrStudentProfileNotFound) {
			t.Errorf("err = %v, want ErrStudentProfileNotFound", err)
		}
	})
}

func TestUnenroll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f, svc := newCourseFixture(t)
		f.addCourse(mondayCourse())
		f.enroll("student-1", "course-cs101")

		if err := svc.Unenroll(context.Background(), "user-1", "CS101"); err != nil {
			t.Fatalf("Unenroll: %v", err)
		}
		if f.enrollments.has("student-1", "course-cs101") {
			t.Errorf("enrollment still present")
		}
	})

	t.Run("not enrolled", func(t *testing.T) {
		f, svc := newCourseFixture(t)
		f.addCourse(mondayCourse())

		err := svc.Unenroll(context.Background(), "user-1", "CS101")
		if !errors.Is(err, ErrNotEnrolled) {
			t.Errorf("err = %v, want ErrNotEnrolled", err)
		}
	})
}

func TestRoster(t *testing.T) {
	f, svc := newCourseFixture(t)
	f.addCourse(mondayCourse())
	f.addStudent("student-2", "user-2", "S1002", "Ben Ong")
	f.enroll("student-1", "course-cs101")
	f.enroll("student-2", "course-cs101")

	roster, err := svc.Roster(context.Background(), "course-cs101")
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("roster = %d entries, want 2", len(roster))
	}

	if _, err := svc.Roster(context.Background(), "course-ghost"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestTimetable(t *testing.T) {
	t.Run("student sees enrolled courses", func(t *testing.T) {
		f, svc := newCourseFixture(t)
		f.addCourse(mondayCourse())
		f.enroll("student-1", "course-cs101")

		entries, err := svc.Timetable(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("Timetable: %v", err)
		}
		if len(entries) != 1 || entries[0].CourseCode != "CS101" {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("lecturer sees taught courses", func(t *testing.T) {
		f, svc := newCourseFixture(t)
		f.addCourse(mondayCourse())

		entries, err := svc.Timetable(context.Background(), "user-lect")
		if err != nil {
			t.Fatalf("Timetable: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("no profile yields empty timetable", func(t *testing.T) {
		_, svc := newCourseFixture(t)
		entries, err := svc.Timetable(context.Background(), "user-ghost")
		if err != nil {
			t.Fatalf("Timetable: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("entries = %+v, want empty", entries)
		}
	})
}
