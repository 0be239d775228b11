package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"attendtrack/pkg/clock"
)

func newQRFixture(t *testing.T) (*fixture, QRService) {
	t.Helper()
	f := newFixture()
	svc := NewQRService(testConfig(), f.repo, nil, clock.FixedAt(monday0905), zap.NewNop())

	f.addLecturer("lecturer-1", "user-lect", "Dr. Tan Wei Ming")
	f.addCourse(mondayCourse())
	return f, svc
}

func TestGenerateQRSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		_, svc := newQRFixture(t)
		resp, err := svc.Generate(context.Background(), "user-lect", "course-cs101")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if resp.SessionID == "" {
			t.Errorf("empty session id")
		}
		if resp.CourseID != "course-cs101" {
			t.Errorf("course id = %q", resp.CourseID)
		}

		expiresAt, err := time.Parse(time.RFC3339, resp.ExpiresAt)
		if err != nil {
			t.Fatalf("parse expiresAt: %v", err)
		}
		if !expiresAt.Equal(monday0905.Add(time.Minute)) {
			t.Errorf("expiresAt = %v, want one minute from now", expiresAt)
		}
	})

	t.Run("tokens are unique per issuance", func(t *testing.T) {
		_, svc := newQRFixture(t)
		a, _ := svc.Generate(context.Background(), "user-lect", "course-cs101")
		b, _ := svc.Generate(context.Background(), "user-lect", "course-cs101")
		if a.SessionID == b.SessionID {
			t.Errorf("two issuances share a session id")
		}
	})

	t.Run("not the course owner", func(t *testing.T) {
		f, svc := newQRFixture(t)
		f.addLecturer("lecturer-2", "user-lect2", "Dr. Siti Aminah")
		_, err := svc.Generate(context.Background(), "user-lect2", "course-cs101")
		if !errors.Is(err, ErrNotCourseOwner) {
			t.Errorf("err = %v, want ErrNotCourseOwner", err)
		}
	})

	t.Run("course not found", func(t *testing.T) {
		_, svc := newQRFixture(t)
		_, err := svc.Generate(context.Background(), "user-lect", "course-ghost")
		if !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("err = %v, want ErrCourseNotFound", err)
		}
	})

	t.Run("caller is not a lecturer", func(t *testing.T) {
		_, svc := newQRFixture(t)
		_, err := svc.Generate(context.Background(), "user-ghost", "course-cs101")
		if !errors.Is(err, ErrLecturerProfileNotFound) {
			t.Errorf("err = %v, want ErrLecturerProfileNotFound", err)
		}
	})
}
