package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attendtrack/config"
	"attendtrack/internal/api/handler"
	"attendtrack/internal/api/middleware"
	"attendtrack/internal/model"
	"attendtrack/pkg/jwt"
	"attendtrack/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware attached.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// everything else requires an access token
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// courses
			authorized.GET("/courses", h.Course.List)
			authorized.POST("/courses", middleware.RoleAuth(model.RoleLecturer, model.RoleAdmin), h.Course.Create)
			authorized.GET("/courses/:courseId/students", h.Course.Roster)
			authorized.POST("/courses/:courseId/qr-session",
				middleware.RoleAuth(model.RoleLecturer, model.RoleAdmin), h.Course.GenerateQRSession)
			authorized.GET("/lecturers/:userId/courses", h.Course.ListByLecturer)
			authorized.GET("/timetable", h.Course.Timetable)

			// enrollment
			authorized.POST("/enrollments", middleware.RoleAuth(model.RoleStudent), h.Course.Enroll)
			authorized.DELETE("/enrollments/:courseCode", middleware.RoleAuth(model.RoleStudent), h.Course.Unenroll)

			// attendance
			authorized.POST("/attendance",
				middleware.RoleAuth(model.RoleStudent),
				middleware.RateLimit(rdb, 10, time.Minute),
				h.Attendance.Mark)
			authorized.POST("/manual-attendance/:courseId",
				middleware.RoleAuth(model.RoleLecturer, model.RoleAdmin), h.Attendance.ManualMark)
			authorized.DELETE("/attendance/:courseId/:studentId",
				middleware.RoleAuth(model.RoleLecturer, model.RoleAdmin), h.Attendance.Cancel)
			authorized.GET("/attendance-status/course/:courseId", h.Attendance.StatusByCourse)

			// reporting
			authorized.GET("/students/:userId/daily-attendance", h.Stats.Daily)
			authorized.GET("/students/:userId/attendance-stats", h.Stats.StudentStats)
			authorized.GET("/course/:courseId/attendance-stats", h.Stats.CourseStats)

			// export
			export := authorized.Group("/export")
			{
				export.GET("/course/:courseId/attendance.xlsx",
					middleware.RoleAuth(model.RoleLecturer, model.RoleAdmin), h.Export.AttendanceReport)
				export.GET("/timetable.ics", h.Export.Timetable)
			}
		}
	}

	return r
}
