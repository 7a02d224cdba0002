package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/SchoolPortal/handlers"
	"github.com/patiponrmutl/SchoolPortal/ledger"
	"github.com/patiponrmutl/SchoolPortal/middlewares"
	"github.com/patiponrmutl/SchoolPortal/models"
	"github.com/patiponrmutl/SchoolPortal/realtime"
)

// Deps carries the shared services the handlers close over.
type Deps struct {
	JWTSecret  string
	Hub        *realtime.Hub
	Attendance *ledger.AttendanceLedger
	Results    *ledger.ResultLedger
}

// Register wires all HTTP routes.
func Register(e *echo.Echo, d Deps) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(d.JWTSecret)
	att := handlers.NewAttendanceHandler(d.Attendance)
	res := handlers.NewResultHandler(d.Results)
	crs := handlers.NewCourseHandler()
	std := handlers.NewStudentHandler()
	tch := handlers.NewTeacherHandler()
	enr := handlers.NewEnrollmentHandler(d.Hub)
	ntf := handlers.NewNotificationHandler(d.Hub)
	tt := handlers.NewTimetableHandler()
	ws := handlers.NewWSHandler(d.Hub, d.JWTSecret)

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/api/auth/login", auth.Login)
	e.GET("/ws", ws.Serve) // token in query string

	// ===== Authenticated =====
	authMW := middlewares.RequireAuth(d.JWTSecret)
	staffMW := middlewares.RequireRole(models.RoleTeacher, models.RoleAdmin)
	adminMW := middlewares.RequireRole(models.RoleAdmin)

	api := e.Group("/api", authMW)

	api.GET("/auth/me", auth.Me)

	// attendance pipeline
	api.POST("/attendance", att.Mark, staffMW)
	api.GET("/attendance", att.List)
	api.GET("/attendance/report/:student_id", att.Report)
	api.GET("/attendance/alerts", att.Alerts, staffMW)

	// result pipeline
	api.POST("/results", res.Create, staffMW)
	api.POST("/results/assessments", res.Upload, staffMW)
	api.GET("/results/student/:id", res.StudentResults)
	api.GET("/results/performance-analysis", res.Performance, adminMW)

	// courses
	api.GET("/courses", crs.List)
	api.GET("/courses/:id", crs.Get)
	api.POST("/courses", crs.Create, adminMW)
	api.PUT("/courses/:id", crs.Update, adminMW)
	api.DELETE("/courses/:id", crs.Delete, adminMW)

	// students
	api.GET("/students", std.List, staffMW)
	api.GET("/students/:id", std.Get, staffMW)
	api.POST("/students", std.Create, adminMW)
	api.PUT("/students/:id", std.Update, adminMW)
	api.DELETE("/students/:id", std.Delete, adminMW)

	// teachers
	api.GET("/teachers", tch.List, adminMW)
	api.GET("/teachers/:id", tch.Get, adminMW)
	api.POST("/teachers", tch.Create, adminMW)
	api.PUT("/teachers/:id", tch.Update, adminMW)
	api.DELETE("/teachers/:id", tch.Delete, adminMW)

	// enrollments
	api.GET("/enrollments", enr.List)
	api.POST("/enrollments", enr.Create, adminMW)
	api.DELETE("/enrollments/:id", enr.Delete, adminMW)

	// notifications (polling fallback for the push channel)
	api.GET("/notifications", ntf.List)
	api.PUT("/notifications/:id/read", ntf.MarkRead)
	api.POST("/notifications", ntf.Create, adminMW)

	// timetable
	api.GET("/timetable", tt.List)
	api.POST("/timetable", tt.Create, adminMW)
	api.PUT("/timetable/:id", tt.Update, adminMW)
	api.DELETE("/timetable/:id", tt.Delete, adminMW)
}
