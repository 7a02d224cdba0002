package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/SchoolPortal/database"
	"github.com/patiponrmutl/SchoolPortal/ledger"
	"github.com/patiponrmutl/SchoolPortal/models"
	"github.com/patiponrmutl/SchoolPortal/reports"
)

type AttendanceHandler struct {
	Ledger *ledger.AttendanceLedger
}

func NewAttendanceHandler(l *ledger.AttendanceLedger) *AttendanceHandler {
	return &AttendanceHandler{Ledger: l}
}

// POST /api/attendance
// Batch mark: independent upserts on (student, course, date), mixed
// per-record outcome in the response.
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req ledger.MarkRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	if currentRole(c) == models.RoleTeacher {
		req.TeacherID = currentUserID(c)
	}
	// an unknown course fails the whole batch up front; unknown students fail
	// per record on the foreign key
	var course models.Course
	if err := database.DB.First(&course, req.CourseID).Error; err != nil {
		return httpError(c, err)
	}

	sum, err := h.Ledger.Mark(req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}

// GET /api/attendance?course_id&date&student_id&status&page&limit
// Newest days first; empty result sets are a 200 with accurate meta, never
// an error. Students only ever see their own rows.
func (h *AttendanceHandler) List(c echo.Context) error {
	page, limit, offset := pageParams(c)

	tx := database.DB.Model(&models.Attendance{})
	if v := c.QueryParam("course_id"); v != "" {
		tx = tx.Where("course_id = ?", atoiOr(v, 0))
	}
	if v := c.QueryParam("date"); v != "" {
		tx = tx.Where("date = ?", v)
	}
	if v := c.QueryParam("status"); v != "" {
		tx = tx.Where("status = ?", v)
	}
	if currentRole(c) == models.RoleStudent {
		tx = tx.Where("student_id = ?", currentUserID(c))
	} else if v := c.QueryParam("student_id"); v != "" {
		tx = tx.Where("student_id = ?", atoiOr(v, 0))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return httpError(c, err)
	}
	var rows []models.Attendance
	if err := tx.Order("date DESC, created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": rows, "meta": pageMeta(page, limit, total)})
}

// GET /api/attendance/report/:student_id
func (h *AttendanceHandler) Report(c echo.Context) error {
	studentID := uint(atoiOr(c.Param("student_id"), 0))
	if studentID == 0 {
		return badRequest("INVALID_STUDENT_ID")
	}
	// students may only read their own report
	if currentRole(c) == models.RoleStudent && currentUserID(c) != studentID {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var student models.Student
	if err := database.DB.First(&student, studentID).Error; err != nil {
		return httpError(c, err)
	}

	var rows []models.Attendance
	if err := database.DB.Where("student_id = ?", studentID).Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, reports.BuildAttendanceReport(studentID, rows))
}

// GET /api/attendance/alerts?window_days=30
func (h *AttendanceHandler) Alerts(c echo.Context) error {
	windowDays := atoiOr(c.QueryParam("window_days"), 30)
	if windowDays < 1 {
		windowDays = 30
	}
	cutoff := time.Now().AddDate(0, 0, -windowDays).Format("2006-01-02")

	var rows []models.Attendance
	if err := database.DB.Where("date >= ?", cutoff).Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"window_days": windowDays,
		"alerts":      reports.LowAttendanceAlerts(rows, windowDays, time.Now()),
	})
}
