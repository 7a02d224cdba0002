package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/SchoolPortal/database"
	"github.com/patiponrmutl/SchoolPortal/ledger"
	"github.com/patiponrmutl/SchoolPortal/models"
)

type EnrollmentHandler struct {
	Push ledger.Notifier
}

func NewEnrollmentHandler(push ledger.Notifier) *EnrollmentHandler {
	if push == nil {
		push = ledger.NopNotifier{}
	}
	return &EnrollmentHandler{Push: push}
}

type EnrollmentReq struct {
	StudentID uint `json:"student_id" validate:"required"`
	CourseID  uint `json:"course_id"  validate:"required"`
}

// GET /api/enrollments?student_id=&course_id=
func (h *EnrollmentHandler) List(c echo.Context) error {
	page, limit, offset := pageParams(c)
	tx := database.DB.Model(&models.Enrollment{})
	if currentRole(c) == models.RoleStudent {
		tx = tx.Where("student_id = ?", currentUserID(c))
	} else if v := c.QueryParam("student_id"); v != "" {
		tx = tx.Where("student_id = ?", atoiOr(v, 0))
	}
	if v := c.QueryParam("course_id"); v != "" {
		tx = tx.Where("course_id = ?", atoiOr(v, 0))
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return httpError(c, err)
	}
	var rows []models.Enrollment
	if err := tx.Preload("Course").Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": rows, "meta": pageMeta(page, limit, total)})
}

// POST /api/enrollments
func (h *EnrollmentHandler) Create(c echo.Context) error {
	var req EnrollmentReq
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	var student models.Student
	if err := database.DB.First(&student, req.StudentID).Error; err != nil {
		return httpError(c, err)
	}
	var course models.Course
	if err := database.DB.First(&course, req.CourseID).Error; err != nil {
		return httpError(c, err)
	}

	enr := models.Enrollment{StudentID: req.StudentID, CourseID: req.CourseID}
	if err := database.DB.Create(&enr).Error; err != nil {
		return httpError(c, err)
	}

	msg := fmt.Sprintf("You were enrolled in %s (%s)", course.Title, course.Code)
	h.Push.ToUser(models.RoleStudent, req.StudentID, ledger.EventEnrollmentCreated, map[string]any{
		"event_id":  uuid.NewString(),
		"course_id": course.ID,
		"message":   msg,
	})
	_ = database.DB.Create(&models.Notification{
		Role: models.RoleStudent, UserID: req.StudentID,
		Event: ledger.EventEnrollmentCreated, Title: "Enrolled", Message: msg,
	}).Error

	return c.JSON(http.StatusCreated, enr)
}

// DELETE /api/enrollments/:id
func (h *EnrollmentHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Enrollment{}, atoiOr(c.Param("id"), 0))
	if res.Error != nil {
		return httpError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound()
	}
	return c.NoContent(http.StatusNoContent)
}
