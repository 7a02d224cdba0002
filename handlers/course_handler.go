package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/SchoolPortal/database"
	"github.com/patiponrmutl/SchoolPortal/models"
)

type CourseHandler struct{}

func NewCourseHandler() *CourseHandler { return &CourseHandler{} }

type CourseReq struct {
	Code        string `json:"code"         validate:"required"`
	Title       string `json:"title"        validate:"required"`
	CreditHours int    `json:"credit_hours" validate:"gte=1,lte=10"`
	TeacherID   *uint  `json:"teacher_id"`
}

// GET /api/courses
func (h *CourseHandler) List(c echo.Context) error {
	page, limit, offset := pageParams(c)
	tx := database.DB.Model(&models.Course{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(code) LIKE ? OR LOWER(title) LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return httpError(c, err)
	}
	var rows []models.Course
	if err := tx.Preload("Teacher").Order("code ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": rows, "meta": pageMeta(page, limit, total)})
}

// GET /api/courses/:id
func (h *CourseHandler) Get(c echo.Context) error {
	var course models.Course
	if err := database.DB.Preload("Teacher").First(&course, atoiOr(c.Param("id"), 0)).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, course)
}

// POST /api/courses
func (h *CourseHandler) Create(c echo.Context) error {
	var req CourseReq
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if req.CreditHours == 0 {
		req.CreditHours = 3
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	course := models.Course{
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Title:       strings.TrimSpace(req.Title),
		CreditHours: req.CreditHours,
		TeacherID:   req.TeacherID,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, course)
}

// PUT /api/courses/:id
func (h *CourseHandler) Update(c echo.Context) error {
	var course models.Course
	if err := database.DB.First(&course, atoiOr(c.Param("id"), 0)).Error; err != nil {
		return httpError(c, err)
	}
	var req CourseReq
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if req.CreditHours == 0 {
		req.CreditHours = course.CreditHours
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	course.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	course.Title = strings.TrimSpace(req.Title)
	course.CreditHours = req.CreditHours
	course.TeacherID = req.TeacherID
	if err := database.DB.Save(&course).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, course)
}

// DELETE /api/courses/:id
func (h *CourseHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Course{}, atoiOr(c.Param("id"), 0))
	if res.Error != nil {
		return httpError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound()
	}
	return c.NoContent(http.StatusNoContent)
}
