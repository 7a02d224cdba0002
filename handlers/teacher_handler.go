package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/patiponrmutl/SchoolPortal/database"
	"github.com/patiponrmutl/SchoolPortal/models"
)

type TeacherHandler struct{}

func NewTeacherHandler() *TeacherHandler { return &TeacherHandler{} }

type TeacherReq struct {
	Name       string `json:"name"  validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

// GET /api/teachers
func (h *TeacherHandler) List(c echo.Context) error {
	page, limit, offset := pageParams(c)
	tx := database.DB.Model(&models.Teacher{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return httpError(c, err)
	}
	var rows []models.Teacher
	if err := tx.Order("name ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": rows, "meta": pageMeta(page, limit, total)})
}

// GET /api/teachers/:id
func (h *TeacherHandler) Get(c echo.Context) error {
	var t models.Teacher
	if err := database.DB.First(&t, atoiOr(c.Param("id"), 0)).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// POST /api/teachers
func (h *TeacherHandler) Create(c echo.Context) error {
	var req TeacherReq
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	if strings.TrimSpace(req.Password) == "" {
		return badRequest("MISSING_PASSWORD")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return httpError(c, err)
	}
	t := models.Teacher{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   string(hash),
		Department: req.Department,
		Phone:      req.Phone,
	}
	if err := database.DB.Create(&t).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// PUT /api/teachers/:id
func (h *TeacherHandler) Update(c echo.Context) error {
	var t models.Teacher
	if err := database.DB.First(&t, atoiOr(c.Param("id"), 0)).Error; err != nil {
		return httpError(c, err)
	}
	var req TeacherReq
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	t.Name = strings.TrimSpace(req.Name)
	t.Email = strings.ToLower(strings.TrimSpace(req.Email))
	t.Department = req.Department
	t.Phone = req.Phone
	if strings.TrimSpace(req.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return httpError(c, err)
		}
		t.Password = string(hash)
	}
	if err := database.DB.Save(&t).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// DELETE /api/teachers/:id
// Assigned courses keep existing thanks to the SET NULL constraint.
func (h *TeacherHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Teacher{}, atoiOr(c.Param("id"), 0))
	if res.Error != nil {
		return httpError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound()
	}
	return c.NoContent(http.StatusNoContent)
}
