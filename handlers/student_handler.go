package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/patiponrmutl/SchoolPortal/database"
	"github.com/patiponrmutl/SchoolPortal/models"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type StudentReq struct {
	RegNo    string `json:"reg_no"   validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password"`
	Grade    string `json:"grade"`
	Section  string `json:"section"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
}

// GET /api/students?q=&grade=&section=
func (h *StudentHandler) List(c echo.Context) error {
	page, limit, offset := pageParams(c)
	tx := database.DB.Model(&models.Student{})
	if grade := strings.TrimSpace(c.QueryParam("grade")); grade != "" {
		tx = tx.Where("grade = ?", grade)
	}
	if sec := strings.TrimSpace(c.QueryParam("section")); sec != "" {
		tx = tx.Where("section = ?", sec)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(reg_no) LIKE ? OR LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return httpError(c, err)
	}
	var rows []models.Student
	if err := tx.Order("reg_no ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": rows, "meta": pageMeta(page, limit, total)})
}

// GET /api/students/:id
func (h *StudentHandler) Get(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, atoiOr(c.Param("id"), 0)).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// POST /api/students
func (h *StudentHandler) Create(c echo.Context) error {
	var req StudentReq
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
	s := models.Student{
		RegNo:    strings.TrimSpace(req.RegNo),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hash),
		Grade:    req.Grade,
		Section:  req.Section,
		Phone:    req.Phone,
		Status:   "active",
	}
	if err := database.DB.Create(&s).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /api/students/:id
func (h *StudentHandler) Update(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, atoiOr(c.Param("id"), 0)).Error; err != nil {
		return httpError(c, err)
	}
	var req StudentReq
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	s.RegNo = strings.TrimSpace(req.RegNo)
	s.Name = strings.TrimSpace(req.Name)
	s.Email = strings.ToLower(strings.TrimSpace(req.Email))
	s.Grade = req.Grade
	s.Section = req.Section
	s.Phone = req.Phone
	if req.Status != "" {
		s.Status = req.Status
	}
	if strings.TrimSpace(req.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return httpError(c, err)
		}
		s.Password = string(hash)
	}
	if err := database.DB.Save(&s).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// DELETE /api/students/:id
func (h *StudentHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Student{}, atoiOr(c.Param("id"), 0))
	if res.Error != nil {
		return httpError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound()
	}
	return c.NoContent(http.StatusNoContent)
}
