package handlers

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/SchoolPortal/database"
	"github.com/patiponrmutl/SchoolPortal/models"
)

type TimetableHandler struct{}

func NewTimetableHandler() *TimetableHandler { return &TimetableHandler{} }

var hhmm = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type TimetableReq struct {
	CourseID  uint   `json:"course_id"   validate:"required"`
	DayOfWeek int    `json:"day_of_week" validate:"gte=1,lte=7"`
	StartTime string `json:"start_time"  validate:"required"`
	EndTime   string `json:"end_time"    validate:"required"`
	Room      string `json:"room"`
}

func (r TimetableReq) check() error {
	if !hhmm.MatchString(r.StartTime) || !hhmm.MatchString(r.EndTime) {
		return badRequest("INVALID_TIME_FORMAT")
	}
	if r.EndTime <= r.StartTime {
		return badRequest("END_BEFORE_START")
	}
	return nil
}

// GET /api/timetable?course_id=&day_of_week=
func (h *TimetableHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.TimetableEntry{})
	if v := c.QueryParam("course_id"); v != "" {
		tx = tx.Where("course_id = ?", atoiOr(v, 0))
	}
	if v := c.QueryParam("day_of_week"); v != "" {
		tx = tx.Where("day_of_week = ?", atoiOr(v, 0))
	}
	var rows []models.TimetableEntry
	if err := tx.Preload("Course").Order("day_of_week ASC, start_time ASC").Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /api/timetable
func (h *TimetableHandler) Create(c echo.Context) error {
	var req TimetableReq
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	if err := req.check(); err != nil {
		return err
	}
	var course models.Course
	if err := database.DB.First(&course, req.CourseID).Error; err != nil {
		return httpError(c, err)
	}
	entry := models.TimetableEntry{
		CourseID: req.CourseID, DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime, EndTime: req.EndTime, Room: req.Room,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// PUT /api/timetable/:id
func (h *TimetableHandler) Update(c echo.Context) error {
	var entry models.TimetableEntry
	if err := database.DB.First(&entry, atoiOr(c.Param("id"), 0)).Error; err != nil {
		return httpError(c, err)
	}
	var req TimetableReq
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	if err := req.check(); err != nil {
		return err
	}
	entry.CourseID = req.CourseID
	entry.DayOfWeek = req.DayOfWeek
	entry.StartTime = req.StartTime
	entry.EndTime = req.EndTime
	entry.Room = req.Room
	if err := database.DB.Save(&entry).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

// DELETE /api/timetable/:id
func (h *TimetableHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.TimetableEntry{}, atoiOr(c.Param("id"), 0))
	if res.Error != nil {
		return httpError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound()
	}
	return c.NoContent(http.StatusNoContent)
}
