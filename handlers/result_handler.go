package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/SchoolPortal/database"
	"github.com/patiponrmutl/SchoolPortal/ledger"
	"github.com/patiponrmutl/SchoolPortal/models"
	"github.com/patiponrmutl/SchoolPortal/reports"
)

type ResultHandler struct {
	Ledger *ledger.ResultLedger
}

func NewResultHandler(l *ledger.ResultLedger) *ResultHandler {
	return &ResultHandler{Ledger: l}
}

type CreateResultReq struct {
	StudentID      uint    `json:"student_id"      validate:"required"`
	CourseID       uint    `json:"course_id"       validate:"required"`
	AssessmentType string  `json:"assessment_type" validate:"required"`
	AssessmentName string  `json:"assessment_name"`
	MarksObtained  float64 `json:"marks_obtained"  validate:"gte=0"`
	TotalMarks     float64 `json:"total_marks"     validate:"gt=0"`
	Remarks        string  `json:"remarks"`
}

// POST /api/results
// Single upsert for ad-hoc corrections. Unknown student or course is a 404
// with no partial effect.
func (h *ResultHandler) Create(c echo.Context) error {
	var req CreateResultReq
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

	created, err := h.Ledger.UpsertOne(ledger.UploadRequest{
		CourseID:       req.CourseID,
		UploadedBy:     uploaderID(c),
		AssessmentType: req.AssessmentType,
		AssessmentName: req.AssessmentName,
		TotalMarks:     req.TotalMarks,
		Records: []ledger.ScoreRecord{
			{StudentID: req.StudentID, MarksObtained: req.MarksObtained, Remarks: req.Remarks},
		},
	})
	if err != nil {
		return httpError(c, err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, map[string]any{"created": created})
}

// POST /api/results/assessments
// Batch upload of one assessment instance; total_marks is shared across the
// whole batch.
func (h *ResultHandler) Upload(c echo.Context) error {
	var req ledger.UploadRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	var course models.Course
	if err := database.DB.First(&course, req.CourseID).Error; err != nil {
		return httpError(c, err)
	}
	req.UploadedBy = uploaderID(c)

	sum, err := h.Ledger.Upload(req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}

// GET /api/results/student/:id
func (h *ResultHandler) StudentResults(c echo.Context) error {
	studentID := uint(atoiOr(c.Param("id"), 0))
	if studentID == 0 {
		return badRequest("INVALID_STUDENT_ID")
	}
	if currentRole(c) == models.RoleStudent && currentUserID(c) != studentID {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var student models.Student
	if err := database.DB.First(&student, studentID).Error; err != nil {
		return httpError(c, err)
	}

	var rows []models.Result
	if err := database.DB.Where("student_id = ?", studentID).
		Order("course_id ASC, assessment_type ASC, assessment_name ASC").
		Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, reports.BuildStudentResults(studentID, rows, courseCredits(rows)))
}

// GET /api/results/performance-analysis
// System-wide snapshot over the whole result population, recomputed per call.
func (h *ResultHandler) Performance(c echo.Context) error {
	var rows []models.Result
	if err := database.DB.Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, reports.AnalyzePerformance(rows))
}

// courseCredits loads credit hours for every course referenced by rows.
func courseCredits(rows []models.Result) map[uint]int {
	ids := make([]uint, 0, len(rows))
	seen := map[uint]bool{}
	for _, r := range rows {
		if !seen[r.CourseID] {
			seen[r.CourseID] = true
			ids = append(ids, r.CourseID)
		}
	}
	credits := map[uint]int{}
	if len(ids) == 0 {
		return credits
	}
	var courses []models.Course
	if err := database.DB.Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return credits
	}
	for _, crs := range courses {
		credits[crs.ID] = crs.CreditHours
	}
	return credits
}

// uploaderID records which teacher uploaded; admin uploads keep 0.
func uploaderID(c echo.Context) uint {
	if currentRole(c) == models.RoleTeacher {
		return currentUserID(c)
	}
	return 0
}
