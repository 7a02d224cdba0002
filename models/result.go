package models

import "time"

// Assessment types accepted by the result ledger.
var AssessmentTypes = []string{"Midterm", "Final", "Quiz", "Assignment", "Project", "Lab"}

// ValidAssessmentType reports whether t is a known assessment type.
func ValidAssessmentType(t string) bool {
	for _, v := range AssessmentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Result is one assessment score for one student in one course. The
// (student_id, course_id, assessment_type, assessment_name) key is unique;
// re-uploading the same assessment overwrites the row. Grade and percentage
// are derived from the marks at save time and never edited directly.
type Result struct {
	ID             uint      `gorm:"primaryKey"                                              json:"id"`
	StudentID      uint      `gorm:"not null;uniqueIndex:uq_result_key,priority:1"           json:"student_id"`
	CourseID       uint      `gorm:"not null;uniqueIndex:uq_result_key,priority:2"           json:"course_id"`
	AssessmentType string    `gorm:"size:20;not null;uniqueIndex:uq_result_key,priority:3"   json:"assessment_type"`
	AssessmentName string    `gorm:"size:100;not null;default:'';uniqueIndex:uq_result_key,priority:4" json:"assessment_name"` // distinguishes e.g. "Quiz 1" from "Quiz 2"
	// real foreign keys: scores for unknown students or courses are rejected
	Student        *Student  `gorm:"constraint:OnDelete:CASCADE"                             json:"-"`
	Course         *Course   `gorm:"constraint:OnDelete:CASCADE"                             json:"-"`
	MarksObtained  float64   `gorm:"not null"                                                json:"marks_obtained"`
	TotalMarks     float64   `gorm:"not null"                                                json:"total_marks"`
	Percentage     float64   `json:"percentage"` // 2-decimal, derived
	Grade          string    `gorm:"size:2"      json:"grade"`
	UploadedBy     uint      `gorm:"index"       json:"uploaded_by"` // teacher id
	Remarks        string    `gorm:"type:text"   json:"remarks"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
