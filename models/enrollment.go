package models

import "time"

type Enrollment struct {
	ID        uint      `gorm:"primaryKey"                                   json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:uq_enrollment,priority:1" json:"student_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:uq_enrollment,priority:2" json:"course_id"`
	Student   *Student  `gorm:"constraint:OnDelete:CASCADE"                  json:"student,omitempty"`
	Course    *Course   `gorm:"constraint:OnDelete:CASCADE"                  json:"course,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
