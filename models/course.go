package models

import "time"

type Course struct {
	ID          uint   `gorm:"primaryKey"                   json:"id"`
	Code        string `gorm:"size:20;uniqueIndex;not null" json:"code"` // e.g. CS101
	Title       string `gorm:"size:150;not null"            json:"title"`
	CreditHours int    `gorm:"not null;default:3"           json:"credit_hours"` // CGPA weight
	// nullable so removing a teacher leaves the course intact
	TeacherID *uint     `gorm:"index"                       json:"teacher_id,omitempty"`
	Teacher   *Teacher  `gorm:"constraint:OnDelete:SET NULL" json:"teacher,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
