package models

import "time"

type TimetableEntry struct {
	ID        uint      `gorm:"primaryKey"        json:"id"`
	CourseID  uint      `gorm:"not null;index"    json:"course_id"`
	Course    *Course   `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty"`
	DayOfWeek int       `gorm:"not null"          json:"day_of_week"` // 1=Monday .. 7=Sunday
	StartTime string    `gorm:"size:5;not null"   json:"start_time"`  // HH:MM
	EndTime   string    `gorm:"size:5;not null"   json:"end_time"`    // HH:MM
	Room      string    `gorm:"size:30"           json:"room"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TimetableEntry) TableName() string { return "timetable" }
