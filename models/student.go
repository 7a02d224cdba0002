package models

import "time"

type Student struct {
	ID        uint      `gorm:"primaryKey"                      json:"id"`
	RegNo     string    `gorm:"size:20;uniqueIndex;not null"    json:"reg_no"` // registration number shown in lists
	Name      string    `gorm:"size:120;not null"               json:"name"`
	Email     string    `gorm:"size:120;uniqueIndex;not null"   json:"email"`
	Password  string    `gorm:"not null"                        json:"-"` // bcrypt hash
	Grade     string    `gorm:"size:20"                         json:"grade"`
	Section   string    `gorm:"size:10"                         json:"section"`
	Phone     string    `gorm:"size:15"                         json:"phone"`
	Status    string    `gorm:"size:20;not null;default:active" json:"status"` // active|left|suspended
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
