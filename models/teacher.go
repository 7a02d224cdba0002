package models

import "time"

type Teacher struct {
	ID         uint      `gorm:"primaryKey"                    json:"id"`
	Name       string    `gorm:"size:120;not null"             json:"name"`
	Email      string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null"                      json:"-"` // bcrypt hash
	Department string    `gorm:"size:80"                       json:"department"`
	Phone      string    `gorm:"size:15"                       json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
