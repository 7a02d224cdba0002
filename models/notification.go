package models

import "time"

// Notification is the durable row behind the push channel: every event the
// realtime hub fans out is also stored here so clients can poll for what they
// missed while disconnected. UserID 0 means the whole role.
type Notification struct {
	ID        uint      `gorm:"primaryKey"       json:"id"`
	Role      string    `gorm:"size:10;not null;index:idx_notification_scope,priority:1" json:"role"`
	UserID    uint      `gorm:"index:idx_notification_scope,priority:2"                  json:"user_id"`
	Event     string    `gorm:"size:40;not null" json:"event"` // e.g. attendance:updated
	Title     string    `gorm:"size:120"         json:"title"`
	Message   string    `gorm:"type:text"        json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"` // per-user rows only; role-wide rows stay list-only
	CreatedAt time.Time `json:"created_at"`
}
