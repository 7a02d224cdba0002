// Package ledger implements the attendance and result upsert pipelines:
// batch writes keyed by their natural composite keys, per-record outcome
// reporting, and fan-out of change events after commit.
package ledger

import (
	"errors"

	"github.com/patiponrmutl/SchoolPortal/models"
)

// Error classes surfaced by stores and services. Handlers translate these
// to HTTP statuses at the boundary.
var (
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("duplicate key")
	ErrInvalidRef = errors.New("invalid reference")
)

// AttendanceStore persists attendance rows. Find returns (nil, nil) when no
// row matches the natural key.
type AttendanceStore interface {
	Find(studentID, courseID uint, date string) (*models.Attendance, error)
	Create(*models.Attendance) error
	Save(*models.Attendance) error
}

// ResultStore persists result rows. Find returns (nil, nil) when no row
// matches the natural key.
type ResultStore interface {
	Find(studentID, courseID uint, assessmentType, assessmentName string) (*models.Result, error)
	Create(*models.Result) error
	Save(*models.Result) error
}

// NotificationStore persists the durable copies of pushed events.
type NotificationStore interface {
	Create(*models.Notification) error
}

// Notifier is the delivery side of the pipeline: fire-and-forget, at most
// once, silently dropped for disconnected recipients. The realtime hub
// implements it; tests plug in a recorder.
type Notifier interface {
	ToUser(role string, id uint, event string, payload any)
	ToRole(role string, event string, payload any)
}

// NopNotifier satisfies Notifier and delivers nothing.
type NopNotifier struct{}

func (NopNotifier) ToUser(string, uint, string, any) {}
func (NopNotifier) ToRole(string, string, any)       {}

// Events pushed over the realtime channel.
const (
	EventAttendanceMarked  = "attendance:marked"
	EventAttendanceUpdated = "attendance:updated"
	EventResultsUpdated    = "results:updated"
	EventResultsUploaded   = "results:uploaded"
	EventNotificationNew   = "notification:new"
	EventEnrollmentCreated = "enrollment:created"
)
