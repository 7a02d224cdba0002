package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patiponrmutl/SchoolPortal/models"
)

// Per-record outcomes in batch summaries.
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeError   = "error"
)

type MarkRecord struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Status    string `json:"status"     validate:"required"`
}

type MarkRequest struct {
	CourseID    uint         `json:"course_id"    validate:"required"`
	TeacherID   uint         `json:"-"`
	Date        string       `json:"date"         validate:"required"`
	SessionType string       `json:"session_type"`
	Records     []MarkRecord `json:"records"      validate:"required,min=1,dive"`
}

type RecordOutcome struct {
	StudentID uint   `json:"student_id"`
	Outcome   string `json:"outcome"`
	Error     string `json:"error,omitempty"`
}

type MarkSummary struct {
	Processed int             `json:"processed"`
	Created   int             `json:"created"`
	Updated   int             `json:"updated"`
	Failed    int             `json:"failed"`
	Outcomes  []RecordOutcome `json:"outcomes"`
}

// AttendanceLedger applies attendance batches as independent upserts on the
// (student, course, date) key and fans out change events after the writes.
type AttendanceLedger struct {
	Store AttendanceStore
	Notes NotificationStore
	Push  Notifier
	Log   *zap.Logger
}

func NewAttendanceLedger(store AttendanceStore, notes NotificationStore, push Notifier, log *zap.Logger) *AttendanceLedger {
	if push == nil {
		push = NopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AttendanceLedger{Store: store, Notes: notes, Push: push, Log: log}
}

// validateMark rejects the whole batch before any write: malformed dates or
// unknown statuses never reach the store.
func validateMark(req MarkRequest) error {
	if req.CourseID == 0 {
		return fmt.Errorf("%w: course_id is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if len(req.Records) == 0 {
		return fmt.Errorf("%w: records must not be empty", ErrValidation)
	}
	for _, r := range req.Records {
		if r.StudentID == 0 {
			return fmt.Errorf("%w: student_id is required", ErrValidation)
		}
		if !models.ValidAttendanceStatus(r.Status) {
			return fmt.Errorf("%w: unknown status %q", ErrValidation, r.Status)
		}
	}
	return nil
}

// Mark upserts each record independently, in input order. A failing record
// is reported in its outcome and the batch continues; nothing already
// committed is rolled back. Applying the same batch twice leaves one row per
// (student, course, date) with the last call's status.
func (l *AttendanceLedger) Mark(req MarkRequest) (MarkSummary, error) {
	if err := validateMark(req); err != nil {
		return MarkSummary{}, err
	}

	sum := MarkSummary{Outcomes: make([]RecordOutcome, 0, len(req.Records))}
	now := time.Now()
	for _, r := range req.Records {
		outcome, err := l.upsertOne(req, r, now)
		if err != nil {
			sum.Failed++
			sum.Outcomes = append(sum.Outcomes, RecordOutcome{StudentID: r.StudentID, Outcome: OutcomeError, Error: err.Error()})
			l.Log.Warn("attendance upsert failed",
				zap.Uint("student_id", r.StudentID),
				zap.Uint("course_id", req.CourseID),
				zap.String("date", req.Date),
				zap.Error(err))
			continue
		}
		sum.Processed++
		if outcome == OutcomeCreated {
			sum.Created++
		} else {
			sum.Updated++
		}
		sum.Outcomes = append(sum.Outcomes, RecordOutcome{StudentID: r.StudentID, Outcome: outcome})
	}

	if sum.Processed > 0 {
		l.announce(req, sum)
	}
	return sum, nil
}

// upsertOne applies one record. On a create that loses a concurrent race it
// retries as an update of the winner's row.
func (l *AttendanceLedger) upsertOne(req MarkRequest, r MarkRecord, now time.Time) (string, error) {
	existing, err := l.Store.Find(r.StudentID, req.CourseID, req.Date)
	if err != nil {
		return "", err
	}
	if existing != nil {
		existing.Status = r.Status
		existing.SessionType = req.SessionType
		existing.TeacherID = req.TeacherID
		existing.MarkedAt = now
		if err := l.Store.Save(existing); err != nil {
			return "", err
		}
		return OutcomeUpdated, nil
	}

	rec := &models.Attendance{
		StudentID:   r.StudentID,
		CourseID:    req.CourseID,
		TeacherID:   req.TeacherID,
		Date:        req.Date,
		Status:      r.Status,
		SessionType: req.SessionType,
		MarkedAt:    now,
	}
	err = l.Store.Create(rec)
	if errors.Is(err, ErrDuplicate) {
		// lost the race: the winner's row is the one to update
		winner, ferr := l.Store.Find(r.StudentID, req.CourseID, req.Date)
		if ferr != nil || winner == nil {
			return "", err
		}
		winner.Status = r.Status
		winner.SessionType = req.SessionType
		winner.TeacherID = req.TeacherID
		winner.MarkedAt = now
		if serr := l.Store.Save(winner); serr != nil {
			return "", serr
		}
		return OutcomeUpdated, nil
	}
	if err != nil {
		return "", err
	}
	return OutcomeCreated, nil
}

// announce persists the durable notification rows and pushes the realtime
// events. Delivery is best effort; failures to persist are logged only.
func (l *AttendanceLedger) announce(req MarkRequest, sum MarkSummary) {
	msg := fmt.Sprintf("Attendance marked for course %d on %s (%d students)", req.CourseID, req.Date, sum.Processed)
	payload := map[string]any{
		"event_id":  uuid.NewString(),
		"course_id": req.CourseID,
		"date":      req.Date,
		"message":   msg,
	}
	l.Push.ToRole(models.RoleTeacher, EventAttendanceMarked, payload)
	l.Push.ToRole(models.RoleAdmin, EventAttendanceMarked, payload)
	l.persistNote(models.RoleAdmin, 0, EventAttendanceMarked, "Attendance marked", msg)
	if req.TeacherID != 0 {
		l.persistNote(models.RoleTeacher, req.TeacherID, EventAttendanceMarked, "Attendance marked", msg)
	}

	for _, o := range sum.Outcomes {
		if o.Outcome == OutcomeError {
			continue
		}
		sm := fmt.Sprintf("Your attendance for course %d on %s was updated", req.CourseID, req.Date)
		l.Push.ToUser(models.RoleStudent, o.StudentID, EventAttendanceUpdated, map[string]any{
			"event_id":  uuid.NewString(),
			"course_id": req.CourseID,
			"date":      req.Date,
			"message":   sm,
		})
		l.persistNote(models.RoleStudent, o.StudentID, EventAttendanceUpdated, "Attendance updated", sm)
	}
}

func (l *AttendanceLedger) persistNote(role string, userID uint, event, title, msg string) {
	n := &models.Notification{Role: role, UserID: userID, Event: event, Title: title, Message: msg}
	if err := l.Notes.Create(n); err != nil {
		l.Log.Error("persist notification failed", zap.String("event", event), zap.Error(err))
	}
}
