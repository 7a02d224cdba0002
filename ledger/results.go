package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patiponrmutl/SchoolPortal/grading"
	"github.com/patiponrmutl/SchoolPortal/models"
)

type ScoreRecord struct {
	StudentID     uint    `json:"student_id"     validate:"required"`
	MarksObtained float64 `json:"marks_obtained" validate:"gte=0"`
	Remarks       string  `json:"remarks"`
}

// UploadRequest is one assessment instance: total_marks is shared across the
// whole batch.
type UploadRequest struct {
	CourseID       uint          `json:"course_id"       validate:"required"`
	UploadedBy     uint          `json:"-"`
	AssessmentType string        `json:"assessment_type" validate:"required"`
	AssessmentName string        `json:"assessment_name"`
	TotalMarks     float64       `json:"total_marks"     validate:"gt=0"`
	Records        []ScoreRecord `json:"records"         validate:"required,min=1,dive"`
}

type UploadSummary struct {
	CreatedCount int             `json:"created_count"`
	UpdatedCount int             `json:"updated_count"`
	Failed       int             `json:"failed"`
	Outcomes     []RecordOutcome `json:"outcomes"`
}

// ResultLedger applies assessment scores as independent upserts on the
// (student, course, assessment_type, assessment_name) key. The stored grade
// is always derived from the marks at save time.
type ResultLedger struct {
	Store ResultStore
	Notes NotificationStore
	Push  Notifier
	Log   *zap.Logger
}

func NewResultLedger(store ResultStore, notes NotificationStore, push Notifier, log *zap.Logger) *ResultLedger {
	if push == nil {
		push = NopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ResultLedger{Store: store, Notes: notes, Push: push, Log: log}
}

func validateUpload(req UploadRequest) error {
	if req.CourseID == 0 {
		return fmt.Errorf("%w: course_id is required", ErrValidation)
	}
	if !models.ValidAssessmentType(req.AssessmentType) {
		return fmt.Errorf("%w: unknown assessment_type %q", ErrValidation, req.AssessmentType)
	}
	if req.TotalMarks <= 0 {
		return fmt.Errorf("%w: total_marks must be positive", ErrValidation)
	}
	if len(req.Records) == 0 {
		return fmt.Errorf("%w: records must not be empty", ErrValidation)
	}
	for _, r := range req.Records {
		if r.StudentID == 0 {
			return fmt.Errorf("%w: student_id is required", ErrValidation)
		}
		if r.MarksObtained < 0 {
			return fmt.Errorf("%w: marks_obtained must be >= 0", ErrValidation)
		}
	}
	return nil
}

// Upload applies the batch record by record, continuing past failures.
// Re-uploading an identical batch yields created_count=0 and
// updated_count=len(records).
func (l *ResultLedger) Upload(req UploadRequest) (UploadSummary, error) {
	if err := validateUpload(req); err != nil {
		return UploadSummary{}, err
	}

	sum := UploadSummary{Outcomes: make([]RecordOutcome, 0, len(req.Records))}
	for _, r := range req.Records {
		created, err := l.upsert(req.CourseID, req.AssessmentType, req.AssessmentName, req.TotalMarks, req.UploadedBy, r)
		if err != nil {
			sum.Failed++
			sum.Outcomes = append(sum.Outcomes, RecordOutcome{StudentID: r.StudentID, Outcome: OutcomeError, Error: err.Error()})
			l.Log.Warn("result upsert failed",
				zap.Uint("student_id", r.StudentID),
				zap.Uint("course_id", req.CourseID),
				zap.String("assessment_type", req.AssessmentType),
				zap.Error(err))
			continue
		}
		if created {
			sum.CreatedCount++
			sum.Outcomes = append(sum.Outcomes, RecordOutcome{StudentID: r.StudentID, Outcome: OutcomeCreated})
		} else {
			sum.UpdatedCount++
			sum.Outcomes = append(sum.Outcomes, RecordOutcome{StudentID: r.StudentID, Outcome: OutcomeUpdated})
		}
	}

	if sum.CreatedCount+sum.UpdatedCount > 0 {
		l.announce(req, sum)
	}
	return sum, nil
}

// UpsertOne is the single-record path used for ad-hoc corrections. The
// caller is expected to have verified the student and course exist.
func (l *ResultLedger) UpsertOne(req UploadRequest) (created bool, err error) {
	if err := validateUpload(req); err != nil {
		return false, err
	}
	if len(req.Records) != 1 {
		return false, fmt.Errorf("%w: exactly one record expected", ErrValidation)
	}
	r := req.Records[0]
	created, err = l.upsert(req.CourseID, req.AssessmentType, req.AssessmentName, req.TotalMarks, req.UploadedBy, r)
	if err != nil {
		return false, err
	}

	msg := fmt.Sprintf("Your %s result for course %d was updated", req.AssessmentType, req.CourseID)
	l.Push.ToUser(models.RoleStudent, r.StudentID, EventResultsUpdated, map[string]any{
		"event_id":        uuid.NewString(),
		"course_id":       req.CourseID,
		"assessment_type": req.AssessmentType,
		"message":         msg,
	})
	l.persistNote(models.RoleStudent, r.StudentID, EventResultsUpdated, "Results updated", msg)
	return created, nil
}

func (l *ResultLedger) upsert(courseID uint, atype, aname string, total float64, uploadedBy uint, r ScoreRecord) (bool, error) {
	pct := grading.Percentage(r.MarksObtained, total)
	grade := string(grading.ForPercentage(pct))

	existing, err := l.Store.Find(r.StudentID, courseID, atype, aname)
	if err != nil {
		return false, err
	}
	if existing != nil {
		existing.MarksObtained = r.MarksObtained
		existing.TotalMarks = total
		existing.Percentage = pct
		existing.Grade = grade
		existing.UploadedBy = uploadedBy
		existing.Remarks = r.Remarks
		return false, l.Store.Save(existing)
	}

	rec := &models.Result{
		StudentID:      r.StudentID,
		CourseID:       courseID,
		AssessmentType: atype,
		AssessmentName: aname,
		MarksObtained:  r.MarksObtained,
		TotalMarks:     total,
		Percentage:     pct,
		Grade:          grade,
		UploadedBy:     uploadedBy,
		Remarks:        r.Remarks,
	}
	err = l.Store.Create(rec)
	if errors.Is(err, ErrDuplicate) {
		// concurrent double-submission: update the winner's row
		winner, ferr := l.Store.Find(r.StudentID, courseID, atype, aname)
		if ferr != nil || winner == nil {
			return false, err
		}
		winner.MarksObtained = r.MarksObtained
		winner.TotalMarks = total
		winner.Percentage = pct
		winner.Grade = grade
		winner.UploadedBy = uploadedBy
		winner.Remarks = r.Remarks
		return false, l.Store.Save(winner)
	}
	return err == nil, err
}

func (l *ResultLedger) announce(req UploadRequest, sum UploadSummary) {
	label := req.AssessmentType
	if req.AssessmentName != "" {
		label += " " + req.AssessmentName
	}

	for _, o := range sum.Outcomes {
		if o.Outcome == OutcomeError {
			continue
		}
		msg := fmt.Sprintf("Your %s result for course %d was updated", label, req.CourseID)
		l.Push.ToUser(models.RoleStudent, o.StudentID, EventResultsUpdated, map[string]any{
			"event_id":        uuid.NewString(),
			"course_id":       req.CourseID,
			"assessment_type": req.AssessmentType,
			"message":         msg,
		})
		l.persistNote(models.RoleStudent, o.StudentID, EventResultsUpdated, "Results updated", msg)
	}

	msg := fmt.Sprintf("%s uploaded for course %d: %d created, %d updated",
		label, req.CourseID, sum.CreatedCount, sum.UpdatedCount)
	l.Push.ToRole(models.RoleAdmin, EventResultsUploaded, map[string]any{
		"event_id":        uuid.NewString(),
		"course_id":       req.CourseID,
		"assessment_type": req.AssessmentType,
		"message":         msg,
	})
	l.persistNote(models.RoleAdmin, 0, EventResultsUploaded, "Results uploaded", msg)
}

func (l *ResultLedger) persistNote(role string, userID uint, event, title, msg string) {
	n := &models.Notification{Role: role, UserID: userID, Event: event, Title: title, Message: msg}
	if err := l.Notes.Create(n); err != nil {
		l.Log.Error("persist notification failed", zap.String("event", event), zap.Error(err))
	}
}
