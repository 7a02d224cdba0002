package ledger

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SchoolPortal/models"
)

// classify wraps Postgres constraint violations in the ledger error classes
// so services and handlers never inspect driver errors themselves.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", ErrInvalidRef, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %v", ErrInvalidRef, err)
		}
	}
	return err
}

// GormAttendanceStore is the production AttendanceStore.
type GormAttendanceStore struct{ DB *gorm.DB }

func (s GormAttendanceStore) Find(studentID, courseID uint, date string) (*models.Attendance, error) {
	var rec models.Attendance
	err := s.DB.Where("student_id = ? AND course_id = ? AND date = ?", studentID, courseID, date).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s GormAttendanceStore) Create(rec *models.Attendance) error {
	return classify(s.DB.Create(rec).Error)
}

func (s GormAttendanceStore) Save(rec *models.Attendance) error {
	return classify(s.DB.Save(rec).Error)
}

// GormResultStore is the production ResultStore.
type GormResultStore struct{ DB *gorm.DB }

func (s GormResultStore) Find(studentID, courseID uint, assessmentType, assessmentName string) (*models.Result, error) {
	var rec models.Result
	err := s.DB.Where(
		"student_id = ? AND course_id = ? AND assessment_type = ? AND assessment_name = ?",
		studentID, courseID, assessmentType, assessmentName,
	).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s GormResultStore) Create(rec *models.Result) error {
	return classify(s.DB.Create(rec).Error)
}

func (s GormResultStore) Save(rec *models.Result) error {
	return classify(s.DB.Save(rec).Error)
}

// GormNotificationStore is the production NotificationStore.
type GormNotificationStore struct{ DB *gorm.DB }

func (s GormNotificationStore) Create(n *models.Notification) error {
	return classify(s.DB.Create(n).Error)
}
