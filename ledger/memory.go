package ledger

import (
	"fmt"
	"sync"

	"github.com/patiponrmutl/SchoolPortal/models"
)

// In-memory stores backing the service tests (and single-user harnesses).
// They enforce the same natural-key uniqueness the Postgres indexes do, and
// optionally a known-student set so batch tests can exercise the
// invalid-reference path.

type MemAttendanceStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]*models.Attendance

	// KnownStudents / KnownCourses, when non-nil, reject creates for absent
	// ids the way the foreign keys do.
	KnownStudents map[uint]bool
	KnownCourses  map[uint]bool
}

func NewMemAttendanceStore() *MemAttendanceStore {
	return &MemAttendanceStore{rows: map[string]*models.Attendance{}}
}

func attKey(studentID, courseID uint, date string) string {
	return fmt.Sprintf("%d|%d|%s", studentID, courseID, date)
}

func (s *MemAttendanceStore) Find(studentID, courseID uint, date string) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.rows[attKey(studentID, courseID, date)]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (s *MemAttendanceStore) Create(rec *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.KnownStudents != nil && !s.KnownStudents[rec.StudentID] {
		return fmt.Errorf("%w: student %d", ErrInvalidRef, rec.StudentID)
	}
	if s.KnownCourses != nil && !s.KnownCourses[rec.CourseID] {
		return fmt.Errorf("%w: course %d", ErrInvalidRef, rec.CourseID)
	}
	k := attKey(rec.StudentID, rec.CourseID, rec.Date)
	if _, ok := s.rows[k]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, k)
	}
	s.nextID++
	rec.ID = s.nextID
	cp := *rec
	s.rows[k] = &cp
	return nil
}

func (s *MemAttendanceStore) Save(rec *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.rows[attKey(rec.StudentID, rec.CourseID, rec.Date)] = &cp
	return nil
}

// All returns a snapshot of every stored row, for assertions.
func (s *MemAttendanceStore) All() []models.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Attendance, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, *r)
	}
	return out
}

type MemResultStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]*models.Result

	KnownStudents map[uint]bool
	KnownCourses  map[uint]bool
}

func NewMemResultStore() *MemResultStore {
	return &MemResultStore{rows: map[string]*models.Result{}}
}

func resKey(studentID, courseID uint, atype, aname string) string {
	return fmt.Sprintf("%d|%d|%s|%s", studentID, courseID, atype, aname)
}

func (s *MemResultStore) Find(studentID, courseID uint, atype, aname string) (*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.rows[resKey(studentID, courseID, atype, aname)]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (s *MemResultStore) Create(rec *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.KnownStudents != nil && !s.KnownStudents[rec.StudentID] {
		return fmt.Errorf("%w: student %d", ErrInvalidRef, rec.StudentID)
	}
	if s.KnownCourses != nil && !s.KnownCourses[rec.CourseID] {
		return fmt.Errorf("%w: course %d", ErrInvalidRef, rec.CourseID)
	}
	k := resKey(rec.StudentID, rec.CourseID, rec.AssessmentType, rec.AssessmentName)
	if _, ok := s.rows[k]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, k)
	}
	s.nextID++
	rec.ID = s.nextID
	cp := *rec
	s.rows[k] = &cp
	return nil
}

func (s *MemResultStore) Save(rec *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.rows[resKey(rec.StudentID, rec.CourseID, rec.AssessmentType, rec.AssessmentName)] = &cp
	return nil
}

func (s *MemResultStore) All() []models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Result, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, *r)
	}
	return out
}

type MemNotificationStore struct {
	mu   sync.Mutex
	Rows []models.Notification
}

func NewMemNotificationStore() *MemNotificationStore { return &MemNotificationStore{} }

func (s *MemNotificationStore) Create(n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = uint(len(s.Rows) + 1)
	s.Rows = append(s.Rows, *n)
	return nil
}
