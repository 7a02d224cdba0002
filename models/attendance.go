package models

import "time"

// Attendance statuses. Present and late both count as attended in reports;
// excused counts toward the class total but neither as attended nor absent.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

// ValidAttendanceStatus reports whether s is one of the four known statuses.
func ValidAttendanceStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}

// Attendance is one student's status for one course on one calendar day.
// The (student_id, course_id, date) key is unique; re-marking the same day
// overwrites the row in place.
type Attendance struct {
	ID        uint   `gorm:"primaryKey"                                       json:"id"`
	StudentID uint   `gorm:"not null;uniqueIndex:uq_attendance_key,priority:1" json:"student_id"`
	CourseID  uint   `gorm:"not null;uniqueIndex:uq_attendance_key,priority:2" json:"course_id"`
	Date      string `gorm:"size:10;not null;uniqueIndex:uq_attendance_key,priority:3" json:"date"` // YYYY-MM-DD
	// associations give the schema real foreign keys: unknown student or
	// course ids fail the insert instead of creating orphan rows
	Student     *Student  `gorm:"constraint:OnDelete:CASCADE"                      json:"-"`
	Course      *Course   `gorm:"constraint:OnDelete:CASCADE"                      json:"-"`
	TeacherID   uint      `gorm:"index"                                            json:"teacher_id"`
	Status      string    `gorm:"size:10;not null"                                 json:"status"`
	SessionType string    `gorm:"size:50"                                          json:"session_type"` // free-text label, e.g. "lecture"
	MarkedAt    time.Time `json:"marked_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
