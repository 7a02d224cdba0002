package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patiponrmutl/SchoolPortal/models"
)

func att(student, course uint, date, status string) models.Attendance {
	return models.Attendance{StudentID: student, CourseID: course, Date: date, Status: status}
}

func res(student, course uint, grade string) models.Result {
	return models.Result{StudentID: student, CourseID: course, Grade: grade}
}

func TestAttendanceReportScenario(t *testing.T) {
	// present/absent/late on one day: attended=2, absent=1, 67%
	rows := []models.Attendance{
		att(1, 1, "2025-01-10", models.StatusPresent),
		att(1, 1, "2025-01-11", models.StatusAbsent),
		att(1, 1, "2025-01-12", models.StatusLate),
	}
	rep := BuildAttendanceReport(1, rows)
	assert.Equal(t, 3, rep.TotalClasses)
	assert.Equal(t, 2, rep.Attended)
	assert.Equal(t, 1, rep.Absent)
	assert.Equal(t, 67, rep.OverallPercentage)
}

func TestAttendanceReportExcusedInDenominator(t *testing.T) {
	rows := []models.Attendance{
		att(1, 1, "2025-01-10", models.StatusPresent),
		att(1, 1, "2025-01-11", models.StatusExcused),
	}
	rep := BuildAttendanceReport(1, rows)
	assert.Equal(t, 2, rep.TotalClasses)
	assert.Equal(t, 1, rep.Attended)
	assert.Equal(t, 0, rep.Absent)
	assert.Equal(t, 1, rep.Excused)
	// excused stays in the denominator: 1/2, not 1/1
	assert.Equal(t, 50, rep.OverallPercentage)
}

func TestAttendanceReportZeroRows(t *testing.T) {
	rep := BuildAttendanceReport(42, nil)
	assert.Equal(t, 0, rep.TotalClasses)
	assert.Equal(t, 0, rep.OverallPercentage)
	assert.Empty(t, rep.PerCourse)
}

// Overall percentage is attended/total across all rows, not the mean of
// per-course percentages.
func TestOverallIsNotAverageOfCourses(t *testing.T) {
	rows := []models.Attendance{
		// course 1: 1/1 = 100%
		att(1, 1, "2025-01-10", models.StatusPresent),
		// course 2: 1/4 = 25%
		att(1, 2, "2025-01-10", models.StatusPresent),
		att(1, 2, "2025-01-11", models.StatusAbsent),
		att(1, 2, "2025-01-12", models.StatusAbsent),
		att(1, 2, "2025-01-13", models.StatusAbsent),
	}
	rep := BuildAttendanceReport(1, rows)
	// combined: 2/5 = 40%, while the course average would be 62.5%
	assert.Equal(t, 40, rep.OverallPercentage)

	require.Len(t, rep.PerCourse, 2)
	assert.Equal(t, uint(1), rep.PerCourse[0].CourseID)
	assert.Equal(t, 100, rep.PerCourse[0].Percentage)
	assert.Equal(t, 25, rep.PerCourse[1].Percentage)
}

func TestStudentResultsCGPA(t *testing.T) {
	credits := map[uint]int{1: 3, 2: 4}
	rows := []models.Result{
		res(1, 1, "A"),  // 4.0 * 3
		res(1, 2, "B+"), // 3.3 * 4
	}
	got := BuildStudentResults(1, rows, credits)
	// (12 + 13.2) / 7 = 3.6
	assert.Equal(t, 3.6, got.CGPA)
	assert.Equal(t, 7, got.TotalCredits)
}

// A course's credits count once per result row: two assessments in course 1
// double its weight. The over-weighted value is the documented behavior.
func TestStudentResultsOverWeightsRepeatedCourses(t *testing.T) {
	credits := map[uint]int{1: 3, 2: 3}
	rows := []models.Result{
		res(1, 1, "A"), // Midterm
		res(1, 1, "A"), // Final, same course
		res(1, 2, "F"),
	}
	got := BuildStudentResults(1, rows, credits)
	// (4*3 + 4*3 + 0*3) / 9 = 2.67, not the per-course (4+0)/2 = 2.0
	assert.Equal(t, 2.67, got.CGPA)
	assert.Equal(t, 9, got.TotalCredits)
}

func TestStudentResultsEmpty(t *testing.T) {
	got := BuildStudentResults(1, nil, nil)
	assert.Equal(t, 0.0, got.CGPA)
	assert.Equal(t, 0, got.TotalCredits)
	assert.NotNil(t, got.Results)
}

func TestLowAttendanceAlerts(t *testing.T) {
	now := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)
	rows := []models.Attendance{}
	// student 1: 2/5 = 40% → critical
	rows = append(rows,
		att(1, 1, "2025-01-10", models.StatusPresent),
		att(1, 1, "2025-01-11", models.StatusPresent),
		att(1, 1, "2025-01-12", models.StatusAbsent),
		att(1, 1, "2025-01-13", models.StatusAbsent),
		att(1, 1, "2025-01-14", models.StatusAbsent),
	)
	// student 2: 4/5 = 80% → no alert
	rows = append(rows,
		att(2, 1, "2025-01-10", models.StatusPresent),
		att(2, 1, "2025-01-11", models.StatusPresent),
		att(2, 1, "2025-01-12", models.StatusLate),
		att(2, 1, "2025-01-13", models.StatusPresent),
		att(2, 1, "2025-01-14", models.StatusAbsent),
	)
	// student 3: 3/5 = 60% → warning
	rows = append(rows,
		att(3, 1, "2025-01-10", models.StatusPresent),
		att(3, 1, "2025-01-11", models.StatusPresent),
		att(3, 1, "2025-01-12", models.StatusLate),
		att(3, 1, "2025-01-13", models.StatusAbsent),
		att(3, 1, "2025-01-14", models.StatusAbsent),
	)
	// student 4: perfect attendance, but outside the window anyway
	rows = append(rows,
		att(4, 1, "2024-11-01", models.StatusAbsent),
		att(4, 1, "2024-11-02", models.StatusAbsent),
	)

	alerts := LowAttendanceAlerts(rows, 30, now)
	require.Len(t, alerts, 2)
	// ascending percentage: the critical one first
	assert.Equal(t, uint(1), alerts[0].StudentID)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.Equal(t, 40, alerts[0].Percentage)
	assert.Equal(t, uint(3), alerts[1].StudentID)
	assert.Equal(t, SeverityWarning, alerts[1].Severity)
}

// streak builds total consecutive daily rows for one (student, course) pair,
// the first attended of them present and the rest absent.
func streak(student, course uint, start time.Time, attended, total int) []models.Attendance {
	rows := make([]models.Attendance, 0, total)
	for i := 0; i < total; i++ {
		status := models.StatusPresent
		if i >= attended {
			status = models.StatusAbsent
		}
		rows = append(rows, att(student, course, start.AddDate(0, 0, i).Format("2006-01-02"), status))
	}
	return rows
}

// Thresholds apply to the raw ratio, not the rounded display value: 74.5%
// shows as 75 but still alerts, and 49.5% shows as 50 but is still critical.
func TestLowAttendanceAlertThresholdsUseRawRatio(t *testing.T) {
	now := time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -210)

	rows := streak(1, 1, start, 149, 200)          // 74.5%
	rows = append(rows, streak(2, 1, start, 99, 200)...)  // 49.5%
	rows = append(rows, streak(3, 1, start, 150, 200)...) // exactly 75%, no alert

	alerts := LowAttendanceAlerts(rows, 365, now)
	require.Len(t, alerts, 2)

	assert.Equal(t, uint(2), alerts[0].StudentID)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.Equal(t, 50, alerts[0].Percentage)

	assert.Equal(t, uint(1), alerts[1].StudentID)
	assert.Equal(t, SeverityWarning, alerts[1].Severity)
	assert.Equal(t, 75, alerts[1].Percentage)
}

func TestLowAttendanceAlertsCap(t *testing.T) {
	now := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)
	var rows []models.Attendance
	for s := uint(1); s <= 15; s++ {
		rows = append(rows,
			att(s, 1, "2025-01-10", models.StatusAbsent),
			att(s, 1, "2025-01-11", models.StatusPresent),
			att(s, 1, "2025-01-12", models.StatusAbsent),
		)
	}
	alerts := LowAttendanceAlerts(rows, 30, now)
	assert.Len(t, alerts, 10)
}

func TestPerformanceAnalysis(t *testing.T) {
	rows := []models.Result{
		res(1, 1, "A+"), res(2, 1, "B"), res(3, 1, "F"), res(4, 1, "D"),
	}
	p := AnalyzePerformance(rows)
	assert.Equal(t, 4, p.TotalResults)
	assert.Equal(t, 75.0, p.PassRate)
	// (4.0 + 3.0 + 0.0 + 1.0) / 4 = 2.0
	assert.Equal(t, 2.0, p.AverageGPA)
	assert.Equal(t, 1, p.GradeDistribution["A+"])
	assert.Equal(t, 1, p.GradeDistribution["F"])
}

func TestPerformanceAnalysisEmpty(t *testing.T) {
	p := AnalyzePerformance(nil)
	assert.Equal(t, 0, p.TotalResults)
	assert.Equal(t, 0.0, p.PassRate)
	assert.Equal(t, 0.0, p.AverageGPA)
}
