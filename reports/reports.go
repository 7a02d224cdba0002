// Package reports derives read-only aggregates from the attendance and
// result ledgers. Nothing here mutates rows; every view is recomputed from
// the raw records on each call.
package reports

import (
	"math"
	"sort"
	"time"

	"github.com/patiponrmutl/SchoolPortal/grading"
	"github.com/patiponrmutl/SchoolPortal/models"
)

// Alert severities.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Thresholds for low-attendance alerts. Compared against the raw attendance
// ratio, not the rounded display value: 74.5% alerts even though it reads
// back as 75.
const (
	warningBelow  = 75.0
	criticalBelow = 50.0
)

type CourseAttendance struct {
	CourseID     uint `json:"course_id"`
	TotalClasses int  `json:"total_classes"`
	Attended     int  `json:"attended"`
	Absent       int  `json:"absent"`
	Excused      int  `json:"excused"`
	Percentage   int  `json:"percentage"`
}

type AttendanceReport struct {
	StudentID         uint               `json:"student_id"`
	TotalClasses      int                `json:"total_classes"`
	Attended          int                `json:"attended"`
	Absent            int                `json:"absent"`
	Excused           int                `json:"excused"`
	OverallPercentage int                `json:"overall_percentage"`
	PerCourse         []CourseAttendance `json:"per_course"`
}

// attended counts present and late. Excused rows stay in the denominator but
// count neither as attended nor as absent; that is deliberate policy, not an
// oversight.
func tally(rows []models.Attendance) (total, attended, absent, excused int) {
	for _, r := range rows {
		total++
		switch r.Status {
		case models.StatusPresent, models.StatusLate:
			attended++
		case models.StatusAbsent:
			absent++
		case models.StatusExcused:
			excused++
		}
	}
	return
}

// BuildAttendanceReport aggregates all of one student's rows. The overall
// percentage is attended/total across every course combined, not an average
// of per-course percentages. Zero rows yield 0%, never a division error.
func BuildAttendanceReport(studentID uint, rows []models.Attendance) AttendanceReport {
	rep := AttendanceReport{StudentID: studentID, PerCourse: []CourseAttendance{}}
	rep.TotalClasses, rep.Attended, rep.Absent, rep.Excused = tally(rows)
	rep.OverallPercentage = grading.DisplayPercentage(float64(rep.Attended), float64(rep.TotalClasses))

	byCourse := map[uint][]models.Attendance{}
	for _, r := range rows {
		byCourse[r.CourseID] = append(byCourse[r.CourseID], r)
	}
	for courseID, crs := range byCourse {
		ca := CourseAttendance{CourseID: courseID}
		ca.TotalClasses, ca.Attended, ca.Absent, ca.Excused = tally(crs)
		ca.Percentage = grading.DisplayPercentage(float64(ca.Attended), float64(ca.TotalClasses))
		rep.PerCourse = append(rep.PerCourse, ca)
	}
	sort.Slice(rep.PerCourse, func(i, j int) bool { return rep.PerCourse[i].CourseID < rep.PerCourse[j].CourseID })
	return rep
}

type StudentResults struct {
	StudentID    uint            `json:"student_id"`
	CGPA         float64         `json:"cgpa"`
	TotalCredits int             `json:"total_credits"`
	Results      []models.Result `json:"results"`
}

// BuildStudentResults computes the credit-weighted CGPA over all of a
// student's result rows. A course's credit hours count once per result row,
// so a course with three graded assessments weighs three times a course with
// one. That over-weighting matches the upstream behavior and is kept as is.
func BuildStudentResults(studentID uint, rows []models.Result, creditHours map[uint]int) StudentResults {
	res := StudentResults{StudentID: studentID, Results: rows}
	if res.Results == nil {
		res.Results = []models.Result{}
	}

	var weighted float64
	for _, r := range rows {
		credits := creditHours[r.CourseID]
		weighted += grading.Point(grading.Grade(r.Grade)) * float64(credits)
		res.TotalCredits += credits
	}
	if res.TotalCredits > 0 {
		res.CGPA = round2(weighted / float64(res.TotalCredits))
	}
	return res
}

type Alert struct {
	StudentID  uint   `json:"student_id"`
	CourseID   uint   `json:"course_id"`
	Percentage int    `json:"percentage"`
	Severity   string `json:"severity"`
}

// LowAttendanceAlerts scans rows inside the trailing window and reports every
// (student, course) pair whose raw attendance ratio is under 75%, critical
// under 50%, capped to the ten lowest. The Percentage field is rounded for
// display after the thresholds are applied.
func LowAttendanceAlerts(rows []models.Attendance, windowDays int, now time.Time) []Alert {
	if windowDays <= 0 {
		windowDays = 30
	}
	cutoff := now.AddDate(0, 0, -windowDays).Format("2006-01-02")

	type key struct {
		student, course uint
	}
	grouped := map[key][]models.Attendance{}
	order := []key{} // first-seen order keeps ties stable
	for _, r := range rows {
		if r.Date < cutoff {
			continue
		}
		k := key{r.StudentID, r.CourseID}
		if _, seen := grouped[k]; !seen {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], r)
	}

	type scored struct {
		alert Alert
		ratio float64
	}
	hits := []scored{}
	for _, k := range order {
		total, attended, _, _ := tally(grouped[k])
		if total == 0 {
			continue
		}
		ratio := float64(attended) / float64(total) * 100
		if ratio >= warningBelow {
			continue
		}
		sev := SeverityWarning
		if ratio < criticalBelow {
			sev = SeverityCritical
		}
		hits = append(hits, scored{
			alert: Alert{
				StudentID:  k.student,
				CourseID:   k.course,
				Percentage: grading.DisplayPercentage(float64(attended), float64(total)),
				Severity:   sev,
			},
			ratio: ratio,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].ratio < hits[j].ratio })
	if len(hits) > 10 {
		hits = hits[:10]
	}
	alerts := make([]Alert, 0, len(hits))
	for _, h := range hits {
		alerts = append(alerts, h.alert)
	}
	return alerts
}

type Performance struct {
	TotalResults      int            `json:"total_results"`
	PassRate          float64        `json:"pass_rate"` // percent
	AverageGPA        float64        `json:"average_gpa"`
	GradeDistribution map[string]int `json:"grade_distribution"`
}

// AnalyzePerformance is the system-wide snapshot over the entire result
// population: pass means any grade other than F.
func AnalyzePerformance(rows []models.Result) Performance {
	p := Performance{GradeDistribution: map[string]int{}}
	var passed int
	var points float64
	for _, r := range rows {
		p.TotalResults++
		p.GradeDistribution[r.Grade]++
		points += grading.Point(grading.Grade(r.Grade))
		if grading.Passing(grading.Grade(r.Grade)) {
			passed++
		}
	}
	if p.TotalResults > 0 {
		p.PassRate = round2(float64(passed) / float64(p.TotalResults) * 100)
		p.AverageGPA = round2(points / float64(p.TotalResults))
	}
	return p
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
