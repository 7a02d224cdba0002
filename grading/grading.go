// Package grading maps assessment marks to letter grades and grade points.
// One boundary table is canonical for both preview and persisted grades.
package grading

import "math"

type Grade string

const (
	APlus  Grade = "A+"
	A      Grade = "A"
	AMinus Grade = "A-"
	BPlus  Grade = "B+"
	B      Grade = "B"
	BMinus Grade = "B-"
	CPlus  Grade = "C+"
	C      Grade = "C"
	D      Grade = "D"
	F      Grade = "F"
)

// boundaries is evaluated top-down, first match wins. Lower bounds are
// inclusive, so 89.999 is an A and 90.0 is an A+.
var boundaries = []struct {
	min   float64
	grade Grade
	point float64
}{
	{90, APlus, 4.0},
	{85, A, 4.0},
	{80, AMinus, 3.7},
	{75, BPlus, 3.3},
	{70, B, 3.0},
	{65, BMinus, 2.7},
	{60, CPlus, 2.3},
	{55, C, 2.0},
	{50, D, 1.0},
	{0, F, 0.0},
}

// Percentage returns marks/total*100 rounded to 2 decimals. A non-positive
// total defines the percentage as 0 rather than failing on division.
func Percentage(marksObtained, totalMarks float64) float64 {
	if totalMarks <= 0 {
		return 0
	}
	return math.Round(marksObtained/totalMarks*10000) / 100
}

// DisplayPercentage rounds to the nearest whole percent for aggregates.
func DisplayPercentage(marksObtained, totalMarks float64) int {
	return int(math.Round(Percentage(marksObtained, totalMarks)))
}

// ForMarks computes the letter grade for a raw score.
func ForMarks(marksObtained, totalMarks float64) Grade {
	return ForPercentage(Percentage(marksObtained, totalMarks))
}

// ForPercentage computes the letter grade for an already-derived percentage.
func ForPercentage(pct float64) Grade {
	for _, b := range boundaries {
		if pct >= b.min {
			return b.grade
		}
	}
	return F
}

// Point returns the grade point used for CGPA. Unknown grades count as 0,
// same as F.
func Point(g Grade) float64 {
	for _, b := range boundaries {
		if b.grade == g {
			return b.point
		}
	}
	return 0
}

// Passing reports whether g counts toward the pass rate.
func Passing(g Grade) bool { return g != F }
