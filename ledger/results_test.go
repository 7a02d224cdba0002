package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patiponrmutl/SchoolPortal/models"
)

func newResultFixture() (*ResultLedger, *MemResultStore, *MemNotificationStore, *recorder) {
	store := NewMemResultStore()
	notes := NewMemNotificationStore()
	rec := &recorder{}
	return NewResultLedger(store, notes, rec, nil), store, notes, rec
}

func TestUploadDerivesGrade(t *testing.T) {
	l, store, _, _ := newResultFixture()

	sum, err := l.Upload(UploadRequest{
		CourseID:       1,
		UploadedBy:     7,
		AssessmentType: "Midterm",
		TotalMarks:     100,
		Records:        []ScoreRecord{{StudentID: 1, MarksObtained: 82}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.CreatedCount)

	rows := store.All()
	require.Len(t, rows, 1)
	assert.Equal(t, "A-", rows[0].Grade)
	assert.Equal(t, 82.0, rows[0].Percentage)
	assert.Equal(t, uint(7), rows[0].UploadedBy)
}

func TestUploadIdempotent(t *testing.T) {
	l, store, _, _ := newResultFixture()
	req := UploadRequest{
		CourseID:       2,
		AssessmentType: "Quiz",
		AssessmentName: "Quiz 1",
		TotalMarks:     20,
		Records: []ScoreRecord{
			{StudentID: 1, MarksObtained: 18},
			{StudentID: 2, MarksObtained: 11},
			{StudentID: 3, MarksObtained: 7},
		},
	}

	first, err := l.Upload(req)
	require.NoError(t, err)
	assert.Equal(t, 3, first.CreatedCount)
	assert.Equal(t, 0, first.UpdatedCount)

	second, err := l.Upload(req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.CreatedCount)
	assert.Equal(t, 3, second.UpdatedCount)
	assert.Len(t, store.All(), 3)
}

func TestReuploadCorrectsTypo(t *testing.T) {
	l, store, _, _ := newResultFixture()

	_, err := l.Upload(UploadRequest{CourseID: 1, AssessmentType: "Final", TotalMarks: 100,
		Records: []ScoreRecord{{StudentID: 5, MarksObtained: 48}}})
	require.NoError(t, err)
	assert.Equal(t, "F", store.All()[0].Grade)

	_, err = l.Upload(UploadRequest{CourseID: 1, AssessmentType: "Final", TotalMarks: 100,
		Records: []ScoreRecord{{StudentID: 5, MarksObtained: 84}}})
	require.NoError(t, err)

	rows := store.All()
	require.Len(t, rows, 1)
	assert.Equal(t, "A-", rows[0].Grade)
	assert.Equal(t, 84.0, rows[0].MarksObtained)
}

func TestAssessmentNameSeparatesInstances(t *testing.T) {
	l, store, _, _ := newResultFixture()

	for _, name := range []string{"Quiz 1", "Quiz 2"} {
		_, err := l.Upload(UploadRequest{CourseID: 1, AssessmentType: "Quiz", AssessmentName: name,
			TotalMarks: 10, Records: []ScoreRecord{{StudentID: 1, MarksObtained: 9}}})
		require.NoError(t, err)
	}
	assert.Len(t, store.All(), 2)
}

func TestUploadValidation(t *testing.T) {
	l, store, _, _ := newResultFixture()

	_, err := l.Upload(UploadRequest{CourseID: 1, AssessmentType: "Viva", TotalMarks: 10,
		Records: []ScoreRecord{{StudentID: 1, MarksObtained: 5}}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = l.Upload(UploadRequest{CourseID: 1, AssessmentType: "Quiz", TotalMarks: 0,
		Records: []ScoreRecord{{StudentID: 1, MarksObtained: 5}}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = l.Upload(UploadRequest{CourseID: 1, AssessmentType: "Quiz", TotalMarks: 10,
		Records: []ScoreRecord{{StudentID: 1, MarksObtained: -1}}})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, store.All())
}

func TestUploadPartialFailureReportsCounts(t *testing.T) {
	l, store, _, _ := newResultFixture()
	store.KnownStudents = map[uint]bool{1: true}

	sum, err := l.Upload(UploadRequest{CourseID: 1, AssessmentType: "Lab", TotalMarks: 50,
		Records: []ScoreRecord{
			{StudentID: 1, MarksObtained: 40},
			{StudentID: 99, MarksObtained: 45},
		}})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.CreatedCount)
	assert.Equal(t, 1, sum.Failed)
	assert.Len(t, store.All(), 1)
}

func TestUploadFanOut(t *testing.T) {
	l, _, notes, push := newResultFixture()

	_, err := l.Upload(UploadRequest{CourseID: 3, AssessmentType: "Project", TotalMarks: 100,
		Records: []ScoreRecord{
			{StudentID: 1, MarksObtained: 70},
			{StudentID: 2, MarksObtained: 55},
		}})
	require.NoError(t, err)

	assert.Equal(t, 2, push.count(EventResultsUpdated))
	assert.Equal(t, 1, push.count(EventResultsUploaded))

	adminRows := 0
	for _, n := range notes.Rows {
		if n.Role == models.RoleAdmin && n.Event == EventResultsUploaded {
			adminRows++
		}
	}
	assert.Equal(t, 1, adminRows)
}

func TestUpsertOne(t *testing.T) {
	l, store, _, push := newResultFixture()

	created, err := l.UpsertOne(UploadRequest{CourseID: 1, AssessmentType: "Midterm", TotalMarks: 100,
		Records: []ScoreRecord{{StudentID: 1, MarksObtained: 66}}})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = l.UpsertOne(UploadRequest{CourseID: 1, AssessmentType: "Midterm", TotalMarks: 100,
		Records: []ScoreRecord{{StudentID: 1, MarksObtained: 68, Remarks: "regrade"}}})
	require.NoError(t, err)
	assert.False(t, created)

	rows := store.All()
	require.Len(t, rows, 1)
	assert.Equal(t, 68.0, rows[0].MarksObtained)
	assert.Equal(t, "regrade", rows[0].Remarks)
	assert.Equal(t, 2, push.count(EventResultsUpdated))
}
