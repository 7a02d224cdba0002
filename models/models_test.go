package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parseSchema(t *testing.T, model any) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

// Attendance and Result rows carry real foreign keys on student_id and
// course_id, so unknown ids fail the insert instead of creating orphan rows.
func TestLedgerRowsDeclareForeignKeys(t *testing.T) {
	for _, model := range []any{&Attendance{}, &Result{}} {
		s := parseSchema(t, model)
		for _, name := range []string{"Student", "Course"} {
			rel, ok := s.Relationships.Relations[name]
			require.True(t, ok, "%s: missing %s association", s.Name, name)
			assert.Equal(t, schema.BelongsTo, rel.Type, "%s.%s", s.Name, name)
			assert.NotNil(t, rel.ParseConstraint(), "%s.%s: no constraint", s.Name, name)
		}
	}
}

// The natural keys stay unique: one attendance row per (student, course, day),
// one result row per (student, course, assessment type, assessment name).
func TestLedgerRowsKeepUniqueNaturalKeys(t *testing.T) {
	att := parseSchema(t, &Attendance{})
	require.Contains(t, att.ParseIndexes(), "uq_attendance_key")
	assert.Len(t, att.ParseIndexes()["uq_attendance_key"].Fields, 3)

	res := parseSchema(t, &Result{})
	require.Contains(t, res.ParseIndexes(), "uq_result_key")
	assert.Len(t, res.ParseIndexes()["uq_result_key"].Fields, 4)
}
