package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patiponrmutl/SchoolPortal/models"
)

func markReadStatus(t *testing.T, n models.Notification, role string, userID uint) int {
	t.Helper()
	err := markReadError(n, role, userID)
	if err == nil {
		return http.StatusOK
	}
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

func TestMarkReadOwnership(t *testing.T) {
	own := models.Notification{Role: models.RoleStudent, UserID: 7}
	assert.Equal(t, http.StatusOK, markReadStatus(t, own, models.RoleStudent, 7))

	// another student's row
	assert.Equal(t, http.StatusForbidden, markReadStatus(t, own, models.RoleStudent, 8))

	// same id, different role
	assert.Equal(t, http.StatusForbidden, markReadStatus(t, own, models.RoleTeacher, 7))
}

// A role-wide row has one shared read flag; any member marking it read would
// hide it from the rest of the role, so those rows are list-only.
func TestMarkReadRejectsRoleWideRows(t *testing.T) {
	roleWide := models.Notification{Role: models.RoleStudent, UserID: 0}
	assert.Equal(t, http.StatusBadRequest, markReadStatus(t, roleWide, models.RoleStudent, 7))

	// members outside the role are still a plain 403
	assert.Equal(t, http.StatusForbidden, markReadStatus(t, roleWide, models.RoleTeacher, 7))
}
