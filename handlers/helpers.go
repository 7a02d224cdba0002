package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SchoolPortal/ledger"
)

// shared request validator
var validate = validator.New()

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// pageParams reads ?page=&limit= with sane bounds.
func pageParams(c echo.Context) (page, limit, offset int) {
	page = atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	limit = atoiOr(c.QueryParam("limit"), 20)
	if limit < 1 || limit > 200 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

func pageMeta(page, limit int, total int64) map[string]any {
	return map[string]any{"page": page, "limit": limit, "total": total}
}

func currentUserID(c echo.Context) uint {
	id, _ := c.Get("user_id").(uint)
	return id
}

func currentRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// httpError is the single boundary translator: known error classes become
// structured client responses, everything else is a generic 500 logged
// server-side only.
func httpError(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var valErr validator.ValidationErrors
	switch {
	case errors.Is(err, ledger.ErrValidation), errors.As(err, &valErr):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "detail": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	case errors.Is(err, ledger.ErrDuplicate), errors.Is(err, gorm.ErrDuplicatedKey), isPgCode(err, "23505"):
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "DUPLICATE_KEY"})
	case errors.Is(err, ledger.ErrInvalidRef), errors.Is(err, gorm.ErrForeignKeyViolated), isPgCode(err, "23503"):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_REFERENCE"})
	}
	c.Logger().Error(err)
	return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "INTERNAL_ERROR"})
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func badRequest(code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": code})
}

func notFound() error {
	return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
}
