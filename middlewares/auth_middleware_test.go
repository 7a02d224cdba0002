package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTest(t *testing.T, role string, sub uint, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"name": "Test User",
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func doRequest(token string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	h := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireAuthValidToken(t *testing.T) {
	tok := signTest(t, "teacher", 7, time.Hour)
	rec := doRequest(tok, RequireAuth(testSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"teacher"`)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec := doRequest("", RequireAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	tok := signTest(t, "admin", 1, -time.Minute)
	rec := doRequest(tok, RequireAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	claims := jwt.MapClaims{"sub": 1, "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	rec := doRequest(tok, RequireAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	teacherTok := signTest(t, "teacher", 7, time.Hour)

	rec := doRequest(teacherTok, RequireAuth(testSecret), RequireRole("teacher", "admin"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(teacherTok, RequireAuth(testSecret), RequireRole("admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestParseClaimsRoundTrip(t *testing.T) {
	tok := signTest(t, "student", 42, time.Hour)
	claims, err := ParseClaims(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.Sub)
	assert.Equal(t, "student", claims.Role)
}
