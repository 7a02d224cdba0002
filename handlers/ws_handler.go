package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/SchoolPortal/middlewares"
	"github.com/patiponrmutl/SchoolPortal/realtime"
)

type WSHandler struct {
	Hub       *realtime.Hub
	JWTSecret string
}

func NewWSHandler(hub *realtime.Hub, secret string) *WSHandler {
	return &WSHandler{Hub: hub, JWTSecret: secret}
}

// GET /ws?token=...
// Browsers cannot set Authorization headers on WebSocket upgrades, so the
// token rides in the query string.
func (h *WSHandler) Serve(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "MISSING_TOKEN"})
	}
	claims, err := middlewares.ParseClaims(h.JWTSecret, token)
	if err != nil {
		return err
	}
	return h.Hub.Serve(c.Response(), c.Request(), claims.Role, claims.Sub)
}
