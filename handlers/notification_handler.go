package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/SchoolPortal/database"
	"github.com/patiponrmutl/SchoolPortal/ledger"
	"github.com/patiponrmutl/SchoolPortal/models"
)

// NotificationHandler serves the durable side of the push channel: clients
// poll here for whatever they missed while disconnected.
type NotificationHandler struct {
	Push ledger.Notifier
}

func NewNotificationHandler(push ledger.Notifier) *NotificationHandler {
	if push == nil {
		push = ledger.NopNotifier{}
	}
	return &NotificationHandler{Push: push}
}

// GET /api/notifications?unread=true
// Own scope only: rows addressed to (role, my id) or role-wide (user_id 0).
func (h *NotificationHandler) List(c echo.Context) error {
	page, limit, offset := pageParams(c)
	tx := database.DB.Model(&models.Notification{}).
		Where("role = ? AND (user_id = ? OR user_id = 0)", currentRole(c), currentUserID(c))
	if c.QueryParam("unread") == "true" {
		tx = tx.Where("read = false")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return httpError(c, err)
	}
	var rows []models.Notification
	if err := tx.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": rows, "meta": pageMeta(page, limit, total)})
}

// markReadError reports why the caller may not mark n read. Role-wide rows
// (user_id 0) carry one shared read flag, so marking one read would hide it
// from everyone else in the role; they stay list-only.
func markReadError(n models.Notification, role string, userID uint) error {
	if n.Role != role || (n.UserID != 0 && n.UserID != userID) {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	if n.UserID == 0 {
		return badRequest("ROLE_WIDE_READ_ONLY")
	}
	return nil
}

// PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	var n models.Notification
	if err := database.DB.First(&n, atoiOr(c.Param("id"), 0)).Error; err != nil {
		return httpError(c, err)
	}
	if err := markReadError(n, currentRole(c), currentUserID(c)); err != nil {
		return err
	}
	n.Read = true
	if err := database.DB.Save(&n).Error; err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

type NotificationReq struct {
	Role    string `json:"role"    validate:"required"`
	UserID  uint   `json:"user_id"` // 0 = everyone in the role
	Title   string `json:"title"   validate:"required"`
	Message string `json:"message" validate:"required"`
}

// POST /api/notifications
// Manual announcement from an admin; persisted and pushed.
func (h *NotificationHandler) Create(c echo.Context) error {
	var req NotificationReq
	if err := c.Bind(&req); err != nil {
		return badRequest("INVALID_PAYLOAD")
	}
	if err := validate.Struct(req); err != nil {
		return httpError(c, err)
	}
	if !models.ValidRole(req.Role) {
		return badRequest("UNKNOWN_ROLE")
	}

	n := models.Notification{
		Role: req.Role, UserID: req.UserID,
		Event: ledger.EventNotificationNew, Title: req.Title, Message: req.Message,
	}
	if err := database.DB.Create(&n).Error; err != nil {
		return httpError(c, err)
	}

	payload := map[string]any{
		"event_id": uuid.NewString(),
		"id":       n.ID,
		"title":    n.Title,
		"message":  n.Message,
	}
	if req.UserID != 0 {
		h.Push.ToUser(req.Role, req.UserID, ledger.EventNotificationNew, payload)
	} else {
		h.Push.ToRole(req.Role, ledger.EventNotificationNew, payload)
	}
	return c.JSON(http.StatusCreated, n)
}
