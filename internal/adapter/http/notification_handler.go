package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerloan-backend/internal/adapter/middleware"
	notifDomain "peerloan-backend/internal/domain/notification"
)

type NotificationHandler struct {
	notifications notifDomain.Repository
}

func NewNotificationHandler(notifications notifDomain.Repository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListNotifications returns the caller's own notifications.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	out, err := h.notifications.ListByUserID(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.notifications.MarkRead(c.Request().Context(), c.Param("notification_id")); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"read": true})
}
