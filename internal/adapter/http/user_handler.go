package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerloan-backend/internal/adapter/middleware"
	userDomain "peerloan-backend/internal/domain/user"
)

type UserHandler struct {
	users userDomain.Repository
	cv    *CustomValidator
}

func NewUserHandler(users userDomain.Repository, cv *CustomValidator) *UserHandler {
	return &UserHandler{users: users, cv: cv}
}

type updatePushTokenReq struct {
	PushToken string `json:"push_token" validate:"required"`
}

// UpdatePushToken registers the caller's device token, so notification
// fan-out can reach their device.
func (h *UserHandler) UpdatePushToken(c echo.Context) error {
	var req updatePushTokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if err := h.users.UpdatePushToken(c.Request().Context(), middleware.CallerID(c), req.PushToken); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"updated": true})
}
