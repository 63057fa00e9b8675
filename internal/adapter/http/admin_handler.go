package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	userDomain "peerloan-backend/internal/domain/user"
	"peerloan-backend/internal/usecase/admin"
)

type AdminHandler struct {
	uc *admin.Usecase
	cv *CustomValidator
}

func NewAdminHandler(uc *admin.Usecase, cv *CustomValidator) *AdminHandler {
	return &AdminHandler{uc: uc, cv: cv}
}

func (h *AdminHandler) FreezeUser(c echo.Context) error {
	return h.setStatus(c, userDomain.StatusFrozen)
}

func (h *AdminHandler) UnfreezeUser(c echo.Context) error {
	return h.setStatus(c, userDomain.StatusActive)
}

func (h *AdminHandler) setStatus(c echo.Context, status userDomain.Status) error {
	if err := h.uc.SetStatus(c.Request().Context(), c.Param("user_id"), status); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"user_id": c.Param("user_id"), "status": string(status)})
}

func (h *AdminHandler) GetAnalytics(c echo.Context) error {
	out, err := h.uc.GetAnalytics(c.Request().Context())
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type broadcastReq struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (h *AdminHandler) Broadcast(c echo.Context) error {
	var req broadcastReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	sent, err := h.uc.Broadcast(c.Request().Context(), req.Title, req.Message)
	var bErr *admin.BroadcastError
	if errors.As(err, &bErr) {
		// partial completion: some users notified, others not; reported, not rolled back
		return c.JSON(http.StatusMultiStatus, map[string]any{
			"sent":   sent,
			"failed": len(bErr.Errors),
			"error":  bErr.Error(),
		})
	}
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"sent": sent})
}

func (h *AdminHandler) ScanIntegrity(c echo.Context) error {
	report, err := h.uc.ScanIntegrity(c.Request().Context())
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
