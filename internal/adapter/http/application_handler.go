package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerloan-backend/internal/adapter/middleware"
	"peerloan-backend/internal/usecase/application"
)

type ApplicationHandler struct {
	uc *application.Usecase
	cv *CustomValidator
}

func NewApplicationHandler(uc *application.Usecase, cv *CustomValidator) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, cv: cv}
}

type submitApplicationReq struct {
	OfferID       string `json:"offer_id" validate:"required,hex32"`
	StatementPath string `json:"statement_path"`
}

func (h *ApplicationHandler) SubmitApplication(c echo.Context) error {
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Submit(c.Request().Context(), application.SubmitInput{
		OfferID:       req.OfferID,
		BorrowerID:    middleware.CallerID(c),
		StatementPath: req.StatementPath,
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) ListApplications(c echo.Context) error {
	ctx := c.Request().Context()
	if borrowerID := c.QueryParam("borrower_id"); borrowerID != "" {
		out, err := h.uc.ListByBorrower(ctx, borrowerID)
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
	if lenderID := c.QueryParam("lender_id"); lenderID != "" {
		out, err := h.uc.ListByLender(ctx, lenderID)
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "borrower_id or lender_id query param required"})
}

func (h *ApplicationHandler) ApproveApplication(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("application_id"), middleware.CallerID(c))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) RejectApplication(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("application_id"), middleware.CallerID(c))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
