package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerloan-backend/internal/adapter/middleware"
	loanDomain "peerloan-backend/internal/domain/loan"
	"peerloan-backend/internal/usecase/repayment"
)

type LoanHandler struct {
	loans loanDomain.Repository
	repay *repayment.Usecase
	cv    *CustomValidator
}

func NewLoanHandler(loans loanDomain.Repository, repay *repayment.Usecase, cv *CustomValidator) *LoanHandler {
	return &LoanHandler{loans: loans, repay: repay, cv: cv}
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	l, err := h.loans.GetByLoanID(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	ctx := c.Request().Context()
	if borrowerID := c.QueryParam("borrower_id"); borrowerID != "" {
		out, err := h.loans.ListByBorrowerID(ctx, borrowerID)
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
	if lenderID := c.QueryParam("lender_id"); lenderID != "" {
		out, err := h.loans.ListByLenderID(ctx, lenderID)
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "borrower_id or lender_id query param required"})
}

type recordRepaymentReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *LoanHandler) RecordRepayment(c echo.Context) error {
	var req recordRepaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.repay.Record(c.Request().Context(), repayment.RecordInput{
		LoanID:     c.Param("loan_id"),
		BorrowerID: middleware.CallerID(c),
		Amount:     req.Amount,
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
