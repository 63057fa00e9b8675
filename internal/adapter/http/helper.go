package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"peerloan-backend/internal/domain/application"
	"peerloan-backend/internal/domain/loan"
	"peerloan-backend/internal/domain/notification"
	"peerloan-backend/internal/domain/offer"
	"peerloan-backend/internal/domain/user"
	"peerloan-backend/internal/usecase/repayment"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// errJSON maps domain errors onto HTTP status codes.
func errJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, offer.ErrNotFound),
		errors.Is(err, application.ErrNotFound),
		errors.Is(err, loan.ErrNotFound),
		errors.Is(err, notification.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrAlreadyDecided),
		errors.Is(err, application.ErrInvalidTransition),
		errors.Is(err, offer.ErrNotOwner),
		errors.Is(err, repayment.ErrLoanSettled):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}
