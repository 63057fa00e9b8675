package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerloan-backend/internal/adapter/middleware"
	"peerloan-backend/internal/usecase/offer"
)

type OfferHandler struct {
	uc *offer.Usecase
	cv *CustomValidator
}

func NewOfferHandler(uc *offer.Usecase, cv *CustomValidator) *OfferHandler {
	return &OfferHandler{uc: uc, cv: cv}
}

type createOfferReq struct {
	Amount         float64 `json:"amount" validate:"required,gt=0,dec2"`
	InterestRate   float64 `json:"interest_rate" validate:"gte=0,lte=1"`
	DurationMonths int     `json:"duration_months" validate:"required,gte=1,lte=120"`
	Conditions     string  `json:"conditions"`
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.cv.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Create(c.Request().Context(), offer.CreateInput{
		LenderID:       middleware.CallerID(c),
		Amount:         req.Amount,
		InterestRate:   req.InterestRate,
		DurationMonths: req.DurationMonths,
		Conditions:     req.Conditions,
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *OfferHandler) ListOffers(c echo.Context) error {
	out, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OfferHandler) DeactivateOffer(c echo.Context) error {
	dto, err := h.uc.Deactivate(c.Request().Context(), c.Param("offer_id"), middleware.CallerID(c))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
