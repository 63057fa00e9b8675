package offer

import (
	"context"
	"errors"
	"time"

	offerDomain "peerloan-backend/internal/domain/offer"
	"peerloan-backend/pkg/id"
)

type Usecase struct{ repo offerDomain.Repository }

func NewUsecase(r offerDomain.Repository) *Usecase { return &Usecase{repo: r} }

type CreateInput struct {
	LenderID       string  `json:"lender_id"`
	Amount         float64 `json:"amount"`
	InterestRate   float64 `json:"interest_rate"`
	DurationMonths int     `json:"duration_months"`
	Conditions     string  `json:"conditions"`
}

type OfferDTO struct {
	OfferID        string    `json:"offer_id"`
	LenderID       string    `json:"lender_id"`
	Amount         float64   `json:"amount"`
	InterestRate   float64   `json:"interest_rate"`
	DurationMonths int       `json:"duration_months"`
	Conditions     string    `json:"conditions"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDTO(o *offerDomain.LoanOffer) *OfferDTO {
	return &OfferDTO{
		OfferID:        o.OfferID,
		LenderID:       o.LenderID,
		Amount:         o.Amount,
		InterestRate:   o.InterestRate,
		DurationMonths: o.DurationMonths,
		Conditions:     o.Conditions,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
	}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*OfferDTO, error) {
	if in.Amount <= 0 || in.InterestRate < 0 || in.DurationMonths <= 0 {
		return nil, errors.New("invalid offer terms")
	}
	o := &offerDomain.LoanOffer{
		OfferID:        id.NewID32(),
		LenderID:       in.LenderID,
		Amount:         in.Amount,
		InterestRate:   in.InterestRate,
		DurationMonths: in.DurationMonths,
		Conditions:     in.Conditions,
		Status:         offerDomain.StatusActive,
	}
	if err := u.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return toDTO(o), nil
}

func (u *Usecase) ListActive(ctx context.Context) ([]OfferDTO, error) {
	offers, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]OfferDTO, 0, len(offers))
	for i := range offers {
		out = append(out, *toDTO(&offers[i]))
	}
	return out, nil
}

// Deactivate withdraws an offer; only its lender may do so.
func (u *Usecase) Deactivate(ctx context.Context, offerID, lenderID string) (*OfferDTO, error) {
	o, err := u.repo.GetByOfferID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if o.LenderID != lenderID {
		return nil, offerDomain.ErrNotOwner
	}
	if o.Status == offerDomain.StatusInactive {
		return toDTO(o), nil
	}
	o.Status = offerDomain.StatusInactive
	if err := u.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	return toDTO(o), nil
}
