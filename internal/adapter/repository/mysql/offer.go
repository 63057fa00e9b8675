package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	offerDomain "peerloan-backend/internal/domain/offer"
)

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) Create(ctx context.Context, o *offerDomain.LoanOffer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) GetByOfferID(ctx context.Context, offerID string) (*offerDomain.LoanOffer, error) {
	var out offerDomain.LoanOffer
	res := r.db.WithContext(ctx).Where("offer_id = ?", offerID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, offerDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *OfferRepository) ListActive(ctx context.Context) ([]offerDomain.LoanOffer, error) {
	var out []offerDomain.LoanOffer
	res := r.db.WithContext(ctx).
		Where("status = ?", offerDomain.StatusActive).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *OfferRepository) Save(ctx context.Context, o *offerDomain.LoanOffer) error {
	return r.db.WithContext(ctx).Save(o).Error
}
