package offer

import "context"

type Repository interface {
	Create(ctx context.Context, o *LoanOffer) error
	GetByOfferID(ctx context.Context, offerID string) (*LoanOffer, error)
	ListActive(ctx context.Context) ([]LoanOffer, error)
	Save(ctx context.Context, o *LoanOffer) error
}
