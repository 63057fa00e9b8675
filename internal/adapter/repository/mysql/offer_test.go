package mysql

import (
	"context"
	"errors"
	"testing"

	offerDomain "peerloan-backend/internal/domain/offer"
	"peerloan-backend/pkg/id"
)

func makeOffer(lenderID string) *offerDomain.LoanOffer {
	return &offerDomain.LoanOffer{
		OfferID:        id.NewID32(),
		LenderID:       lenderID,
		Amount:         5000,
		InterestRate:   0.10,
		DurationMonths: 12,
		Status:         offerDomain.StatusActive,
	}
}

func TestOfferRepository_CreateAndGet(t *testing.T) {
	repo := NewOfferRepository(openTestDB(t))
	ctx := context.Background()

	o := makeOffer("lender1")
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByOfferID(ctx, o.OfferID)
	if err != nil {
		t.Fatalf("GetByOfferID: %v", err)
	}
	if got.LenderID != "lender1" || got.Amount != 5000 || got.Status != offerDomain.StatusActive {
		t.Fatalf("got = %+v", got)
	}
}

func TestOfferRepository_Get_NotFound(t *testing.T) {
	repo := NewOfferRepository(openTestDB(t))

	_, err := repo.GetByOfferID(context.Background(), "nope")
	if !errors.Is(err, offerDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestOfferRepository_ListActive_ExcludesInactive(t *testing.T) {
	repo := NewOfferRepository(openTestDB(t))
	ctx := context.Background()

	active := makeOffer("lender1")
	if err := repo.Create(ctx, active); err != nil {
		t.Fatalf("Create: %v", err)
	}
	withdrawn := makeOffer("lender2")
	if err := repo.Create(ctx, withdrawn); err != nil {
		t.Fatalf("Create: %v", err)
	}
	withdrawn.Status = offerDomain.StatusInactive
	if err := repo.Save(ctx, withdrawn); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(got) != 1 || got[0].OfferID != active.OfferID {
		t.Fatalf("ListActive = %+v, want only %s", got, active.OfferID)
	}
}
