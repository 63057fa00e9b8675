package offer

import (
	"context"
	"errors"
	"testing"

	offerDomain "peerloan-backend/internal/domain/offer"
)

type repoStub struct {
	created []offerDomain.LoanOffer
	saved   []offerDomain.LoanOffer
	byID    map[string]*offerDomain.LoanOffer
	active  []offerDomain.LoanOffer
}

func (s *repoStub) Create(_ context.Context, o *offerDomain.LoanOffer) error {
	s.created = append(s.created, *o)
	return nil
}

func (s *repoStub) GetByOfferID(_ context.Context, offerID string) (*offerDomain.LoanOffer, error) {
	o, ok := s.byID[offerID]
	if !ok {
		return nil, offerDomain.ErrNotFound
	}
	return o, nil
}

func (s *repoStub) ListActive(context.Context) ([]offerDomain.LoanOffer, error) {
	return s.active, nil
}

func (s *repoStub) Save(_ context.Context, o *offerDomain.LoanOffer) error {
	s.saved = append(s.saved, *o)
	return nil
}

func TestCreate(t *testing.T) {
	repo := &repoStub{}
	uc := NewUsecase(repo)

	dto, err := uc.Create(context.Background(), CreateInput{
		LenderID:       "lender1",
		Amount:         5000,
		InterestRate:   0.10,
		DurationMonths: 12,
		Conditions:     "repay within a year",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(dto.OfferID) != 32 {
		t.Fatalf("offer id = %q", dto.OfferID)
	}
	if dto.Status != string(offerDomain.StatusActive) {
		t.Fatalf("status = %s", dto.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created = %d", len(repo.created))
	}
}

func TestCreate_InvalidTerms(t *testing.T) {
	uc := NewUsecase(&repoStub{})
	tests := []struct {
		name string
		in   CreateInput
	}{
		{"zero amount", CreateInput{LenderID: "l", Amount: 0, InterestRate: 0.1, DurationMonths: 12}},
		{"negative rate", CreateInput{LenderID: "l", Amount: 100, InterestRate: -0.1, DurationMonths: 12}},
		{"zero duration", CreateInput{LenderID: "l", Amount: 100, InterestRate: 0.1, DurationMonths: 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Create(context.Background(), tc.in); err == nil {
				t.Fatal("want error")
			}
		})
	}
}

func TestDeactivate(t *testing.T) {
	o := &offerDomain.LoanOffer{OfferID: "o1", LenderID: "lender1", Status: offerDomain.StatusActive}
	repo := &repoStub{byID: map[string]*offerDomain.LoanOffer{"o1": o}}
	uc := NewUsecase(repo)

	dto, err := uc.Deactivate(context.Background(), "o1", "lender1")
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if dto.Status != string(offerDomain.StatusInactive) {
		t.Fatalf("status = %s", dto.Status)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d", len(repo.saved))
	}
}

func TestDeactivate_NotOwner(t *testing.T) {
	o := &offerDomain.LoanOffer{OfferID: "o1", LenderID: "lender1", Status: offerDomain.StatusActive}
	repo := &repoStub{byID: map[string]*offerDomain.LoanOffer{"o1": o}}
	uc := NewUsecase(repo)

	_, err := uc.Deactivate(context.Background(), "o1", "intruder")
	if !errors.Is(err, offerDomain.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestDeactivate_AlreadyInactiveIsIdempotent(t *testing.T) {
	o := &offerDomain.LoanOffer{OfferID: "o1", LenderID: "lender1", Status: offerDomain.StatusInactive}
	repo := &repoStub{byID: map[string]*offerDomain.LoanOffer{"o1": o}}
	uc := NewUsecase(repo)

	dto, err := uc.Deactivate(context.Background(), "o1", "lender1")
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if dto.Status != string(offerDomain.StatusInactive) {
		t.Fatalf("status = %s", dto.Status)
	}
	if len(repo.saved) != 0 {
		t.Fatal("no write when already inactive")
	}
}
