package application

import (
	"context"
	"fmt"
	"time"

	appDomain "peerloan-backend/internal/domain/application"
	"peerloan-backend/internal/domain/event"
	"peerloan-backend/internal/domain/offer"
	"peerloan-backend/internal/domain/uow"
	"peerloan-backend/internal/infrastructure/queue"
	"peerloan-backend/pkg/id"
)

type Usecase struct {
	offers       offer.Repository
	applications appDomain.Repository
	uow          uow.UnitOfWork
	events       queue.Queue
}

func NewUsecase(offers offer.Repository, applications appDomain.Repository, tx uow.UnitOfWork, events queue.Queue) *Usecase {
	return &Usecase{offers: offers, applications: applications, uow: tx, events: events}
}

type SubmitInput struct {
	OfferID       string `json:"offer_id"`
	BorrowerID    string `json:"borrower_id"`
	StatementPath string `json:"statement_path"`
}

type ApplicationDTO struct {
	ApplicationID string               `json:"application_id"`
	OfferID       string               `json:"offer_id"`
	BorrowerID    string               `json:"borrower_id"`
	LenderID      string               `json:"lender_id"`
	Amount        float64              `json:"amount"`
	InterestRate  float64              `json:"interest_rate"`
	Status        string               `json:"status"`
	Summary       *appDomain.AISummary `json:"ai_summary,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func toDTO(a *appDomain.LoanApplication) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID: a.ApplicationID,
		OfferID:       a.OfferID,
		BorrowerID:    a.BorrowerID,
		LenderID:      a.LenderID,
		Amount:        a.Amount,
		InterestRate:  a.InterestRate,
		Status:        string(a.Status),
		Summary:       a.Summary,
		CreatedAt:     a.CreatedAt,
	}
}

// Submit creates a pending application against an active offer and
// publishes statement.uploaded so the reconciler can score the statement.
// A slow or failed scoring run never blocks the submission itself.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	o, err := u.offers.GetByOfferID(ctx, in.OfferID)
	if err != nil {
		return nil, err
	}
	if o.Status != offer.StatusActive {
		return nil, offer.ErrInactive
	}

	a := &appDomain.LoanApplication{
		ApplicationID:   id.NewID32(),
		OfferID:         o.OfferID,
		BorrowerID:      in.BorrowerID,
		LenderID:        o.LenderID,
		Amount:          o.Amount,
		InterestRate:    o.InterestRate,
		DurationMonths:  o.DurationMonths,
		StatementPath:   in.StatementPath,
		Status:          appDomain.StatusPending,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := u.applications.Create(ctx, a); err != nil {
		return nil, err
	}

	if in.StatementPath != "" {
		ev, err := event.New(event.TypeStatementUploaded, event.StatementUploaded{
			ApplicationID: a.ApplicationID,
			Path:          in.StatementPath,
		})
		if err != nil {
			return nil, err
		}
		if err := u.events.Enqueue(ctx, ev); err != nil {
			return nil, fmt.Errorf("application %s created but statement event not published: %w", a.ApplicationID, err)
		}
	}
	return toDTO(a), nil
}

// Approve flips pending→approved under a locked row. Any other current
// state is rejected, so a redundant approve cannot re-fire contract
// creation downstream. The event carries before/after status for the
// reconciler's own transition guard.
func (u *Usecase) Approve(ctx context.Context, applicationID, lenderID string) (*ApplicationDTO, error) {
	return u.decide(ctx, applicationID, lenderID, appDomain.StatusApproved)
}

func (u *Usecase) Reject(ctx context.Context, applicationID, lenderID string) (*ApplicationDTO, error) {
	return u.decide(ctx, applicationID, lenderID, appDomain.StatusRejected)
}

func (u *Usecase) decide(ctx context.Context, applicationID, lenderID string, to appDomain.Status) (*ApplicationDTO, error) {
	var dto *ApplicationDTO
	var old appDomain.Status

	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		if a.LenderID != lenderID {
			return appDomain.ErrNotFound
		}
		if a.Status != appDomain.StatusPending {
			return appDomain.ErrAlreadyDecided
		}
		old = a.Status
		a.Status = to
		a.StatusUpdatedAt = time.Now().UTC()
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if to == appDomain.StatusApproved {
		ev, err := event.New(event.TypeApplicationApproved, event.ApplicationApproved{
			ApplicationID: applicationID,
			OldStatus:     string(old),
			NewStatus:     string(to),
		})
		if err != nil {
			return nil, err
		}
		if err := u.events.Enqueue(ctx, ev); err != nil {
			return nil, fmt.Errorf("application %s approved but event not published: %w", applicationID, err)
		}
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.applications.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID string) ([]ApplicationDTO, error) {
	apps, err := u.applications.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i]))
	}
	return out, nil
}

func (u *Usecase) ListByLender(ctx context.Context, lenderID string) ([]ApplicationDTO, error) {
	apps, err := u.applications.ListByLenderID(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i]))
	}
	return out, nil
}
