package repayment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"peerloan-backend/internal/domain/event"
	loanDomain "peerloan-backend/internal/domain/loan"
	repayDomain "peerloan-backend/internal/domain/repayment"
	"peerloan-backend/internal/domain/uow"
	"peerloan-backend/internal/infrastructure/queue"
	commissionUC "peerloan-backend/internal/usecase/commission"
	"peerloan-backend/pkg/id"
)

var (
	ErrLoanSettled   = errors.New("loan is already settled")
	ErrInvalidAmount = errors.New("repayment amount must be positive")
)

// Usecase covers both sides of the repayment flow: the API call that
// appends a repayment record and publishes the event, and the reconciler
// handler that advances the loan balance off that event.
type Usecase struct {
	loans      loanDomain.Repository
	repayments repayDomain.Repository
	calculator *commissionUC.Calculator
	uow        uow.UnitOfWork
	events     queue.Queue
}

func NewUsecase(loans loanDomain.Repository, repayments repayDomain.Repository, calculator *commissionUC.Calculator, tx uow.UnitOfWork, events queue.Queue) *Usecase {
	return &Usecase{loans: loans, repayments: repayments, calculator: calculator, uow: tx, events: events}
}

type RecordInput struct {
	LoanID     string  `json:"loan_id"`
	BorrowerID string  `json:"borrower_id"`
	Amount     float64 `json:"amount"`
}

type RepaymentDTO struct {
	RepaymentID string    `json:"repayment_id"`
	LoanID      string    `json:"loan_id"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record appends one repayment against an active loan and publishes
// repayment.created. The balance itself moves only in the reconciler.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*RepaymentDTO, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	l, err := u.loans.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		return nil, err
	}
	if l.Status == loanDomain.StatusSettled {
		return nil, ErrLoanSettled
	}

	rec := &repayDomain.Repayment{
		RepaymentID: id.NewID32(),
		LoanID:      l.LoanID,
		BorrowerID:  in.BorrowerID,
		Amount:      in.Amount,
		Status:      repayDomain.StatusPaid,
	}
	if err := u.repayments.Create(ctx, rec); err != nil {
		return nil, err
	}

	ev, err := event.New(event.TypeRepaymentCreated, event.RepaymentCreated{
		RepaymentID: rec.RepaymentID,
		LoanID:      rec.LoanID,
		Amount:      rec.Amount,
	})
	if err != nil {
		return nil, err
	}
	if err := u.events.Enqueue(ctx, ev); err != nil {
		return nil, fmt.Errorf("repayment %s recorded but event not published: %w", rec.RepaymentID, err)
	}

	return &RepaymentDTO{
		RepaymentID: rec.RepaymentID,
		LoanID:      rec.LoanID,
		Amount:      rec.Amount,
		Status:      string(rec.Status),
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// HandleCreated is the reconciler handler for repayment.created.
//
// The applied flip and the balance increment commit in one transaction:
// if the increment fails, the flip rolls back and redelivery retries the
// whole step. The settlement transition is a compare-and-set on "still
// active". Two concurrent deliveries for the same loan may both see
// paid >= total, but only the CAS winner invokes the commission
// calculator.
func (u *Usecase) HandleCreated(ctx context.Context, ev event.RepaymentCreated) error {
	now := time.Now().UTC()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		applied, err := r.Repayments.MarkApplied(ctx, ev.RepaymentID)
		if err != nil {
			return err
		}
		if !applied {
			// redelivered event; the balance already moved
			return nil
		}
		return r.Loans.AddPayment(ctx, ev.LoanID, ev.Amount, now)
	})
	if err != nil {
		return err
	}

	// re-check settlement on every delivery, applied or not, so a crash
	// between the balance commit and the CAS converges on redelivery
	l, err := u.loans.GetByLoanID(ctx, ev.LoanID)
	if err != nil {
		return err
	}
	if l.PaidAmount < l.TotalAmount {
		return nil
	}

	won, err := u.loans.SettleIfActive(ctx, ev.LoanID, now)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	l.Status = loanDomain.StatusSettled
	l.SettledAt = &now
	if _, err := u.calculator.ForSettledLoan(ctx, l); err != nil {
		return fmt.Errorf("loan %s settled but commission failed: %w", l.LoanID, err)
	}
	return nil
}
