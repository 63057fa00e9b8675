package contract

import (
	"context"
	"fmt"
	"log"

	appDomain "peerloan-backend/internal/domain/application"
	"peerloan-backend/internal/domain/event"
	loanDomain "peerloan-backend/internal/domain/loan"
	"peerloan-backend/internal/domain/notification"
)

type Notifier interface {
	Send(ctx context.Context, userID, title, message string, t notification.Type) error
}

// Usecase is the reconciler handler for application.approved: it creates
// the loan contract exactly once per application.
type Usecase struct {
	applications appDomain.Repository
	loans        loanDomain.Repository
	notifier     Notifier
}

func NewUsecase(applications appDomain.Repository, loans loanDomain.Repository, notifier Notifier) *Usecase {
	return &Usecase{applications: applications, loans: loans, notifier: notifier}
}

// HandleApproved creates the contract keyed contract_<applicationId>.
// Only a genuine pending→approved transition acts; anything else,
// including a redelivered event, is a no-op. A contract-write failure is
// surfaced, not retried; the approved-application/no-loan gap stays
// visible to the integrity scan.
func (u *Usecase) HandleApproved(ctx context.Context, ev event.ApplicationApproved) error {
	if ev.OldStatus == string(appDomain.StatusApproved) || ev.NewStatus != string(appDomain.StatusApproved) {
		return nil
	}

	a, err := u.applications.GetByApplicationID(ctx, ev.ApplicationID)
	if err != nil {
		return err
	}
	if a.Status != appDomain.StatusApproved {
		// status moved again since the event fired; the store wins
		return nil
	}

	l := &loanDomain.Loan{
		LoanID:         loanDomain.ContractID(a.ApplicationID),
		ApplicationID:  a.ApplicationID,
		BorrowerID:     a.BorrowerID,
		LenderID:       a.LenderID,
		Principal:      a.Amount,
		InterestRate:   a.InterestRate,
		DurationMonths: a.DurationMonths,
		TotalAmount:    loanDomain.TotalAmountFor(a.Amount, a.InterestRate),
		Status:         loanDomain.StatusActive,
	}
	created, err := u.loans.CreateIfAbsent(ctx, l)
	if err != nil {
		return fmt.Errorf("contract for application %s not created: %w", a.ApplicationID, err)
	}
	if !created {
		// redelivery; the contract and its notifications already exist
		return nil
	}

	if err := u.notifier.Send(ctx, a.BorrowerID,
		"Loan Approved!",
		"Your loan application has been approved. Contract generated.",
		notification.TypeLoanApproval); err != nil {
		log.Printf("contract: borrower %s notification failed: %v", a.BorrowerID, err)
	}
	if err := u.notifier.Send(ctx, a.LenderID,
		"Loan Contract Generated",
		"Contract has been generated for the approved loan.",
		notification.TypeContractGenerated); err != nil {
		log.Printf("contract: lender %s notification failed: %v", a.LenderID, err)
	}
	return nil
}
