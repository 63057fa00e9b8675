package repayment

import "context"

type Repository interface {
	Create(ctx context.Context, r *Repayment) error
	GetByRepaymentID(ctx context.Context, repaymentID string) (*Repayment, error)
	ListByLoanID(ctx context.Context, loanID string) ([]Repayment, error)
	// MarkApplied flips applied false→true as a compare-and-set, so a
	// redelivered creation event cannot advance the loan balance twice.
	// Returns true only for the caller that won the flip.
	MarkApplied(ctx context.Context, repaymentID string) (bool, error)
}
