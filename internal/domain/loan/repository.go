package loan

import (
	"context"
	"time"
)

type Repository interface {
	// CreateIfAbsent inserts the contract unless one with the same loan_id
	// already exists. Returns true when this call inserted the row.
	CreateIfAbsent(ctx context.Context, l *Loan) (bool, error)
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]Loan, error)
	ListByLenderID(ctx context.Context, lenderID string) ([]Loan, error)

	// AddPayment increments paid_amount by amount in a single UPDATE
	// expression and stamps last_payment_at. Never read-then-write.
	AddPayment(ctx context.Context, loanID string, amount float64, paidAt time.Time) error
	// SettleIfActive flips active→settled as a compare-and-set. Returns
	// true only for the caller that won the transition.
	SettleIfActive(ctx context.Context, loanID string, settledAt time.Time) (bool, error)

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	ExistingLoanIDs(ctx context.Context, loanIDs []string) (map[string]bool, error)
}
