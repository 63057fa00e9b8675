package commission

import (
	"context"
	"fmt"
	"math"

	commissionDomain "peerloan-backend/internal/domain/commission"
	"peerloan-backend/internal/domain/loan"
	"peerloan-backend/internal/domain/notification"
)

type Notifier interface {
	Send(ctx context.Context, userID, title, message string, t notification.Type) error
}

// Calculator computes the platform's cut of a lender's realized profit on a
// settled loan and persists one commission record. At-most-once invocation
// per loan is the caller's responsibility (the settlement compare-and-set
// winner is the only caller); the unique loan_id index backs it up at the
// store level.
type Calculator struct {
	records  commissionDomain.Repository
	notifier Notifier
}

func NewCalculator(records commissionDomain.Repository, notifier Notifier) *Calculator {
	return &Calculator{records: records, notifier: notifier}
}

// Round2 rounds to cents; commission amounts are reported to 2 decimals.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// Compute clamps profit at 0, so a loan settling with paid == principal
// yields a zero commission instead of a negative one.
func Compute(paidAmount, principal float64) (profit, commission float64) {
	profit = paidAmount - principal
	if profit < 0 {
		profit = 0
	}
	return Round2(profit), Round2(profit * commissionDomain.Rate)
}

func (c *Calculator) ForSettledLoan(ctx context.Context, l *loan.Loan) (*commissionDomain.Record, error) {
	profit, amount := Compute(l.PaidAmount, l.Principal)

	rec := &commissionDomain.Record{
		LoanID:     l.LoanID,
		LenderID:   l.LenderID,
		Profit:     profit,
		Commission: amount,
		Status:     commissionDomain.StatusPending,
	}
	created, err := c.records.CreateIfAbsent(ctx, rec)
	if err != nil {
		return nil, err
	}
	if !created {
		// a record already exists for this loan; nothing more to do
		return nil, nil
	}

	msg := fmt.Sprintf("Commission of $%.2f calculated for loan settlement.", amount)
	if err := c.notifier.Send(ctx, l.LenderID, "Commission Calculated", msg, notification.TypeCommission); err != nil {
		return rec, err
	}
	return rec, nil
}
