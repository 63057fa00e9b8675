package repayment

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

var ErrNotFound = errors.New("repayment not found")

// Repayment is an append-only record of one payment against a loan. The
// amount is never mutated after creation; the loan balance is advanced by
// the reconciler off the creation event.
type Repayment struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID string    `gorm:"size:32;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	LoanID      string    `gorm:"size:64;index:idx_repayments_loan" json:"loan_id"`
	BorrowerID  string    `gorm:"size:32" json:"borrower_id"`
	Amount      float64   `gorm:"type:decimal(18,2)" json:"amount"`
	Status      Status    `gorm:"type:enum('pending','paid','overdue');default:'paid'" json:"status"`
	Applied     bool      `gorm:"default:false" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Repayment) TableName() string { return "repayments" }
