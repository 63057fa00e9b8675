package loan

import (
	"errors"
	"time"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusSettled Status = "settled"
)

var ErrNotFound = errors.New("loan not found")

// ContractIDPrefix keys contracts deterministically off the application,
// so re-processing an approval upserts instead of duplicating.
const ContractIDPrefix = "contract_"

func ContractID(applicationID string) string { return ContractIDPrefix + applicationID }

// Loan is the contract created when an application is approved. Principal,
// rate and duration are immutable after creation; only paid_amount,
// last_payment_at and status move.
type Loan struct {
	ID             uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID         string     `gorm:"size:64;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	ApplicationID  string     `gorm:"size:32;uniqueIndex:ux_loans_application_id" json:"application_id"`
	BorrowerID     string     `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id"`
	LenderID       string     `gorm:"size:32;index:idx_loans_lender" json:"lender_id"`
	Principal      float64    `gorm:"type:decimal(18,2)" json:"principal"`
	InterestRate   float64    `gorm:"type:decimal(6,4)" json:"interest_rate"`
	DurationMonths int        `json:"duration_months"`
	TotalAmount    float64    `gorm:"type:decimal(18,2)" json:"total_amount"`
	PaidAmount     float64    `gorm:"type:decimal(18,2);default:0" json:"paid_amount"`
	LastPaymentAt  *time.Time `json:"last_payment_at,omitempty"`
	Status         Status     `gorm:"type:enum('active','settled');default:'active'" json:"status"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// TotalAmountFor is the settlement threshold: principal plus simple interest.
func TotalAmountFor(principal, rate float64) float64 {
	return principal * (1 + rate)
}
