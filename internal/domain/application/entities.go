package application

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidTransition = errors.New("invalid application state transition")
	ErrAlreadyDecided    = errors.New("application already approved or rejected")
)

// AISummary is the scoring oracle's verdict on an uploaded statement.
// A zero-score/High-risk summary is the deterministic fallback written
// when the oracle is unreachable.
type AISummary struct {
	AvgBalance           float64 `json:"avg_balance"`
	Inflows              float64 `json:"inflows"`
	Outflows             float64 `json:"outflows"`
	TransactionFrequency float64 `json:"transaction_frequency"`
	Score                int     `json:"score"`
	RiskLevel            string  `json:"risk_level"`
}

type LoanApplication struct {
	ID              uint64     `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID   string     `gorm:"size:32;uniqueIndex:ux_loan_applications_application_id" json:"application_id"`
	OfferID         string     `gorm:"size:32;index:idx_loan_applications_offer" json:"offer_id"`
	BorrowerID      string     `gorm:"size:32;index:idx_loan_applications_borrower" json:"borrower_id"`
	LenderID        string     `gorm:"size:32;index:idx_loan_applications_lender" json:"lender_id"`
	Amount          float64    `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate    float64    `gorm:"type:decimal(6,4)" json:"interest_rate"`
	DurationMonths  int        `json:"duration_months"`
	StatementPath   string     `gorm:"type:text" json:"statement_path"`
	Summary         *AISummary `gorm:"serializer:json;column:ai_summary" json:"ai_summary,omitempty"`
	Status          Status     `gorm:"type:enum('pending','approved','rejected');default:'pending'" json:"status"`
	StatusUpdatedAt time.Time  `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanApplication) TableName() string { return "loan_applications" }
