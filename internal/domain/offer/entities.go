package offer

import (
	"errors"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var (
	ErrNotFound = errors.New("offer not found")
	ErrNotOwner = errors.New("offer does not belong to lender")
	ErrInactive = errors.New("offer is inactive")
)

type LoanOffer struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	OfferID        string    `gorm:"size:32;uniqueIndex:ux_loan_offers_offer_id" json:"offer_id"`
	LenderID       string    `gorm:"size:32;index:idx_loan_offers_lender" json:"lender_id"`
	Amount         float64   `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate   float64   `gorm:"type:decimal(6,4)" json:"interest_rate"`
	DurationMonths int       `json:"duration_months"`
	Conditions     string    `gorm:"type:text" json:"conditions"`
	Status         Status    `gorm:"type:enum('active','inactive');default:'active'" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanOffer) TableName() string { return "loan_offers" }
