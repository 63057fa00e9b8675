package commission

import "time"

// Rate is the platform's cut of a lender's realized profit on a settled loan.
const Rate = 0.15

type Status string

const (
	StatusPending Status = "pending"
	StatusPaidOut Status = "paid_out"
)

// Record is computed at most once per settled loan; the unique index on
// loan_id backs that invariant at the store level.
type Record struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string    `gorm:"size:64;uniqueIndex:ux_commission_records_loan_id" json:"loan_id"`
	LenderID   string    `gorm:"size:32;index:idx_commission_records_lender" json:"lender_id"`
	Profit     float64   `gorm:"type:decimal(18,2)" json:"profit"`
	Commission float64   `gorm:"type:decimal(18,2)" json:"commission"`
	Status     Status    `gorm:"type:enum('pending','paid_out');default:'pending'" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Record) TableName() string { return "commission_records" }
