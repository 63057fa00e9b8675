package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	loanDomain "peerloan-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) CreateIfAbsent(ctx context.Context, l *loanDomain.Loan) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(insertIgnoreDuplicate()).Create(l)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) ListByBorrowerID(ctx context.Context, borrowerID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByLenderID(ctx context.Context, lenderID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("lender_id = ?", lenderID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

// AddPayment advances paid_amount in a single UPDATE expression, so two
// concurrent repayment events serialize at the store instead of clobbering
// each other through read-then-write.
func (r *LoanRepository) AddPayment(ctx context.Context, loanID string, amount float64, paidAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("loan_id = ?", loanID).
		Updates(map[string]any{
			"paid_amount":     gorm.Expr("paid_amount + ?", amount),
			"last_payment_at": paidAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrNotFound
	}
	return nil
}

// SettleIfActive is the settlement compare-and-set: the WHERE clause only
// matches while the loan is still active, so exactly one concurrent caller
// observes RowsAffected == 1.
func (r *LoanRepository) SettleIfActive(ctx context.Context, loanID string, settledAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("loan_id = ? AND status = ?", loanID, loanDomain.StatusActive).
		Updates(map[string]any{
			"status":     loanDomain.StatusSettled,
			"settled_at": settledAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Count(&n)
	return n, res.Error
}

func (r *LoanRepository) CountByStatus(ctx context.Context, status loanDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("status = ?", status).
		Count(&n)
	return n, res.Error
}

func (r *LoanRepository) ExistingLoanIDs(ctx context.Context, loanIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(loanIDs))
	if len(loanIDs) == 0 {
		return out, nil
	}
	var found []string
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("loan_id IN ?", loanIDs).
		Pluck("loan_id", &found)
	if res.Error != nil {
		return nil, res.Error
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}
