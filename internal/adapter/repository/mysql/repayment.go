package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	repayDomain "peerloan-backend/internal/domain/repayment"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

func (r *RepaymentRepository) Create(ctx context.Context, rec *repayDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RepaymentRepository) GetByRepaymentID(ctx context.Context, repaymentID string) (*repayDomain.Repayment, error) {
	var out repayDomain.Repayment
	res := r.db.WithContext(ctx).Where("repayment_id = ?", repaymentID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, repayDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *RepaymentRepository) MarkApplied(ctx context.Context, repaymentID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&repayDomain.Repayment{}).
		Where("repayment_id = ? AND applied = ?", repaymentID, false).
		Update("applied", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *RepaymentRepository) ListByLoanID(ctx context.Context, loanID string) ([]repayDomain.Repayment, error) {
	var out []repayDomain.Repayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
