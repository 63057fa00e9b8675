package mysql

import (
	"context"

	"gorm.io/gorm"

	commissionDomain "peerloan-backend/internal/domain/commission"
)

type CommissionRepository struct{ db *gorm.DB }

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) CreateIfAbsent(ctx context.Context, rec *commissionDomain.Record) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(insertIgnoreDuplicate()).Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CommissionRepository) ListByLenderID(ctx context.Context, lenderID string) ([]commissionDomain.Record, error) {
	var out []commissionDomain.Record
	res := r.db.WithContext(ctx).
		Where("lender_id = ?", lenderID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *CommissionRepository) SumCommission(ctx context.Context) (float64, error) {
	var total float64
	res := r.db.WithContext(ctx).Model(&commissionDomain.Record{}).
		Select("COALESCE(SUM(commission), 0)").
		Scan(&total)
	return total, res.Error
}
