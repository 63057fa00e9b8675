package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	appDomain "peerloan-backend/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.LoanApplication, error) {
	var out appDomain.LoanApplication
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.LoanApplication, error) {
	var out appDomain.LoanApplication
	res := r.db.WithContext(ctx).Clauses(forUpdate()).
		Where("application_id = ?", applicationID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// SetSummary overwrites ai_summary for the application; reprocessing the
// same upload lands on the same row instead of creating a second summary.
func (r *ApplicationRepository) SetSummary(ctx context.Context, applicationID string, s *appDomain.AISummary) error {
	res := r.db.WithContext(ctx).Model(&appDomain.LoanApplication{}).
		Where("application_id = ?", applicationID).
		Update("ai_summary", s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appDomain.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) ListByBorrowerID(ctx context.Context, borrowerID string) ([]appDomain.LoanApplication, error) {
	var out []appDomain.LoanApplication
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListByLenderID(ctx context.Context, lenderID string) ([]appDomain.LoanApplication, error) {
	var out []appDomain.LoanApplication
	res := r.db.WithContext(ctx).
		Where("lender_id = ?", lenderID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListApprovedIDs(ctx context.Context) ([]string, error) {
	var ids []string
	res := r.db.WithContext(ctx).Model(&appDomain.LoanApplication{}).
		Where("status = ?", appDomain.StatusApproved).
		Pluck("application_id", &ids)
	return ids, res.Error
}
