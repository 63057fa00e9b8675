package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	userDomain "peerloan-backend/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *UserRepository) ListAll(ctx context.Context) ([]userDomain.User, error) {
	var out []userDomain.User
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *UserRepository) UpdateStatus(ctx context.Context, userID string, status userDomain.Status) (userDomain.Status, error) {
	var prev userDomain.Status
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u userDomain.User
		res := tx.Clauses(forUpdate()).Where("user_id = ?", userID).First(&u)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return userDomain.ErrNotFound
		}
		if res.Error != nil {
			return res.Error
		}
		prev = u.Status
		if prev == status {
			return nil
		}
		return tx.Model(&userDomain.User{}).
			Where("user_id = ?", userID).
			Update("status", status).Error
	})
	return prev, err
}

func (r *UserRepository) UpdatePushToken(ctx context.Context, userID, token string) error {
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("user_id = ?", userID).
		Update("push_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// unchanged token also reports 0 rows; only a missing row is an error
		var n int64
		if err := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return userDomain.ErrNotFound
		}
	}
	return nil
}

func (r *UserRepository) CountByRoleAndStatus(ctx context.Context, role userDomain.Role, status userDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("role = ? AND status = ?", role, status).
		Count(&n)
	return n, res.Error
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).Count(&n)
	return n, res.Error
}
