package usermock

import (
	"context"
	"errors"

	domain "peerloan-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("usermock: method not implemented")

// Repo is a function-backed mock that satisfies user.Repository.
// Fill in the function fields you need in a test.
type Repo struct {
	CreateFn               func(ctx context.Context, u *domain.User) error
	GetByUserIDFn          func(ctx context.Context, userID string) (*domain.User, error)
	ListAllFn              func(ctx context.Context) ([]domain.User, error)
	UpdateStatusFn         func(ctx context.Context, userID string, status domain.Status) (domain.Status, error)
	UpdatePushTokenFn      func(ctx context.Context, userID, token string) error
	CountByRoleAndStatusFn func(ctx context.Context, role domain.Role, status domain.Status) (int64, error)
	CountFn                func(ctx context.Context) (int64, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.User, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) UpdateStatus(ctx context.Context, userID string, status domain.Status) (domain.Status, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, userID, status)
	}
	return "", errUnimplemented
}

func (m *Repo) UpdatePushToken(ctx context.Context, userID, token string) error {
	if m.UpdatePushTokenFn != nil {
		return m.UpdatePushTokenFn(ctx, userID, token)
	}
	return errUnimplemented
}

func (m *Repo) CountByRoleAndStatus(ctx context.Context, role domain.Role, status domain.Status) (int64, error) {
	if m.CountByRoleAndStatusFn != nil {
		return m.CountByRoleAndStatusFn(ctx, role, status)
	}
	return 0, errUnimplemented
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, errUnimplemented
}
