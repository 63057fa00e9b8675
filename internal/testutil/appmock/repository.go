package appmock

import (
	"context"
	"errors"

	domain "peerloan-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("appmock: method not implemented")

// Repo is a function-backed mock that satisfies application.Repository.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.LoanApplication) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
	SaveFn                        func(ctx context.Context, a *domain.LoanApplication) error
	SetSummaryFn                  func(ctx context.Context, applicationID string, s *domain.AISummary) error
	ListByBorrowerIDFn            func(ctx context.Context, borrowerID string) ([]domain.LoanApplication, error)
	ListByLenderIDFn              func(ctx context.Context, lenderID string) ([]domain.LoanApplication, error)
	ListApprovedIDsFn             func(ctx context.Context) ([]string, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.LoanApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, a *domain.LoanApplication) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) SetSummary(ctx context.Context, applicationID string, s *domain.AISummary) error {
	if m.SetSummaryFn != nil {
		return m.SetSummaryFn(ctx, applicationID, s)
	}
	return errUnimplemented
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID string) ([]domain.LoanApplication, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLenderID(ctx context.Context, lenderID string) ([]domain.LoanApplication, error) {
	if m.ListByLenderIDFn != nil {
		return m.ListByLenderIDFn(ctx, lenderID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListApprovedIDs(ctx context.Context) ([]string, error) {
	if m.ListApprovedIDsFn != nil {
		return m.ListApprovedIDsFn(ctx)
	}
	return nil, errUnimplemented
}
