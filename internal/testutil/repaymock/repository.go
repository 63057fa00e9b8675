package repaymock

import (
	"context"
	"errors"

	domain "peerloan-backend/internal/domain/repayment"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("repaymock: method not implemented")

// Repo is a function-backed mock that satisfies repayment.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, r *domain.Repayment) error
	GetByRepaymentIDFn func(ctx context.Context, repaymentID string) (*domain.Repayment, error)
	ListByLoanIDFn     func(ctx context.Context, loanID string) ([]domain.Repayment, error)
	MarkAppliedFn      func(ctx context.Context, repaymentID string) (bool, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRepaymentID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	if m.GetByRepaymentIDFn != nil {
		return m.GetByRepaymentIDFn(ctx, repaymentID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]domain.Repayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) MarkApplied(ctx context.Context, repaymentID string) (bool, error) {
	if m.MarkAppliedFn != nil {
		return m.MarkAppliedFn(ctx, repaymentID)
	}
	return true, nil
}
