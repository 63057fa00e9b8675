package loanmock

import (
	"context"
	"errors"
	"time"

	domain "peerloan-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies loan.Repository.
type Repo struct {
	CreateIfAbsentFn   func(ctx context.Context, l *domain.Loan) (bool, error)
	GetByLoanIDFn      func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByBorrowerIDFn func(ctx context.Context, borrowerID string) ([]domain.Loan, error)
	ListByLenderIDFn   func(ctx context.Context, lenderID string) ([]domain.Loan, error)
	AddPaymentFn       func(ctx context.Context, loanID string, amount float64, paidAt time.Time) error
	SettleIfActiveFn   func(ctx context.Context, loanID string, settledAt time.Time) (bool, error)
	CountFn            func(ctx context.Context) (int64, error)
	CountByStatusFn    func(ctx context.Context, status domain.Status) (int64, error)
	ExistingLoanIDsFn  func(ctx context.Context, loanIDs []string) (map[string]bool, error)
}

func (m *Repo) CreateIfAbsent(ctx context.Context, l *domain.Loan) (bool, error) {
	if m.CreateIfAbsentFn != nil {
		return m.CreateIfAbsentFn(ctx, l)
	}
	return false, errUnimplemented
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID string) ([]domain.Loan, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLenderID(ctx context.Context, lenderID string) ([]domain.Loan, error) {
	if m.ListByLenderIDFn != nil {
		return m.ListByLenderIDFn(ctx, lenderID)
	}
	return nil, errUnimplemented
}

func (m *Repo) AddPayment(ctx context.Context, loanID string, amount float64, paidAt time.Time) error {
	if m.AddPaymentFn != nil {
		return m.AddPaymentFn(ctx, loanID, amount, paidAt)
	}
	return errUnimplemented
}

func (m *Repo) SettleIfActive(ctx context.Context, loanID string, settledAt time.Time) (bool, error) {
	if m.SettleIfActiveFn != nil {
		return m.SettleIfActiveFn(ctx, loanID, settledAt)
	}
	return false, errUnimplemented
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, errUnimplemented
}

func (m *Repo) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, errUnimplemented
}

func (m *Repo) ExistingLoanIDs(ctx context.Context, loanIDs []string) (map[string]bool, error) {
	if m.ExistingLoanIDsFn != nil {
		return m.ExistingLoanIDsFn(ctx, loanIDs)
	}
	return nil, errUnimplemented
}
