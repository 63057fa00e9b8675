package uow

import (
	"context"

	"peerloan-backend/internal/domain/application"
	"peerloan-backend/internal/domain/loan"
	"peerloan-backend/internal/domain/offer"
	"peerloan-backend/internal/domain/repayment"
)

type Repos struct {
	Offers       offer.Repository
	Applications application.Repository
	Loans        loan.Repository
	Repayments   repayment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.LoanApplication) error) error
}
