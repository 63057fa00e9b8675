package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *LoanApplication) error
	GetByApplicationID(ctx context.Context, applicationID string) (*LoanApplication, error)
	// GetByApplicationIDForUpdate locks the row for the duration of the
	// surrounding transaction. Only meaningful inside a UoW.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*LoanApplication, error)
	Save(ctx context.Context, a *LoanApplication) error
	// SetSummary overwrites the AI summary in place; re-processing the same
	// statement upload must land on the same row.
	SetSummary(ctx context.Context, applicationID string, s *AISummary) error
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]LoanApplication, error)
	ListByLenderID(ctx context.Context, lenderID string) ([]LoanApplication, error)
	ListApprovedIDs(ctx context.Context) ([]string, error)
}
