package commission

import "context"

type Repository interface {
	// CreateIfAbsent inserts the record unless the loan already has one.
	// Returns true when this call inserted the row.
	CreateIfAbsent(ctx context.Context, rec *Record) (bool, error)
	ListByLenderID(ctx context.Context, lenderID string) ([]Record, error)
	SumCommission(ctx context.Context) (float64, error)
}
