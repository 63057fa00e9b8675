package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
	// UpdateStatus writes the new status and returns the previous one,
	// so callers can tell a genuine transition from a rewrite.
	UpdateStatus(ctx context.Context, userID string, status Status) (Status, error)
	UpdatePushToken(ctx context.Context, userID, token string) error
	CountByRoleAndStatus(ctx context.Context, role Role, status Status) (int64, error)
	Count(ctx context.Context) (int64, error)
}
