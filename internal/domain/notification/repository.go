package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUserID(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	CountByUserAndType(ctx context.Context, userID string, t Type) (int64, error)
}
