package notifmock

import (
	"context"
	"errors"
	"sync"

	domain "peerloan-backend/internal/domain/notification"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("notifmock: method not implemented")

// Repo records created notifications in memory; function fields override
// individual methods when set.
type Repo struct {
	mu      sync.Mutex
	Created []domain.Notification

	CreateFn             func(ctx context.Context, n *domain.Notification) error
	ListByUserIDFn       func(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkReadFn           func(ctx context.Context, notificationID string) error
	CountByUserAndTypeFn func(ctx context.Context, userID string, t domain.Type) (int64, error)
}

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, *n)
	return nil
}

func (m *Repo) All() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Notification, len(m.Created))
	copy(out, m.Created)
	return out
}

func (m *Repo) ForUser(userID string) []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Notification
	for _, n := range m.Created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (m *Repo) ListByUserID(ctx context.Context, userID string) ([]domain.Notification, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return m.ForUser(userID), nil
}

func (m *Repo) MarkRead(ctx context.Context, notificationID string) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, notificationID)
	}
	return errUnimplemented
}

func (m *Repo) CountByUserAndType(ctx context.Context, userID string, t domain.Type) (int64, error) {
	if m.CountByUserAndTypeFn != nil {
		return m.CountByUserAndTypeFn(ctx, userID, t)
	}
	var n int64
	for _, rec := range m.ForUser(userID) {
		if rec.Type == t {
			n++
		}
	}
	return n, nil
}
