package notify

import (
	"context"
	"log"

	"peerloan-backend/internal/domain/notification"
	"peerloan-backend/internal/domain/user"
	"peerloan-backend/internal/push"
	"peerloan-backend/pkg/id"
)

// Dispatcher fans a domain event out to (a) a persisted notification record
// and (b) a push message to the user's device token. The record is written
// first; push delivery is best-effort and never fails the caller.
type Dispatcher struct {
	users         user.Repository
	notifications notification.Repository
	sender        push.Sender
}

func NewDispatcher(users user.Repository, notifications notification.Repository, sender push.Sender) *Dispatcher {
	return &Dispatcher{users: users, notifications: notifications, sender: sender}
}

func (d *Dispatcher) Send(ctx context.Context, userID, title, message string, t notification.Type) error {
	n := &notification.Notification{
		NotificationID: id.NewID32(),
		UserID:         userID,
		Title:          title,
		Message:        message,
		Type:           t,
	}
	if err := d.notifications.Create(ctx, n); err != nil {
		return err
	}

	u, err := d.users.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("notify: user %s lookup failed, push skipped: %v", userID, err)
		return nil
	}
	if u.PushToken == "" {
		return nil
	}
	msg := push.Message{
		Token: u.PushToken,
		Title: title,
		Body:  message,
		Data:  map[string]string{"type": string(t), "userId": userID},
	}
	if err := d.sender.Send(ctx, msg); err != nil {
		// delivery failures are logged, not retried
		log.Printf("notify: push to user %s failed: %v", userID, err)
	}
	return nil
}
