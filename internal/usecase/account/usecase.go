package account

import (
	"context"

	"peerloan-backend/internal/domain/event"
	"peerloan-backend/internal/domain/notification"
	userDomain "peerloan-backend/internal/domain/user"
)

type Notifier interface {
	Send(ctx context.Context, userID, title, message string, t notification.Type) error
}

// Usecase is the reconciler handler for user.status_changed.
type Usecase struct {
	notifier Notifier
}

func NewUsecase(notifier Notifier) *Usecase { return &Usecase{notifier: notifier} }

// HandleStatusChanged notifies the user once per genuine transition. A
// rewrite of the same value (old == new) produces nothing, so unrelated
// user-document writes cannot cause notification storms.
func (u *Usecase) HandleStatusChanged(ctx context.Context, ev event.UserStatusChanged) error {
	if ev.OldStatus == ev.NewStatus {
		return nil
	}

	title := "Account Unfrozen"
	msg := "Your account has been unfrozen. You can now use the platform."
	if ev.NewStatus == string(userDomain.StatusFrozen) {
		title = "Account Frozen"
		msg = "Your account has been frozen. Contact support for assistance."
	}
	return u.notifier.Send(ctx, ev.UserID, title, msg, notification.TypeAccountStatus)
}
