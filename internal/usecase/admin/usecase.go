package admin

import (
	"context"
	"fmt"
	"sync"

	"peerloan-backend/internal/domain/application"
	commissionDomain "peerloan-backend/internal/domain/commission"
	"peerloan-backend/internal/domain/event"
	loanDomain "peerloan-backend/internal/domain/loan"
	"peerloan-backend/internal/domain/notification"
	userDomain "peerloan-backend/internal/domain/user"
	"peerloan-backend/internal/infrastructure/queue"
)

type Notifier interface {
	Send(ctx context.Context, userID, title, message string, t notification.Type) error
}

type Usecase struct {
	users        userDomain.Repository
	loans        loanDomain.Repository
	applications application.Repository
	commissions  commissionDomain.Repository
	notifier     Notifier
	events       queue.Queue

	broadcastWorkers int
}

func NewUsecase(users userDomain.Repository, loans loanDomain.Repository, applications application.Repository, commissions commissionDomain.Repository, notifier Notifier, events queue.Queue) *Usecase {
	return &Usecase{
		users:            users,
		loans:            loans,
		applications:     applications,
		commissions:      commissions,
		notifier:         notifier,
		events:           events,
		broadcastWorkers: 4,
	}
}

// SetStatus freezes or unfreezes a user and publishes the status-change
// event with the before/after pair. The reconciler decides whether the
// write was a genuine transition.
func (u *Usecase) SetStatus(ctx context.Context, userID string, status userDomain.Status) error {
	prev, err := u.users.UpdateStatus(ctx, userID, status)
	if err != nil {
		return err
	}
	ev, err := event.New(event.TypeUserStatusChanged, event.UserStatusChanged{
		UserID:    userID,
		OldStatus: string(prev),
		NewStatus: string(status),
	})
	if err != nil {
		return err
	}
	return u.events.Enqueue(ctx, ev)
}

type Analytics struct {
	TotalUsers      int64   `json:"total_users"`
	ActiveBorrowers int64   `json:"active_borrowers"`
	ActiveLenders   int64   `json:"active_lenders"`
	TotalLoans      int64   `json:"total_loans"`
	ActiveLoans     int64   `json:"active_loans"`
	TotalRevenue    float64 `json:"total_revenue"`
}

func (u *Usecase) GetAnalytics(ctx context.Context) (*Analytics, error) {
	out := &Analytics{}
	var err error
	if out.TotalUsers, err = u.users.Count(ctx); err != nil {
		return nil, err
	}
	if out.ActiveBorrowers, err = u.users.CountByRoleAndStatus(ctx, userDomain.RoleBorrower, userDomain.StatusActive); err != nil {
		return nil, err
	}
	if out.ActiveLenders, err = u.users.CountByRoleAndStatus(ctx, userDomain.RoleLender, userDomain.StatusActive); err != nil {
		return nil, err
	}
	if out.TotalLoans, err = u.loans.Count(ctx); err != nil {
		return nil, err
	}
	if out.ActiveLoans, err = u.loans.CountByStatus(ctx, loanDomain.StatusActive); err != nil {
		return nil, err
	}
	if out.TotalRevenue, err = u.commissions.SumCommission(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// BroadcastError accumulates per-user failures from a broadcast run.
type BroadcastError struct {
	Errors []error
}

func (e *BroadcastError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("broadcast: %d users failed", len(e.Errors))
}

// Broadcast sends one notification to every user. It is deliberately not
// atomic: users already notified stay notified when a later send fails,
// and the accumulated errors are reported to the caller.
func (u *Usecase) Broadcast(ctx context.Context, title, message string) (int, error) {
	users, err := u.users.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, nil
	}

	idxCh := make(chan int)
	errCh := make(chan error, len(users))
	var wg sync.WaitGroup

	for i := 0; i < u.broadcastWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxCh {
				if err := u.notifier.Send(ctx, users[idx].UserID, title, message, notification.TypeSystem); err != nil {
					errCh <- fmt.Errorf("user %s: %w", users[idx].UserID, err)
				}
			}
		}()
	}

Loop:
	for i := range users {
		select {
		case idxCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(idxCh)
	wg.Wait()
	close(errCh)

	var failed []error
	for err := range errCh {
		failed = append(failed, err)
	}
	sent := len(users) - len(failed)
	if len(failed) > 0 {
		return sent, &BroadcastError{Errors: failed}
	}
	return sent, nil
}

// IntegrityReport lists approved applications that have no contract,
// the recoverable inconsistency left behind when contract creation failed
// after approval.
type IntegrityReport struct {
	ApprovedWithoutContract []string `json:"approved_without_contract"`
}

func (u *Usecase) ScanIntegrity(ctx context.Context) (*IntegrityReport, error) {
	appIDs, err := u.applications.ListApprovedIDs(ctx)
	if err != nil {
		return nil, err
	}
	contractIDs := make([]string, 0, len(appIDs))
	for _, id := range appIDs {
		contractIDs = append(contractIDs, loanDomain.ContractID(id))
	}
	existing, err := u.loans.ExistingLoanIDs(ctx, contractIDs)
	if err != nil {
		return nil, err
	}
	report := &IntegrityReport{ApprovedWithoutContract: []string{}}
	for _, id := range appIDs {
		if !existing[loanDomain.ContractID(id)] {
			report.ApprovedWithoutContract = append(report.ApprovedWithoutContract, id)
		}
	}
	return report, nil
}
