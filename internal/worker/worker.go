package worker

import (
	"context"
	"errors"
	"log/slog"

	"peerloan-backend/internal/domain/event"
	"peerloan-backend/internal/infrastructure/queue"
	"peerloan-backend/internal/usecase/account"
	"peerloan-backend/internal/usecase/analysis"
	"peerloan-backend/internal/usecase/contract"
	"peerloan-backend/internal/usecase/repayment"
)

// Handlers bundles the reconciler usecases the worker dispatches to.
type Handlers struct {
	Analysis  *analysis.Usecase
	Contract  *contract.Usecase
	Repayment *repayment.Usecase
	Account   *account.Usecase
}

// Worker drains the event queue and runs one handler per event. An event
// is acked only after its handler returns nil; a handler error sends it
// back to the queue for redelivery, which every handler absorbs
// idempotently. Only malformed payloads are dropped, since no redelivery
// can repair them.
type Worker struct {
	queue    queue.Queue
	handlers Handlers
	log      *slog.Logger
}

func New(q queue.Queue, h Handlers, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}
	return &Worker{queue: q, handlers: h, log: log}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		ev, err := w.queue.Dequeue(ctx)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		case errors.Is(err, queue.ErrClosed):
			return nil
		case err != nil:
			return err
		}

		if err := w.Dispatch(ctx, ev); err != nil {
			w.log.Error("handler failed, event returned for redelivery", "event_id", ev.ID, "type", string(ev.Type), "err", err)
			if err := w.queue.Nack(ctx, ev); err != nil {
				w.log.Error("nack failed", "event_id", ev.ID, "err", err)
			}
			continue
		}
		if err := w.queue.Ack(ctx, ev); err != nil {
			w.log.Error("ack failed", "event_id", ev.ID, "err", err)
		}
		w.log.Info("event processed", "event_id", ev.ID, "type", string(ev.Type))
	}
}

func (w *Worker) Dispatch(ctx context.Context, ev event.Event) error {
	switch ev.Type {
	case event.TypeStatementUploaded:
		var p event.StatementUploaded
		if !w.decode(ev, &p) {
			return nil
		}
		return w.handlers.Analysis.HandleUploaded(ctx, p)
	case event.TypeApplicationApproved:
		var p event.ApplicationApproved
		if !w.decode(ev, &p) {
			return nil
		}
		return w.handlers.Contract.HandleApproved(ctx, p)
	case event.TypeRepaymentCreated:
		var p event.RepaymentCreated
		if !w.decode(ev, &p) {
			return nil
		}
		return w.handlers.Repayment.HandleCreated(ctx, p)
	case event.TypeUserStatusChanged:
		var p event.UserStatusChanged
		if !w.decode(ev, &p) {
			return nil
		}
		return w.handlers.Account.HandleStatusChanged(ctx, p)
	default:
		w.log.Warn("unknown event type", "type", string(ev.Type))
		return nil
	}
}

// decode reports false for a malformed payload. Returning nil out of
// Dispatch acks it: redelivery can never repair bad bytes.
func (w *Worker) decode(ev event.Event, into any) bool {
	if err := ev.Decode(into); err != nil {
		w.log.Error("malformed event payload dropped", "event_id", ev.ID, "type", string(ev.Type), "err", err)
		return false
	}
	return true
}
