package queue

import (
	"context"
	"errors"

	"peerloan-backend/internal/domain/event"
)

// ErrClosed is returned by Dequeue once the queue is drained and closed.
var ErrClosed = errors.New("queue closed")

// Queue is the transport between the API process (producer) and the
// reconciler worker (consumer). Enqueue must not return before the event
// is durable in the broker. Delivery is at-least-once: a dequeued event
// stays in flight until the consumer Acks it, and Nack puts it back for
// redelivery, so handler failures and worker crashes never lose events.
type Queue interface {
	Enqueue(ctx context.Context, e event.Event) error
	// Dequeue blocks until an event is available, ctx is done, or the
	// queue is closed.
	Dequeue(ctx context.Context) (event.Event, error)
	// Ack drops an in-flight event after its handler succeeded.
	Ack(ctx context.Context, e event.Event) error
	// Nack returns an in-flight event to the queue for redelivery.
	Nack(ctx context.Context, e event.Event) error
}
