package queue

import (
	"context"
	"sync"

	"peerloan-backend/internal/domain/event"
)

// MemoryQueue is a channel-backed Queue for tests and single-process runs.
type MemoryQueue struct {
	ch       chan event.Event
	mu       sync.Mutex
	closed   bool
	inflight map[string]event.Event
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 128
	}
	return &MemoryQueue{ch: make(chan event.Event, size), inflight: map[string]event.Event{}}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, e event.Event) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.mu.Unlock()

	select {
	case q.ch <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (event.Event, error) {
	select {
	case e, ok := <-q.ch:
		if !ok {
			return event.Event{}, ErrClosed
		}
		q.mu.Lock()
		q.inflight[e.ID] = e
		q.mu.Unlock()
		return e, nil
	case <-ctx.Done():
		return event.Event{}, ctx.Err()
	}
}

func (q *MemoryQueue) Ack(_ context.Context, e event.Event) error {
	q.mu.Lock()
	delete(q.inflight, e.ID)
	q.mu.Unlock()
	return nil
}

func (q *MemoryQueue) Nack(ctx context.Context, e event.Event) error {
	q.mu.Lock()
	delete(q.inflight, e.ID)
	q.mu.Unlock()
	return q.Enqueue(ctx, e)
}

// Close drains producers; pending events remain consumable until the
// channel empties.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}

// Len reports buffered events; test helper.
func (q *MemoryQueue) Len() int { return len(q.ch) }

// InFlight reports dequeued-but-unacked events; test helper.
func (q *MemoryQueue) InFlight() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.inflight)
}
