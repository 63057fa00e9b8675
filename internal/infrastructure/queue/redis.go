package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"peerloan-backend/internal/domain/event"
)

const defaultKey = "reconciler:events"

// RedisQueue is a list-backed queue: LPUSH to produce, and a blocking
// pop-and-push into a processing list to consume. The event stays on the
// processing list until Ack removes it or Nack returns it to the main
// list, so a worker crash mid-handler leaves the event recoverable via
// Reclaim instead of lost.
//
// Ack and Nack locate the processing entry by re-marshaling the event;
// the envelope round-trips byte-identically (RawMessage payload, UTC
// timestamp), so the re-marshaled bytes match what Enqueue pushed.
type RedisQueue struct {
	rdb        *redis.Client
	key        string
	processing string
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = defaultKey
	}
	return &RedisQueue{rdb: rdb, key: key, processing: key + ":processing"}
}

func (q *RedisQueue) Enqueue(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.key, payload).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context) (event.Event, error) {
	for {
		raw, err := q.rdb.BRPopLPush(ctx, q.key, q.processing, 5*time.Second).Result()
		switch {
		case errors.Is(err, redis.Nil):
			// poll timeout, check ctx and go around
			if ctx.Err() != nil {
				return event.Event{}, ctx.Err()
			}
			continue
		case err != nil:
			return event.Event{}, err
		}
		var e event.Event
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			// a malformed entry can never be handled; drop it
			q.rdb.LRem(ctx, q.processing, 1, raw)
			return event.Event{}, err
		}
		return e, nil
	}
}

func (q *RedisQueue) Ack(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return q.rdb.LRem(ctx, q.processing, 1, payload).Err()
}

func (q *RedisQueue) Nack(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = q.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LRem(ctx, q.processing, 1, payload)
		p.LPush(ctx, q.key, payload)
		return nil
	})
	return err
}

// Reclaim moves events stranded on the processing list (a worker crashed
// between Dequeue and Ack) back onto the queue. Call it on worker startup
// before consuming; with a single worker per processing list every
// stranded entry is safe to redeliver.
func (q *RedisQueue) Reclaim(ctx context.Context) (int, error) {
	n := 0
	for {
		err := q.rdb.RPopLPush(ctx, q.processing, q.key).Err()
		switch {
		case errors.Is(err, redis.Nil):
			return n, nil
		case err != nil:
			return n, err
		}
		n++
	}
}
