package push

import (
	"context"
	"log"
	"sync"
)

// Message is the payload handed to the push transport, keyed by the
// recipient's device token.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Sender is the delivery transport seam. Delivery failures are logged by
// callers, never retried.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender stands in where no real transport is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("push: token=%s title=%q", msg.Token, msg.Title)
	return nil
}

// Recorder captures sent messages for tests.
type Recorder struct {
	mu   sync.Mutex
	Msgs []Message
	Err  error
}

func (r *Recorder) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Msgs = append(r.Msgs, msg)
	return nil
}

func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.Msgs))
	copy(out, r.Msgs)
	return out
}
