package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeStatementUploaded   Type = "statement.uploaded"
	TypeApplicationApproved Type = "application.approved"
	TypeRepaymentCreated    Type = "repayment.created"
	TypeUserStatusChanged   Type = "user.status_changed"
)

// Event is the envelope carried on the queue. Delivery is at-least-once;
// every consumer must be idempotent over its payload.
type Event struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type StatementUploaded struct {
	ApplicationID string `json:"application_id"`
	Path          string `json:"path"`
}

type ApplicationApproved struct {
	ApplicationID string `json:"application_id"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
}

type RepaymentCreated struct {
	RepaymentID string  `json:"repayment_id"`
	LoanID      string  `json:"loan_id"`
	Amount      float64 `json:"amount"`
}

type UserStatusChanged struct {
	UserID    string `json:"user_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func New(t Type, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", t, err)
	}
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

func (e Event) Decode(into any) error {
	if err := json.Unmarshal(e.Payload, into); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}
