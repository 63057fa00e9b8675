package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	appDomain "peerloan-backend/internal/domain/application"
	"peerloan-backend/internal/domain/event"
	"peerloan-backend/internal/domain/notification"
	"peerloan-backend/internal/oracle"
	"peerloan-backend/internal/storage"
	"peerloan-backend/internal/testutil/appmock"
)

type scorerFunc func(ctx context.Context, file []byte) (*appDomain.AISummary, error)

func (f scorerFunc) AnalyzePDFWithFallback(ctx context.Context, file []byte) (*appDomain.AISummary, error) {
	return f(ctx, file)
}

type notifierRecorder struct {
	UserID, Title, Message string
	Type                   notification.Type
	Calls                  int
}

func (n *notifierRecorder) Send(_ context.Context, userID, title, message string, t notification.Type) error {
	n.Calls++
	n.UserID, n.Title, n.Message, n.Type = userID, title, message, t
	return nil
}

func uploadedEvent() event.StatementUploaded {
	return event.StatementUploaded{
		ApplicationID: "a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1",
		Path:          "statements/a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1/statement.pdf",
	}
}

func appsWith(written **appDomain.AISummary) *appmock.Repo {
	return &appmock.Repo{
		GetByApplicationIDFn: func(context.Context, string) (*appDomain.LoanApplication, error) {
			return &appDomain.LoanApplication{
				ApplicationID: "a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1",
				LenderID:      "lender1",
			}, nil
		},
		SetSummaryFn: func(_ context.Context, _ string, s *appDomain.AISummary) error {
			*written = s
			return nil
		},
	}
}

func TestHandleUploaded_WritesOracleSummaryAndNotifiesLender(t *testing.T) {
	var written *appDomain.AISummary
	store := storage.NewMemStore()
	store.Files[uploadedEvent().Path] = []byte("%PDF-1.4 fake")
	scorer := scorerFunc(func(_ context.Context, file []byte) (*appDomain.AISummary, error) {
		return &appDomain.AISummary{AvgBalance: 1200, Inflows: 4000, Outflows: 2800, TransactionFrequency: 14, Score: 82, RiskLevel: "Low"}, nil
	})
	notifier := &notifierRecorder{}
	uc := NewUsecase(appsWith(&written), store, scorer, notifier)

	if err := uc.HandleUploaded(context.Background(), uploadedEvent()); err != nil {
		t.Fatalf("HandleUploaded: %v", err)
	}
	if written == nil || written.Score != 82 || written.RiskLevel != "Low" {
		t.Fatalf("summary written = %+v", written)
	}
	if notifier.Calls != 1 || notifier.UserID != "lender1" {
		t.Fatalf("notifier = %+v", notifier)
	}
	if notifier.Title != "New Loan Application Analyzed" || notifier.Type != notification.TypeLoanApplication {
		t.Fatalf("notification = %q / %s", notifier.Title, notifier.Type)
	}
	if !strings.Contains(notifier.Message, "Credit score: 82") {
		t.Fatalf("message = %q", notifier.Message)
	}
}

func TestHandleUploaded_OracleFailureWritesFallback(t *testing.T) {
	var written *appDomain.AISummary
	store := storage.NewMemStore()
	store.Files[uploadedEvent().Path] = []byte("%PDF-1.4 fake")
	scorer := scorerFunc(func(context.Context, []byte) (*appDomain.AISummary, error) {
		return oracle.Fallback(), errors.New("oracle unreachable")
	})
	notifier := &notifierRecorder{}
	uc := NewUsecase(appsWith(&written), store, scorer, notifier)

	if err := uc.HandleUploaded(context.Background(), uploadedEvent()); err != nil {
		t.Fatalf("HandleUploaded: %v", err)
	}
	if written == nil || written.Score != 0 || written.RiskLevel != "High" {
		t.Fatalf("fallback summary = %+v", written)
	}
	if !strings.Contains(notifier.Message, "Credit score: 0") {
		t.Fatalf("message = %q", notifier.Message)
	}
}

func TestHandleUploaded_MissingFileWritesFallback(t *testing.T) {
	var written *appDomain.AISummary
	scorer := scorerFunc(func(context.Context, []byte) (*appDomain.AISummary, error) {
		t.Fatal("scorer must not run when the file is unreadable")
		return nil, nil
	})
	notifier := &notifierRecorder{}
	uc := NewUsecase(appsWith(&written), storage.NewMemStore(), scorer, notifier)

	if err := uc.HandleUploaded(context.Background(), uploadedEvent()); err != nil {
		t.Fatalf("HandleUploaded: %v", err)
	}
	if written == nil || written.Score != 0 || written.RiskLevel != "High" {
		t.Fatalf("fallback summary = %+v", written)
	}
	if notifier.Calls != 1 {
		t.Fatalf("notifications = %d", notifier.Calls)
	}
}

func TestHandleUploaded_SummaryWriteFailureSkipsNotification(t *testing.T) {
	apps := &appmock.Repo{
		GetByApplicationIDFn: func(context.Context, string) (*appDomain.LoanApplication, error) {
			return &appDomain.LoanApplication{ApplicationID: "a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1", LenderID: "lender1"}, nil
		},
		SetSummaryFn: func(context.Context, string, *appDomain.AISummary) error {
			return errors.New("row vanished")
		},
	}
	store := storage.NewMemStore()
	store.Files[uploadedEvent().Path] = []byte("x")
	scorer := scorerFunc(func(context.Context, []byte) (*appDomain.AISummary, error) {
		return &appDomain.AISummary{Score: 50, RiskLevel: "Medium"}, nil
	})
	notifier := &notifierRecorder{}
	uc := NewUsecase(apps, store, scorer, notifier)

	if err := uc.HandleUploaded(context.Background(), uploadedEvent()); err == nil {
		t.Fatal("want error when summary write fails")
	}
	if notifier.Calls != 0 {
		t.Fatalf("no notification on failed write, got %d", notifier.Calls)
	}
}
