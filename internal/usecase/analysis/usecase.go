package analysis

import (
	"context"
	"fmt"
	"log"

	appDomain "peerloan-backend/internal/domain/application"
	"peerloan-backend/internal/domain/event"
	"peerloan-backend/internal/domain/notification"
	"peerloan-backend/internal/oracle"
	"peerloan-backend/internal/storage"
)

type Notifier interface {
	Send(ctx context.Context, userID, title, message string, t notification.Type) error
}

// Scorer is the oracle seam; *oracle.Client satisfies it.
type Scorer interface {
	AnalyzePDFWithFallback(ctx context.Context, file []byte) (*appDomain.AISummary, error)
}

// Usecase is the reconciler handler for statement.uploaded. The
// application always leaves this handler with a summary: a real one from
// the oracle, or the deterministic zero-score/High-risk fallback.
type Usecase struct {
	applications appDomain.Repository
	statements   storage.StatementStore
	scorer       Scorer
	notifier     Notifier
}

func NewUsecase(applications appDomain.Repository, statements storage.StatementStore, scorer Scorer, notifier Notifier) *Usecase {
	return &Usecase{applications: applications, statements: statements, scorer: scorer, notifier: notifier}
}

func (u *Usecase) HandleUploaded(ctx context.Context, ev event.StatementUploaded) error {
	a, err := u.applications.GetByApplicationID(ctx, ev.ApplicationID)
	if err != nil {
		return err
	}

	var summary *appDomain.AISummary
	file, err := u.statements.Fetch(ctx, ev.Path)
	if err != nil {
		log.Printf("analysis: statement %s unreadable, using fallback: %v", ev.Path, err)
		summary = oracle.Fallback()
	} else {
		summary, err = u.scorer.AnalyzePDFWithFallback(ctx, file)
		if err != nil {
			log.Printf("analysis: oracle failed for application %s, using fallback: %v", a.ApplicationID, err)
		}
	}

	// overwrite in place: reprocessing the same upload must not stack summaries
	if err := u.applications.SetSummary(ctx, a.ApplicationID, summary); err != nil {
		return fmt.Errorf("summary for application %s not written: %w", a.ApplicationID, err)
	}

	msg := fmt.Sprintf("AI analysis completed for loan application. Credit score: %d", summary.Score)
	return u.notifier.Send(ctx, a.LenderID, "New Loan Application Analyzed", msg, notification.TypeLoanApplication)
}
