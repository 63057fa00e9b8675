package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	mysqlrepo "peerloan-backend/internal/adapter/repository/mysql"
	appDomain "peerloan-backend/internal/domain/application"
	"peerloan-backend/internal/domain/event"
	loanDomain "peerloan-backend/internal/domain/loan"
	notifDomain "peerloan-backend/internal/domain/notification"
	userDomain "peerloan-backend/internal/domain/user"
	"peerloan-backend/internal/infrastructure/queue"
	"peerloan-backend/internal/push"
	"peerloan-backend/internal/storage"
	"peerloan-backend/internal/testutil/appmock"
	accountUC "peerloan-backend/internal/usecase/account"
	analysisUC "peerloan-backend/internal/usecase/analysis"
	applicationUC "peerloan-backend/internal/usecase/application"
	commissionUC "peerloan-backend/internal/usecase/commission"
	contractUC "peerloan-backend/internal/usecase/contract"
	"peerloan-backend/internal/usecase/notify"
	offerUC "peerloan-backend/internal/usecase/offer"
	repaymentUC "peerloan-backend/internal/usecase/repayment"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---

type userRow struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	UserID    string    `gorm:"size:32;uniqueIndex;column:user_id"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Role      string    `gorm:"type:text;column:role"`
	Rating    int       `gorm:"column:rating"`
	Status    string    `gorm:"type:text;column:status"`
	PushToken string    `gorm:"column:push_token"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRow) TableName() string { return "users" }

type offerRow struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	OfferID        string    `gorm:"size:32;uniqueIndex;column:offer_id"`
	LenderID       string    `gorm:"size:32;column:lender_id"`
	Amount         float64   `gorm:"column:amount"`
	InterestRate   float64   `gorm:"column:interest_rate"`
	DurationMonths int       `gorm:"column:duration_months"`
	Conditions     string    `gorm:"column:conditions"`
	Status         string    `gorm:"type:text;column:status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (offerRow) TableName() string { return "loan_offers" }

type applicationRow struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	ApplicationID   string    `gorm:"size:32;uniqueIndex;column:application_id"`
	OfferID         string    `gorm:"size:32;column:offer_id"`
	BorrowerID      string    `gorm:"size:32;column:borrower_id"`
	LenderID        string    `gorm:"size:32;column:lender_id"`
	Amount          float64   `gorm:"column:amount"`
	InterestRate    float64   `gorm:"column:interest_rate"`
	DurationMonths  int       `gorm:"column:duration_months"`
	StatementPath   string    `gorm:"column:statement_path"`
	Summary         string    `gorm:"type:text;column:ai_summary"`
	Status          string    `gorm:"type:text;column:status"`
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (applicationRow) TableName() string { return "loan_applications" }

type loanRow struct {
	ID             uint64     `gorm:"primaryKey;column:id"`
	LoanID         string     `gorm:"size:64;uniqueIndex;column:loan_id"`
	ApplicationID  string     `gorm:"size:32;uniqueIndex;column:application_id"`
	BorrowerID     string     `gorm:"size:32;column:borrower_id"`
	LenderID       string     `gorm:"size:32;column:lender_id"`
	Principal      float64    `gorm:"column:principal"`
	InterestRate   float64    `gorm:"column:interest_rate"`
	DurationMonths int        `gorm:"column:duration_months"`
	TotalAmount    float64    `gorm:"column:total_amount"`
	PaidAmount     float64    `gorm:"default:0;column:paid_amount"`
	LastPaymentAt  *time.Time `gorm:"column:last_payment_at"`
	Status         string     `gorm:"type:text;column:status"`
	SettledAt      *time.Time `gorm:"column:settled_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (loanRow) TableName() string { return "loans" }

type repaymentRow struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	RepaymentID string    `gorm:"size:32;uniqueIndex;column:repayment_id"`
	LoanID      string    `gorm:"size:64;column:loan_id"`
	BorrowerID  string    `gorm:"size:32;column:borrower_id"`
	Amount      float64   `gorm:"column:amount"`
	Status      string    `gorm:"type:text;column:status"`
	Applied     bool      `gorm:"default:false;column:applied"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (repaymentRow) TableName() string { return "repayments" }

type commissionRow struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	LoanID     string    `gorm:"size:64;uniqueIndex;column:loan_id"`
	LenderID   string    `gorm:"size:32;column:lender_id"`
	Profit     float64   `gorm:"column:profit"`
	Commission float64   `gorm:"column:commission"`
	Status     string    `gorm:"type:text;column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (commissionRow) TableName() string { return "commission_records" }

type notificationRow struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	NotificationID string    `gorm:"size:32;uniqueIndex;column:notification_id"`
	UserID         string    `gorm:"size:32;column:user_id"`
	Title          string    `gorm:"column:title"`
	Message        string    `gorm:"column:message"`
	Type           string    `gorm:"size:32;column:type"`
	Read           bool      `gorm:"default:false;column:read"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (notificationRow) TableName() string { return "notifications" }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&userRow{}, &offerRow{}, &applicationRow{}, &loanRow{},
		&repaymentRow{}, &commissionRow{}, &notificationRow{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

type stubScorer struct{ summary appDomain.AISummary }

func (s *stubScorer) AnalyzePDFWithFallback(context.Context, []byte) (*appDomain.AISummary, error) {
	out := s.summary
	return &out, nil
}

// world wires the whole pipeline against one sqlite database and one
// in-process queue, the way cmd/api and cmd/worker wire it in production.
type world struct {
	db     *gorm.DB
	queue  *queue.MemoryQueue
	worker *Worker

	users         *mysqlrepo.UserRepository
	offers        *mysqlrepo.OfferRepository
	applications  *mysqlrepo.ApplicationRepository
	loans         *mysqlrepo.LoanRepository
	repayments    *mysqlrepo.RepaymentRepository
	commissions   *mysqlrepo.CommissionRepository
	notifications *mysqlrepo.NotificationRepository

	offerUC *offerUC.Usecase
	appUC   *applicationUC.Usecase
	repayUC *repaymentUC.Usecase
	pushes  *push.Recorder
}

func newWorld(t *testing.T) *world {
	t.Helper()
	db := openTestDB(t)
	q := queue.NewMemoryQueue(64)

	w := &world{
		db:            db,
		queue:         q,
		users:         mysqlrepo.NewUserRepository(db),
		offers:        mysqlrepo.NewOfferRepository(db),
		applications:  mysqlrepo.NewApplicationRepository(db),
		loans:         mysqlrepo.NewLoanRepository(db),
		repayments:    mysqlrepo.NewRepaymentRepository(db),
		commissions:   mysqlrepo.NewCommissionRepository(db),
		notifications: mysqlrepo.NewNotificationRepository(db),
		pushes:        &push.Recorder{},
	}

	dispatcher := notify.NewDispatcher(w.users, w.notifications, w.pushes)
	calculator := commissionUC.NewCalculator(w.commissions, dispatcher)

	statements := storage.NewMemStore()
	statements.Files["statements/any/statement.pdf"] = []byte("%PDF-1.4 stub")
	scorer := &stubScorer{summary: appDomain.AISummary{AvgBalance: 1500, Inflows: 4200, Outflows: 2700, TransactionFrequency: 12, Score: 78, RiskLevel: "Low"}}

	uow := mysqlrepo.NewGormUoW(db)
	w.offerUC = offerUC.NewUsecase(w.offers)
	w.appUC = applicationUC.NewUsecase(w.offers, w.applications, uow, q)
	w.repayUC = repaymentUC.NewUsecase(w.loans, w.repayments, calculator, uow, q)

	w.worker = New(q, Handlers{
		Analysis:  analysisUC.NewUsecase(w.applications, statements, scorer, dispatcher),
		Contract:  contractUC.NewUsecase(w.applications, w.loans, dispatcher),
		Repayment: w.repayUC,
		Account:   accountUC.NewUsecase(dispatcher),
	}, nil)

	return w
}

// drain processes queued events synchronously until the queue is empty.
func (w *world) drain(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for w.queue.Len() > 0 {
		ev, err := w.queue.Dequeue(ctx)
		if err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
		if err := w.worker.Dispatch(ctx, ev); err != nil {
			t.Fatalf("Dispatch %s: %v", ev.Type, err)
		}
		if err := w.queue.Ack(ctx, ev); err != nil {
			t.Fatalf("Ack: %v", err)
		}
	}
}

func (w *world) seedUser(t *testing.T, userID string, role userDomain.Role) {
	t.Helper()
	u := &userDomain.User{
		UserID:    userID,
		Name:      userID,
		Email:     userID + "@example.com",
		Role:      role,
		Status:    userDomain.StatusActive,
		PushToken: "token-" + userID,
	}
	if err := w.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", userID, err)
	}
}

// Full lifecycle: offer → application → scoring → approval → contract →
// three repayments → settlement → commission, with notification fan-out
// at each stage.
func TestLoanLifecycle(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	borrowerID := "b0000000000000000000000000000001"
	lenderID := "l0000000000000000000000000000001"
	w.seedUser(t, borrowerID, userDomain.RoleBorrower)
	w.seedUser(t, lenderID, userDomain.RoleLender)

	// lender publishes a $5,000 offer at 10%
	offer, err := w.offerUC.Create(ctx, offerUC.CreateInput{
		LenderID:       lenderID,
		Amount:         5000,
		InterestRate:   0.10,
		DurationMonths: 12,
	})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}

	// borrower applies with a bank statement
	app, err := w.appUC.Submit(ctx, applicationUC.SubmitInput{
		OfferID:       offer.OfferID,
		BorrowerID:    borrowerID,
		StatementPath: "statements/any/statement.pdf",
	})
	if err != nil {
		t.Fatalf("submit application: %v", err)
	}
	w.drain(t) // statement.uploaded → scoring

	scored, err := w.applications.GetByApplicationID(ctx, app.ApplicationID)
	if err != nil {
		t.Fatalf("reload application: %v", err)
	}
	if scored.Summary == nil || scored.Summary.Score != 78 {
		t.Fatalf("summary after scoring = %+v", scored.Summary)
	}
	if got, _ := w.notifications.CountByUserAndType(ctx, lenderID, notifDomain.TypeLoanApplication); got != 1 {
		t.Fatalf("lender analysis notifications = %d, want 1", got)
	}

	// lender approves; the reconciler creates the contract
	if _, err := w.appUC.Approve(ctx, app.ApplicationID, lenderID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	w.drain(t)

	loanID := loanDomain.ContractID(app.ApplicationID)
	l, err := w.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("contract not created: %v", err)
	}
	if l.Principal != 5000 || l.TotalAmount != 5500 || l.Status != loanDomain.StatusActive {
		t.Fatalf("contract = %+v", l)
	}
	if got, _ := w.notifications.CountByUserAndType(ctx, borrowerID, notifDomain.TypeLoanApproval); got != 1 {
		t.Fatalf("borrower approval notifications = %d, want 1", got)
	}
	if got, _ := w.notifications.CountByUserAndType(ctx, lenderID, notifDomain.TypeContractGenerated); got != 1 {
		t.Fatalf("lender contract notifications = %d, want 1", got)
	}

	// a second approve must conflict, not refire the pipeline
	if _, err := w.appUC.Approve(ctx, app.ApplicationID, lenderID); err == nil {
		t.Fatal("second approve must fail")
	}

	// borrower repays in three installments
	for _, amount := range []float64{2000, 2000, 1500} {
		if _, err := w.repayUC.Record(ctx, repaymentUC.RecordInput{
			LoanID:     loanID,
			BorrowerID: borrowerID,
			Amount:     amount,
		}); err != nil {
			t.Fatalf("record repayment %v: %v", amount, err)
		}
		w.drain(t)
	}

	settled, err := w.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("reload loan: %v", err)
	}
	if settled.PaidAmount != 5500 || settled.Status != loanDomain.StatusSettled || settled.SettledAt == nil {
		t.Fatalf("loan after final payment = %+v", settled)
	}

	// commission: 15% of the $500 profit, exactly once
	total, err := w.commissions.SumCommission(ctx)
	if err != nil {
		t.Fatalf("SumCommission: %v", err)
	}
	if total != 75 {
		t.Fatalf("commission = %v, want 75", total)
	}
	if got, _ := w.notifications.CountByUserAndType(ctx, lenderID, notifDomain.TypeCommission); got != 1 {
		t.Fatalf("commission notifications = %d, want 1", got)
	}

	// further repayments on the settled loan are rejected
	if _, err := w.repayUC.Record(ctx, repaymentUC.RecordInput{
		LoanID: loanID, BorrowerID: borrowerID, Amount: 100,
	}); err == nil {
		t.Fatal("repayment on settled loan must fail")
	}

	// pushes mirrored every persisted notification
	recs, err := w.notifications.ListByUserID(ctx, lenderID)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(recs) == 0 || len(w.pushes.Sent()) == 0 {
		t.Fatalf("notifications=%d pushes=%d", len(recs), len(w.pushes.Sent()))
	}
}

type sendRecorder struct {
	mu   sync.Mutex
	sent int
}

func (r *sendRecorder) Send(context.Context, string, string, string, notifDomain.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent++
	return nil
}

func (r *sendRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent
}

// A handler failure sends the event back to the queue; the next delivery
// succeeds and the event is acked.
func TestRunRedeliversFailedHandler(t *testing.T) {
	q := queue.NewMemoryQueue(4)

	var mu sync.Mutex
	lookups := 0
	apps := &appmock.Repo{
		GetByApplicationIDFn: func(_ context.Context, applicationID string) (*appDomain.LoanApplication, error) {
			mu.Lock()
			defer mu.Unlock()
			lookups++
			if lookups == 1 {
				return nil, errors.New("db unavailable")
			}
			return &appDomain.LoanApplication{ApplicationID: applicationID, LenderID: "lender1"}, nil
		},
		SetSummaryFn: func(context.Context, string, *appDomain.AISummary) error { return nil },
	}
	statements := storage.NewMemStore()
	statements.Files["statements/app1/statement.pdf"] = []byte("%PDF-1.4 stub")
	scorer := &stubScorer{summary: appDomain.AISummary{Score: 70, RiskLevel: "Low"}}
	notifier := &sendRecorder{}

	w := New(q, Handlers{
		Analysis: analysisUC.NewUsecase(apps, statements, scorer, notifier),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	ev, err := event.New(event.TypeStatementUploaded, event.StatementUploaded{
		ApplicationID: "app1",
		Path:          "statements/app1/statement.pdf",
	})
	if err != nil {
		t.Fatalf("event.New: %v", err)
	}
	if err := q.Enqueue(ctx, ev); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for notifier.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("event was not redelivered and processed")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	mu.Lock()
	deliveries := lookups
	mu.Unlock()
	if deliveries != 2 {
		t.Fatalf("deliveries = %d, want 2 (one failure, one success)", deliveries)
	}
	if q.InFlight() != 0 {
		t.Fatalf("in-flight = %d after ack, want 0", q.InFlight())
	}
}

// Redelivering the repayment event must not double-apply the amount.
func TestRepaymentRedelivery(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	borrowerID := "b0000000000000000000000000000002"
	lenderID := "l0000000000000000000000000000002"
	w.seedUser(t, borrowerID, userDomain.RoleBorrower)
	w.seedUser(t, lenderID, userDomain.RoleLender)

	offer, err := w.offerUC.Create(ctx, offerUC.CreateInput{
		LenderID: lenderID, Amount: 1000, InterestRate: 0.10, DurationMonths: 6,
	})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}
	app, err := w.appUC.Submit(ctx, applicationUC.SubmitInput{OfferID: offer.OfferID, BorrowerID: borrowerID})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := w.appUC.Approve(ctx, app.ApplicationID, lenderID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	w.drain(t)

	loanID := loanDomain.ContractID(app.ApplicationID)
	dto, err := w.repayUC.Record(ctx, repaymentUC.RecordInput{LoanID: loanID, BorrowerID: borrowerID, Amount: 400})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	w.drain(t)

	// redeliver the same event twice more
	ev := event.RepaymentCreated{RepaymentID: dto.RepaymentID, LoanID: loanID, Amount: 400}
	for i := 0; i < 2; i++ {
		if err := w.repayUC.HandleCreated(ctx, ev); err != nil {
			t.Fatalf("redelivery %d: %v", i, err)
		}
	}

	l, err := w.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("reload loan: %v", err)
	}
	if l.PaidAmount != 400 {
		t.Fatalf("paid_amount = %v, want 400 (single application)", l.PaidAmount)
	}
	if l.Status != loanDomain.StatusActive {
		t.Fatalf("status = %s, want active", l.Status)
	}
}
