package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---

type userSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	UserID    string    `gorm:"size:32;uniqueIndex;column:user_id"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Role      string    `gorm:"type:text;column:role"` // ← no enum
	Rating    int       `gorm:"column:rating"`
	Status    string    `gorm:"type:text;column:status"`
	PushToken string    `gorm:"column:push_token"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userSQLite) TableName() string { return "users" }

type offerSQLite struct {
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

func (offerSQLite) TableName() string { return "loan_offers" }

type applicationSQLite struct {
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

func (applicationSQLite) TableName() string { return "loan_applications" }

type loanSQLite struct {
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

func (loanSQLite) TableName() string { return "loans" }

type repaymentSQLite struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	RepaymentID string    `gorm:"size:32;uniqueIndex;column:repayment_id"`
	LoanID      string    `gorm:"size:64;column:loan_id"`
	BorrowerID  string    `gorm:"size:32;column:borrower_id"`
	Amount      float64   `gorm:"column:amount"`
	Status      string    `gorm:"type:text;column:status"`
	Applied     bool      `gorm:"default:false;column:applied"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (repaymentSQLite) TableName() string { return "repayments" }

type commissionSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	LoanID     string    `gorm:"size:64;uniqueIndex;column:loan_id"`
	LenderID   string    `gorm:"size:32;column:lender_id"`
	Profit     float64   `gorm:"column:profit"`
	Commission float64   `gorm:"column:commission"`
	Status     string    `gorm:"type:text;column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (commissionSQLite) TableName() string { return "commission_records" }

type notificationSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	NotificationID string    `gorm:"size:32;uniqueIndex;column:notification_id"`
	UserID         string    `gorm:"size:32;column:user_id"`
	Title          string    `gorm:"column:title"`
	Message        string    `gorm:"column:message"`
	Type           string    `gorm:"size:32;column:type"`
	Read           bool      `gorm:"default:false;column:read"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (notificationSQLite) TableName() string { return "notifications" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// a :memory: database exists per connection; pin the pool to one
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&userSQLite{},
		&offerSQLite{},
		&applicationSQLite{},
		&loanSQLite{},
		&repaymentSQLite{},
		&commissionSQLite{},
		&notificationSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
