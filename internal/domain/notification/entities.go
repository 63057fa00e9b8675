package notification

import (
	"errors"
	"time"
)

type Type string

const (
	TypeLoanApplication   Type = "loan_application"
	TypeLoanApproval      Type = "loan_approval"
	TypeContractGenerated Type = "contract_generated"
	TypeCommission        Type = "commission"
	TypeAccountStatus     Type = "account_status"
	TypeSystem            Type = "system"
)

var ErrNotFound = errors.New("notification not found")

type Notification struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	NotificationID string    `gorm:"size:32;uniqueIndex:ux_notifications_notification_id" json:"notification_id"`
	UserID         string    `gorm:"size:32;index:idx_notifications_user" json:"user_id"`
	Title          string    `gorm:"size:255" json:"title"`
	Message        string    `gorm:"type:text" json:"message"`
	Type           Type      `gorm:"size:32" json:"type"`
	Read           bool      `gorm:"default:false" json:"read"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
