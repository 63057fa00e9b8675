package user

import (
	"errors"
	"time"
)

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleLender   Role = "lender"
	RoleAdmin    Role = "admin"
)

type Status string

const (
	StatusActive Status = "active"
	StatusFrozen Status = "frozen"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID    string    `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Name      string    `gorm:"size:128" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Role      Role      `gorm:"type:enum('borrower','lender','admin')" json:"role"`
	Rating    int       `gorm:"default:50" json:"rating"`
	Status    Status    `gorm:"type:enum('active','frozen');default:'active'" json:"status"`
	PushToken string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
