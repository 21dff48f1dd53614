package models

import (
	"time"
)

// UserProfile is created explicitly right after the owning user row; every
// reader goes through a fetch-or-create so legacy users without one never
// break the withdrawal gate.
type UserProfile struct {
	ID                       int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId                   int       `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	PhoneNumber              string    `gorm:"column:phone_number;size:15" json:"phone_number"`
	WithdrawalEnabled        bool      `gorm:"column:withdrawal_enabled;default:true" json:"withdrawal_enabled"`
	WithdrawalDisabledReason string    `gorm:"column:withdrawal_disabled_reason;type:text" json:"withdrawal_disabled_reason"`
	CreatedAt                time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
