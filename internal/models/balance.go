package models

import (
	"time"
)

// Balance, TotalEarnings and TotalWithdrawn are per-user cached scalars read
// by the dashboard and the withdrawal flow. They are created lazily on first
// access and updated by the accrual and settlement processors.

type Balance struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    int       `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Amount    float64   `gorm:"column:amount;type:decimal(20,2);default:0.00" json:"amount"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Balance) TableName() string {
	return "balances"
}

type TotalEarnings struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId        int       `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	TotalEarnings float64   `gorm:"column:total_earnings;type:decimal(20,2);default:0.00" json:"total_earnings"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TotalEarnings) TableName() string {
	return "total_earnings"
}

type TotalWithdrawn struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId        int       `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	TotalWithdraw float64   `gorm:"column:total_withdraw;type:decimal(20,2);default:0.00" json:"total_withdraw"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TotalWithdrawn) TableName() string {
	return "total_withdrawals"
}
