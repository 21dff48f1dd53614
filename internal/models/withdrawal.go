package models

import (
	"time"
)

const (
	WithdrawalStatusPending    = "pending"
	WithdrawalStatusProcessing = "processing"
	WithdrawalStatusCompleted  = "completed"
	WithdrawalStatusRejected   = "rejected"
	WithdrawalStatusCancelled  = "cancelled"
)

// WithdrawalTransitionAllowed reports whether a request in the given status
// may still change state. completed, rejected and cancelled are terminal.
func WithdrawalTransitionAllowed(status string) bool {
	return status == WithdrawalStatusPending || status == WithdrawalStatusProcessing
}

// WithdrawalRequest moves balance out of the platform, subject to admin
// approval. Amount and method are immutable after creation. ProcessedAt is
// stamped only on completed/rejected; a user cancel leaves it nil.
// SettledAt is stamped by the settlement worker exactly once per request.
type WithdrawalRequest struct {
	ID               int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId           int        `gorm:"column:user_id;not null;index:idx_withdrawal_user" json:"user_id"`
	Amount           float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	WithdrawalMethod string     `gorm:"column:withdrawal_method;size:50;not null" json:"withdrawal_method"`
	AccountDetails   string     `gorm:"column:account_details;type:text" json:"account_details"`
	WithdrawalNote   string     `gorm:"column:withdrawal_note;type:text" json:"withdrawal_note"`
	Status           string     `gorm:"column:status;size:20;default:pending" json:"status"`
	AdminNote        string     `gorm:"column:admin_note;type:text" json:"admin_note"`
	TransactionId    string     `gorm:"column:transaction_id;size:100" json:"transaction_id"`
	RejectionReason  string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason"`
	OrderId          string     `gorm:"column:order_id;size:40;uniqueIndex" json:"order_id"`
	ProcessedAt      *time.Time `gorm:"column:processed_at" json:"processed_at"`
	ProcessedBy      *int       `gorm:"column:processed_by" json:"processed_by"`
	SettledAt        *time.Time `gorm:"column:settled_at" json:"settled_at"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
