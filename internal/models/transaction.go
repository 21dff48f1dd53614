package models

import (
	"time"
)

const (
	TrxTypeCredit = "credit"
	TrxTypeDebit  = "debit"
)

// Transaction is an audit line written whenever a user balance moves:
// daily earnings credits, principal returns, withdrawal settlements.
type Transaction struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId        int       `gorm:"column:user_id;not null;index:idx_trx_user" json:"user_id"`
	TransactionNo string    `gorm:"column:transaction_no;size:100;not null;index" json:"transaction_no"`
	Amount        float64   `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	TrxType       string    `gorm:"column:transaction_type;size:10;not null" json:"transaction_type"`
	Subject       string    `gorm:"column:subject;size:255;not null" json:"subject"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	Balance       float64   `gorm:"column:balance;type:decimal(20,2);default:0.00" json:"balance"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
