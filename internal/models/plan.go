package models

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.English)

// InvestmentPlan is an admin-defined investment product. The derived metrics
// return nil / "N/A" instead of failing when required inputs are missing,
// since legacy rows were written with permissive nulls.
type InvestmentPlan struct {
	ID                      int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title                   string    `gorm:"column:title;size:100;not null" json:"title"`
	Description             string    `gorm:"column:description;type:text" json:"description"`
	MinimumDeposit          float64   `gorm:"column:minimum_deposit;type:decimal(20,2);default:0.00" json:"minimum_deposit"`
	MaximumDeposit          *float64  `gorm:"column:maximum_deposit;type:decimal(20,2)" json:"maximum_deposit"`
	DailyEarningsPercentage float64   `gorm:"column:daily_earnings_percentage;type:decimal(5,2);default:0.00" json:"daily_earnings_percentage"`
	InvestmentDurationDays  int       `gorm:"column:investment_duration_days;default:0" json:"investment_duration_days"`
	DepositReturn           bool      `gorm:"column:deposit_return;default:true" json:"deposit_return"`
	CryptoWalletId          int       `gorm:"column:crypto_wallet_id;not null;index" json:"crypto_wallet_id"`
	IsActive                bool      `gorm:"column:is_active;default:true" json:"is_active"`
	SortOrder               int       `gorm:"column:sort_order;default:0" json:"sort_order"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	CryptoWallet *CryptoWallet `gorm:"foreignKey:CryptoWalletId" json:"crypto_wallet,omitempty"`
}

func (InvestmentPlan) TableName() string {
	return "investment_plans"
}

// TotalReturnPercentage is the cumulative return percentage over the full
// period, or nil when rate or duration was never set.
func (p *InvestmentPlan) TotalReturnPercentage() *float64 {
	if p.DailyEarningsPercentage <= 0 || p.InvestmentDurationDays <= 0 {
		return nil
	}
	total := p.DailyEarningsPercentage * float64(p.InvestmentDurationDays)
	return &total
}

// EstimatedTotalReturn is the projected payout for the minimum deposit,
// including the principal when the plan returns it.
func (p *InvestmentPlan) EstimatedTotalReturn() *float64 {
	if p.DailyEarningsPercentage <= 0 || p.InvestmentDurationDays <= 0 || p.MinimumDeposit <= 0 {
		return nil
	}
	dailyReturn := (p.DailyEarningsPercentage / 100) * p.MinimumDeposit
	total := dailyReturn * float64(p.InvestmentDurationDays)
	if p.DepositReturn {
		total += p.MinimumDeposit
	}
	return &total
}

// InvestmentRangeDisplay renders the accepted deposit range with thousands
// grouping, e.g. "$100+" or "$100 - $5,000".
func (p *InvestmentPlan) InvestmentRangeDisplay() string {
	if p.MinimumDeposit <= 0 {
		return "N/A"
	}
	if p.MaximumDeposit != nil {
		return usd.Sprintf("$%.0f - $%.0f", p.MinimumDeposit, *p.MaximumDeposit)
	}
	return usd.Sprintf("$%.0f+", p.MinimumDeposit)
}
