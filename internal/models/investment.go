package models

import (
	"time"
)

const (
	InvestmentStatusPending   = "PENDING"
	InvestmentStatusActive    = "ACTIVE"
	InvestmentStatusCompleted = "COMPLETED"
	InvestmentStatusCancelled = "CANCELLED"
)

// InvestmentTransitionAllowed reports whether an investment in the given
// status may still change state. COMPLETED and CANCELLED are terminal.
func InvestmentTransitionAllowed(status string) bool {
	return status == InvestmentStatusPending || status == InvestmentStatusActive
}

// Investment is a user's stake against a plan. Amount and plan are immutable
// after creation; only status and accrued earnings move. The legacy Plan /
// WalletAddress text columns are normalized into the structured references
// once at creation time.
type Investment struct {
	ID                int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId            int        `gorm:"column:user_id;not null;index:idx_investment_user" json:"user_id"`
	InvestmentPlanId  *int       `gorm:"column:investment_plan_id;index" json:"investment_plan_id"`
	Amount            float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	WalletAddressUsed string     `gorm:"column:wallet_address_used;size:255" json:"wallet_address_used"`
	Status            string     `gorm:"column:status;size:10;default:PENDING" json:"status"`
	TotalEarnings     float64    `gorm:"column:total_earnings;type:decimal(20,2);default:0.00" json:"total_earnings"`
	OrderId           string     `gorm:"column:order_id;size:40;uniqueIndex" json:"order_id"`
	LastAccruedOn     *time.Time `gorm:"column:last_accrued_on" json:"last_accrued_on"`
	DateInvested      time.Time  `gorm:"column:date_invested;autoCreateTime" json:"date_invested"`
	DateCompleted     *time.Time `gorm:"column:date_completed" json:"date_completed"`

	// Legacy columns kept for rows that predate the structured references.
	LegacyPlan          string `gorm:"column:plan;size:100" json:"plan,omitempty"`
	LegacyWalletAddress string `gorm:"column:wallet_address;size:255" json:"wallet_address,omitempty"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Plan *InvestmentPlan `gorm:"foreignKey:InvestmentPlanId" json:"investment_plan,omitempty"`
}

func (Investment) TableName() string {
	return "investments"
}

// DailyEarnings is the per-day payout, nil when no plan is resolved.
func (i *Investment) DailyEarnings() *float64 {
	if i.Plan == nil {
		return nil
	}
	daily := (i.Plan.DailyEarningsPercentage / 100) * i.Amount
	return &daily
}

// ExpectedTotalEarnings is the projected earnings over the full period.
func (i *Investment) ExpectedTotalEarnings() *float64 {
	daily := i.DailyEarnings()
	if daily == nil {
		return nil
	}
	total := *daily * float64(i.Plan.InvestmentDurationDays)
	return &total
}

// ExpectedTotalReturn includes the principal when the plan returns it.
func (i *Investment) ExpectedTotalReturn() *float64 {
	total := i.ExpectedTotalEarnings()
	if total == nil {
		return nil
	}
	ret := *total
	if i.Plan.DepositReturn {
		ret += i.Amount
	}
	return &ret
}

// DaysElapsed is the whole calendar days between the investment date and
// now, not elapsed seconds divided by 86400.
func (i *Investment) DaysElapsed(now time.Time) int {
	y1, m1, d1 := i.DateInvested.Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	y2, m2, d2 := now.Date()
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// DaysRemaining is clamped at zero and forced to zero once completed.
func (i *Investment) DaysRemaining(now time.Time) *int {
	if i.Plan == nil {
		return nil
	}
	remaining := 0
	if i.Status != InvestmentStatusCompleted {
		remaining = i.Plan.InvestmentDurationDays - i.DaysElapsed(now)
		if remaining < 0 {
			remaining = 0
		}
	}
	return &remaining
}

// ProgressPercentage is clamped at 100 and forced to 100 once completed.
func (i *Investment) ProgressPercentage(now time.Time) *float64 {
	if i.Plan == nil || i.Plan.InvestmentDurationDays <= 0 {
		return nil
	}
	progress := 100.0
	if i.Status != InvestmentStatusCompleted {
		progress = float64(i.DaysElapsed(now)) / float64(i.Plan.InvestmentDurationDays) * 100
		if progress > 100 {
			progress = 100
		}
	}
	return &progress
}
