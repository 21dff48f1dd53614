package consumers

import (
	"log"
	"time"

	"investment-service/internal/models"
	"investment-service/internal/services"

	"gorm.io/gorm"
)

// EarningsProcessor performs the balance bookkeeping that runs off the
// request path: the daily earnings accrual sweep and withdrawal settlement.
type EarningsProcessor struct {
	DB      *gorm.DB
	Balance *services.BalanceService
}

func NewEarningsProcessor(db *gorm.DB, balance *services.BalanceService) *EarningsProcessor {
	return &EarningsProcessor{DB: db, Balance: balance}
}

type AccrualSweepDTO struct {
	// Date of the sweep in 2006-01-02 form; empty means today.
	Date string `json:"date"`
}

type WithdrawalSettlementDTO struct {
	WithdrawalId int     `json:"withdrawal_id"`
	UserId       int     `json:"user_id"`
	Amount       float64 `json:"amount"`
}

// ProcessAccrualSweep credits one day of earnings to every ACTIVE investment
// with a resolved plan, then completes the ones whose duration has elapsed,
// returning the principal when the plan pays it back. Per-investment
// failures are logged and skipped so one bad row never stalls the sweep.
func (p *EarningsProcessor) ProcessAccrualSweep(data AccrualSweepDTO) error {
	asOf := time.Now()
	if data.Date != "" {
		parsed, err := time.Parse("2006-01-02", data.Date)
		if err != nil {
			return err
		}
		asOf = parsed
	}

	var investments []models.Investment
	err := p.DB.Preload("Plan").
		Where("status = ?", models.InvestmentStatusActive).
		Find(&investments).Error
	if err != nil {
		return err
	}

	accrued, completed := 0, 0
	for _, inv := range investments {
		if inv.Plan == nil {
			continue
		}

		if err := p.accrueOne(inv, asOf); err != nil {
			log.Printf("Accrual failed for investment %d: %v", inv.ID, err)
			continue
		}
		accrued++

		if inv.DaysElapsed(asOf) >= inv.Plan.InvestmentDurationDays {
			if err := p.completeOne(inv, asOf); err != nil {
				log.Printf("Completion failed for investment %d: %v", inv.ID, err)
				continue
			}
			completed++
		}
	}

	log.Printf("Accrual sweep done: %d credited, %d completed", accrued, completed)
	return nil
}

func (p *EarningsProcessor) accrueOne(inv models.Investment, asOf time.Time) error {
	daily := inv.DailyEarnings()
	if daily == nil || *daily <= 0 {
		return nil
	}

	sweepDate := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	return p.DB.Transaction(func(tx *gorm.DB) error {
		// One credit per calendar day: a redelivered or double-enqueued
		// sweep finds the date already stamped and leaves the row alone.
		result := tx.Model(&models.Investment{}).
			Where("id = ? AND (last_accrued_on IS NULL OR last_accrued_on < ?)", inv.ID, sweepDate).
			Updates(map[string]interface{}{
				"total_earnings":  gorm.Expr("total_earnings + ?", *daily),
				"last_accrued_on": sweepDate,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		balance := services.NewBalanceService(tx)
		if err := balance.Credit(inv.UserId, *daily, "Earnings",
			"Daily earnings for investment "+inv.OrderId); err != nil {
			return err
		}
		return balance.AddTotalEarnings(inv.UserId, *daily)
	})
}

func (p *EarningsProcessor) completeOne(inv models.Investment, asOf time.Time) error {
	result := p.DB.Model(&models.Investment{}).
		Where("id = ? AND status = ?", inv.ID, models.InvestmentStatusActive).
		Updates(map[string]interface{}{
			"status":         models.InvestmentStatusCompleted,
			"date_completed": asOf,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nil
	}

	if inv.Plan.DepositReturn {
		return p.Balance.Credit(inv.UserId, inv.Amount, "Principal Return",
			"Deposit returned for investment "+inv.OrderId)
	}
	return nil
}

// ProcessWithdrawalSettlement debits the approved amount from the user's
// balance and bumps the lifetime withdrawal counter. The settled_at stamp
// on the request makes a redelivered task a no-op.
func (p *EarningsProcessor) ProcessWithdrawalSettlement(data WithdrawalSettlementDTO) error {
	now := time.Now()
	return p.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND settled_at IS NULL", data.WithdrawalId).
			Update("settled_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			log.Printf("Withdrawal %d already settled, skipping", data.WithdrawalId)
			return nil
		}

		balance := services.NewBalanceService(tx)
		if err := balance.Debit(data.UserId, data.Amount, "Withdrawal",
			"Settlement of withdrawal request"); err != nil {
			return err
		}
		return balance.AddTotalWithdrawn(data.UserId, data.Amount)
	})
}
