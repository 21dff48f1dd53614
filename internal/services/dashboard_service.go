package services

import (
	"time"

	"investment-service/internal/models"

	"gorm.io/gorm"
)

type DashboardService struct {
	DB         *gorm.DB
	Balance    *BalanceService
	Investment *InvestmentService
}

func NewDashboardService(db *gorm.DB, balance *BalanceService, investment *InvestmentService) *DashboardService {
	return &DashboardService{DB: db, Balance: balance, Investment: investment}
}

type DashboardSummary struct {
	Balance            float64              `json:"balance"`
	TotalEarnings      float64              `json:"total_earnings"`
	TotalWithdrawn     float64              `json:"total_withdrawn"`
	ActiveInvestments  []InvestmentOverview `json:"active_investments"`
	PendingWithdrawals int64                `json:"pending_withdrawals"`
}

// Summary is the user dashboard rollup: cached balance scalars plus derived
// metrics for every running investment.
func (s *DashboardService) Summary(userId int) (DashboardSummary, error) {
	balance, err := s.Balance.GetOrCreateBalance(userId)
	if err != nil {
		return DashboardSummary{}, err
	}
	earnings, err := s.Balance.GetOrCreateTotalEarnings(userId)
	if err != nil {
		return DashboardSummary{}, err
	}
	withdrawn, err := s.Balance.GetOrCreateTotalWithdrawn(userId)
	if err != nil {
		return DashboardSummary{}, err
	}

	var active []models.Investment
	err = s.DB.Preload("Plan").
		Where("user_id = ? AND status = ?", userId, models.InvestmentStatusActive).
		Order("date_invested DESC").
		Find(&active).Error
	if err != nil {
		return DashboardSummary{}, err
	}

	now := time.Now()
	overviews := make([]InvestmentOverview, 0, len(active))
	for _, inv := range active {
		overviews = append(overviews, BuildInvestmentOverview(inv, now))
	}

	var pending int64
	err = s.DB.Model(&models.WithdrawalRequest{}).
		Where("user_id = ? AND status IN ?", userId,
			[]string{models.WithdrawalStatusPending, models.WithdrawalStatusProcessing}).
		Count(&pending).Error
	if err != nil {
		return DashboardSummary{}, err
	}

	return DashboardSummary{
		Balance:            balance.Amount,
		TotalEarnings:      earnings.TotalEarnings,
		TotalWithdrawn:     withdrawn.TotalWithdraw,
		ActiveInvestments:  overviews,
		PendingWithdrawals: pending,
	}, nil
}
