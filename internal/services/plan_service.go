package services

import (
	"errors"
	"strings"

	"investment-service/internal/models"
	"investment-service/pkg/common"

	"gorm.io/gorm"
)

type PlanService struct {
	DB *gorm.DB
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{DB: db}
}

type PlanDTO struct {
	Title                   string   `json:"title" binding:"required"`
	Description             string   `json:"description"`
	MinimumDeposit          float64  `json:"minimum_deposit" binding:"required"`
	MaximumDeposit          *float64 `json:"maximum_deposit"`
	DailyEarningsPercentage float64  `json:"daily_earnings_percentage" binding:"required"`
	InvestmentDurationDays  int      `json:"investment_duration_days" binding:"required"`
	DepositReturn           *bool    `json:"deposit_return"`
	CryptoWalletId          int      `json:"crypto_wallet_id" binding:"required"`
	IsActive                *bool    `json:"is_active"`
	SortOrder               int      `json:"sort_order"`
}

func (s *PlanService) validate(data PlanDTO) error {
	if strings.TrimSpace(data.Title) == "" {
		return common.NewValidationError("title", "title is required")
	}
	if data.MinimumDeposit <= 0 {
		return common.NewValidationError("minimum_deposit", "minimum deposit must be greater than zero")
	}
	if data.MaximumDeposit != nil && *data.MaximumDeposit < data.MinimumDeposit {
		return common.NewValidationError("maximum_deposit", "maximum deposit must not be below the minimum")
	}
	if data.DailyEarningsPercentage <= 0 || data.DailyEarningsPercentage > 50 {
		return common.NewValidationError("daily_earnings_percentage", "daily rate must be in (0, 50]")
	}
	if data.InvestmentDurationDays <= 0 {
		return common.NewValidationError("investment_duration_days", "duration must be at least one day")
	}

	var wallet models.CryptoWallet
	if err := s.DB.First(&wallet, data.CryptoWalletId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewValidationError("crypto_wallet_id", "referenced crypto wallet does not exist")
		}
		return err
	}
	return nil
}

func (s *PlanService) Create(data PlanDTO) (models.InvestmentPlan, error) {
	if err := s.validate(data); err != nil {
		return models.InvestmentPlan{}, err
	}

	plan := models.InvestmentPlan{
		Title:                   strings.TrimSpace(data.Title),
		Description:             data.Description,
		MinimumDeposit:          data.MinimumDeposit,
		MaximumDeposit:          data.MaximumDeposit,
		DailyEarningsPercentage: data.DailyEarningsPercentage,
		InvestmentDurationDays:  data.InvestmentDurationDays,
		DepositReturn:           true,
		CryptoWalletId:          data.CryptoWalletId,
		IsActive:                true,
		SortOrder:               data.SortOrder,
	}
	if data.DepositReturn != nil {
		plan.DepositReturn = *data.DepositReturn
	}
	if data.IsActive != nil {
		plan.IsActive = *data.IsActive
	}

	if err := s.DB.Create(&plan).Error; err != nil {
		return models.InvestmentPlan{}, err
	}
	return plan, nil
}

func (s *PlanService) Update(id int, data PlanDTO) (models.InvestmentPlan, error) {
	var plan models.InvestmentPlan
	if err := s.DB.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InvestmentPlan{}, &common.NotFoundError{Resource: "investment plan"}
		}
		return models.InvestmentPlan{}, err
	}

	if err := s.validate(data); err != nil {
		return models.InvestmentPlan{}, err
	}

	updates := map[string]interface{}{
		"title":                     strings.TrimSpace(data.Title),
		"description":               data.Description,
		"minimum_deposit":           data.MinimumDeposit,
		"maximum_deposit":           data.MaximumDeposit,
		"daily_earnings_percentage": data.DailyEarningsPercentage,
		"investment_duration_days":  data.InvestmentDurationDays,
		"crypto_wallet_id":          data.CryptoWalletId,
		"sort_order":                data.SortOrder,
	}
	if data.DepositReturn != nil {
		updates["deposit_return"] = *data.DepositReturn
	}
	if data.IsActive != nil {
		updates["is_active"] = *data.IsActive
	}

	if err := s.DB.Model(&plan).Updates(updates).Error; err != nil {
		return models.InvestmentPlan{}, err
	}
	if err := s.DB.First(&plan, id).Error; err != nil {
		return models.InvestmentPlan{}, err
	}
	return plan, nil
}

// ListActive returns plans shown to users, in catalog order, with their
// deposit wallets resolved.
func (s *PlanService) ListActive() ([]models.InvestmentPlan, error) {
	var plans []models.InvestmentPlan
	err := s.DB.Preload("CryptoWallet").
		Where("is_active = ?", true).
		Order("sort_order ASC, title ASC").
		Find(&plans).Error
	return plans, err
}

// ListAll is the admin view including disabled plans.
func (s *PlanService) ListAll() ([]models.InvestmentPlan, error) {
	var plans []models.InvestmentPlan
	err := s.DB.Preload("CryptoWallet").
		Order("sort_order ASC, title ASC").
		Find(&plans).Error
	return plans, err
}

func (s *PlanService) Get(id int) (models.InvestmentPlan, error) {
	var plan models.InvestmentPlan
	if err := s.DB.Preload("CryptoWallet").First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InvestmentPlan{}, &common.NotFoundError{Resource: "investment plan"}
		}
		return models.InvestmentPlan{}, err
	}
	return plan, nil
}

// PlanOverview is the presentation shape for a plan: raw fields plus the
// derived figures, never markup.
type PlanOverview struct {
	Plan                  models.InvestmentPlan `json:"plan"`
	InvestmentRange       string                `json:"investment_range"`
	TotalReturnPercentage *float64              `json:"total_return_percentage"`
	EstimatedTotalReturn  *float64              `json:"estimated_total_return"`
}

func BuildPlanOverview(plan models.InvestmentPlan) PlanOverview {
	return PlanOverview{
		Plan:                  plan,
		InvestmentRange:       plan.InvestmentRangeDisplay(),
		TotalReturnPercentage: plan.TotalReturnPercentage(),
		EstimatedTotalReturn:  plan.EstimatedTotalReturn(),
	}
}
