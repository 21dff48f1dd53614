package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"investment-service/internal/models"
	"investment-service/pkg/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvestmentService struct {
	DB *gorm.DB
}

func NewInvestmentService(db *gorm.DB) *InvestmentService {
	return &InvestmentService{DB: db}
}

type CreateInvestmentDTO struct {
	UserId int
	PlanId int     `json:"plan_id"`
	Amount float64 `json:"amount" binding:"required"`

	// LegacyPlanName supports old clients that still submit a free-text
	// plan name instead of a plan id.
	LegacyPlanName string `json:"plan,omitempty"`
}

// likeEscaper neutralizes LIKE wildcards in user-supplied text so they
// match literally under ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// resolveLegacyPlan best-effort matches a free-text plan name against the
// catalog by prefix of its first word. A miss is not an error; the
// investment is stored with the legacy text only.
func (s *InvestmentService) resolveLegacyPlan(name string) *models.InvestmentPlan {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return nil
	}
	var plan models.InvestmentPlan
	err := s.DB.Where("title LIKE ? ESCAPE '!'", likeEscaper.Replace(fields[0])+"%").First(&plan).Error
	if err != nil {
		return nil
	}
	return &plan
}

// Create validates the deposit against the plan bounds, snapshots the
// deposit wallet address and writes a PENDING investment. Legacy free-text
// plan names are normalized to a structured reference here, once, so
// nothing downstream needs the dual-field branching.
func (s *InvestmentService) Create(data CreateInvestmentDTO) (models.Investment, error) {
	if data.Amount <= 0 {
		return models.Investment{}, common.NewValidationError("amount", "amount must be greater than zero")
	}

	var plan *models.InvestmentPlan
	if data.PlanId > 0 {
		var p models.InvestmentPlan
		err := s.DB.Preload("CryptoWallet").Where("is_active = ?", true).First(&p, data.PlanId).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Investment{}, &common.NotFoundError{Resource: "investment plan"}
			}
			return models.Investment{}, err
		}
		plan = &p
	} else if data.LegacyPlanName != "" {
		plan = s.resolveLegacyPlan(data.LegacyPlanName)
	} else {
		return models.Investment{}, common.NewValidationError("plan_id", "an investment plan is required")
	}

	investment := models.Investment{
		UserId:     data.UserId,
		Amount:     data.Amount,
		Status:     models.InvestmentStatusPending,
		OrderId:    uuid.NewString(),
		LegacyPlan: data.LegacyPlanName,
	}

	if plan != nil {
		if data.Amount < plan.MinimumDeposit {
			return models.Investment{}, common.NewValidationError("amount",
				fmt.Sprintf("minimum deposit for this plan is $%.2f", plan.MinimumDeposit))
		}
		if plan.MaximumDeposit != nil && data.Amount > *plan.MaximumDeposit {
			return models.Investment{}, common.NewValidationError("amount",
				fmt.Sprintf("maximum deposit for this plan is $%.2f", *plan.MaximumDeposit))
		}

		investment.InvestmentPlanId = &plan.ID
		if plan.CryptoWallet == nil {
			var wallet models.CryptoWallet
			if err := s.DB.First(&wallet, plan.CryptoWalletId).Error; err == nil {
				plan.CryptoWallet = &wallet
			}
		}
		if plan.CryptoWallet != nil {
			investment.WalletAddressUsed = plan.CryptoWallet.WalletAddress
		}
	}

	if err := s.DB.Create(&investment).Error; err != nil {
		return models.Investment{}, err
	}
	investment.Plan = plan
	return investment, nil
}

// InvestmentOverview pairs an investment with its derived metrics. The
// pointers are nil when the plan could not be resolved (legacy rows).
type InvestmentOverview struct {
	Investment            models.Investment `json:"investment"`
	DailyEarnings         *float64          `json:"daily_earnings"`
	ExpectedTotalEarnings *float64          `json:"expected_total_earnings"`
	ExpectedTotalReturn   *float64          `json:"expected_total_return"`
	DaysRemaining         *int              `json:"days_remaining"`
	ProgressPercentage    *float64          `json:"progress_percentage"`
}

func BuildInvestmentOverview(inv models.Investment, now time.Time) InvestmentOverview {
	return InvestmentOverview{
		Investment:            inv,
		DailyEarnings:         inv.DailyEarnings(),
		ExpectedTotalEarnings: inv.ExpectedTotalEarnings(),
		ExpectedTotalReturn:   inv.ExpectedTotalReturn(),
		DaysRemaining:         inv.DaysRemaining(now),
		ProgressPercentage:    inv.ProgressPercentage(now),
	}
}

func (s *InvestmentService) ListForUser(userId int) ([]InvestmentOverview, error) {
	var investments []models.Investment
	err := s.DB.Preload("Plan").
		Where("user_id = ?", userId).
		Order("date_invested DESC").
		Find(&investments).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	overviews := make([]InvestmentOverview, 0, len(investments))
	for _, inv := range investments {
		overviews = append(overviews, BuildInvestmentOverview(inv, now))
	}
	return overviews, nil
}

type AdminListInvestmentsDTO struct {
	Status string
	UserId int
	Page   int
	Limit  int
}

func (s *InvestmentService) AdminList(data AdminListInvestmentsDTO) (common.PaginationResult, error) {
	page, limit := common.NormalizePageLimit(data.Page, data.Limit)
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Investment{})
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}
	if data.UserId != 0 {
		query = query.Where("user_id = ?", data.UserId)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var list []models.Investment
	if err := query.Preload("Plan").
		Order("date_invested DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(list, total, page, limit, "Investments fetched successfully"), nil
}

// transition applies one guarded status change. The WHERE clause carries the
// allowed-transition set so a concurrent change degrades to a refusal.
func (s *InvestmentService) transition(id int, newStatus string, completedAt *time.Time) error {
	updates := map[string]interface{}{"status": newStatus}
	if completedAt != nil {
		updates["date_completed"] = completedAt
	}

	result := s.DB.Model(&models.Investment{}).
		Where("id = ? AND status IN ?", id, []string{models.InvestmentStatusPending, models.InvestmentStatusActive}).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var inv models.Investment
		if err := s.DB.First(&inv, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &common.NotFoundError{Resource: "investment"}
			}
			return err
		}
		return &common.TransitionError{Current: inv.Status, Attempted: newStatus}
	}
	return nil
}

func (s *InvestmentService) MarkActive(id int) error {
	return s.transition(id, models.InvestmentStatusActive, nil)
}

func (s *InvestmentService) MarkCompleted(id int, now time.Time) error {
	return s.transition(id, models.InvestmentStatusCompleted, &now)
}

func (s *InvestmentService) MarkCancelled(id int) error {
	return s.transition(id, models.InvestmentStatusCancelled, nil)
}

type BulkStatusDTO struct {
	Ids    []int  `json:"ids" binding:"required"`
	Action string `json:"action" binding:"required"` // activate | complete | cancel
}

// BulkUpdateStatus applies one transition per id, collecting per-item
// failures instead of aborting the batch.
func (s *InvestmentService) BulkUpdateStatus(data BulkStatusDTO) (common.BulkResult, error) {
	now := time.Now()
	result := common.BulkResult{}

	for _, id := range data.Ids {
		var err error
		switch data.Action {
		case "activate":
			err = s.MarkActive(id)
		case "complete":
			err = s.MarkCompleted(id, now)
		case "cancel":
			err = s.MarkCancelled(id)
		default:
			return common.BulkResult{}, common.NewValidationError("action", "unknown action: "+data.Action)
		}

		if err != nil {
			result.AddFailure(id, err)
		} else {
			result.AddSuccess()
		}
	}
	return result, nil
}
