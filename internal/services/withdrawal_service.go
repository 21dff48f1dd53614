package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"investment-service/internal/models"
	"investment-service/pkg/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WithdrawalService owns the withdrawal request state machine:
// pending -> processing -> completed, pending/processing -> rejected,
// pending/processing -> cancelled (user). completed/rejected/cancelled are
// terminal. processed_at is stamped only on completed and rejected.
type WithdrawalService struct {
	DB      *gorm.DB
	Auth    *AuthService
	Balance *BalanceService
	Settler Settler
}

// Settler hands settlement bookkeeping (balance debit, lifetime totals) off
// to the background worker once a request completes.
type Settler interface {
	EnqueueWithdrawalSettlement(withdrawalId, userId int, amount float64) error
}

func NewWithdrawalService(db *gorm.DB, auth *AuthService, balance *BalanceService, settler Settler) *WithdrawalService {
	return &WithdrawalService{DB: db, Auth: auth, Balance: balance, Settler: settler}
}

type CreateWithdrawalDTO struct {
	UserId           int
	Amount           float64 `json:"amount" binding:"required"`
	WithdrawalMethod string  `json:"withdrawal_method" binding:"required"`
	AccountDetails   string  `json:"account_details" binding:"required"`
	WithdrawalNote   string  `json:"withdrawal_note"`
}

// Create gates on the requester's withdrawal_enabled flag and the available
// balance, then writes a pending request. A blocked user gets the stored
// reason back so the caller can explain the refusal.
func (s *WithdrawalService) Create(data CreateWithdrawalDTO) (models.WithdrawalRequest, error) {
	profile, err := s.Auth.GetOrCreateProfile(data.UserId)
	if err != nil {
		return models.WithdrawalRequest{}, err
	}
	if !profile.WithdrawalEnabled {
		return models.WithdrawalRequest{}, &common.PolicyError{Reason: profile.WithdrawalDisabledReason}
	}

	if data.Amount <= 0 {
		return models.WithdrawalRequest{}, common.NewValidationError("amount", "amount must be greater than zero")
	}
	if strings.TrimSpace(data.WithdrawalMethod) == "" {
		return models.WithdrawalRequest{}, common.NewValidationError("withdrawal_method", "withdrawal method is required")
	}

	balance, err := s.Balance.GetOrCreateBalance(data.UserId)
	if err != nil {
		return models.WithdrawalRequest{}, err
	}
	if data.Amount > balance.Amount {
		return models.WithdrawalRequest{}, common.NewValidationError("amount", "you have insufficient balance to cover this withdrawal")
	}

	request := models.WithdrawalRequest{
		UserId:           data.UserId,
		Amount:           data.Amount,
		WithdrawalMethod: strings.TrimSpace(data.WithdrawalMethod),
		AccountDetails:   data.AccountDetails,
		WithdrawalNote:   data.WithdrawalNote,
		Status:           models.WithdrawalStatusPending,
		OrderId:          uuid.NewString(),
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return models.WithdrawalRequest{}, err
	}
	return request, nil
}

// loadOwned fetches a request enforcing ownership; admins pass userId 0.
func (s *WithdrawalService) loadOwned(id, userId int) (models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	query := s.DB.Where("id = ?", id)
	if userId != 0 {
		query = query.Where("user_id = ?", userId)
	}
	if err := query.First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.WithdrawalRequest{}, &common.NotFoundError{Resource: "withdrawal request"}
		}
		return models.WithdrawalRequest{}, err
	}
	return request, nil
}

// Cancel is the owner-initiated transition. It does not stamp processed_at
// and performs no balance mutation; any pre-deducted funds are the
// settlement process's concern.
func (s *WithdrawalService) Cancel(id, userId int) (models.WithdrawalRequest, error) {
	request, err := s.loadOwned(id, userId)
	if err != nil {
		return models.WithdrawalRequest{}, err
	}

	result := s.DB.Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status IN ?", id, []string{models.WithdrawalStatusPending, models.WithdrawalStatusProcessing}).
		Update("status", models.WithdrawalStatusCancelled)
	if result.Error != nil {
		return models.WithdrawalRequest{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WithdrawalRequest{}, &common.TransitionError{Current: request.Status, Attempted: models.WithdrawalStatusCancelled}
	}

	request.Status = models.WithdrawalStatusCancelled
	return request, nil
}

// MarkProcessing moves a pending request into admin processing.
func (s *WithdrawalService) MarkProcessing(id, adminId int) (models.WithdrawalRequest, error) {
	request, err := s.loadOwned(id, 0)
	if err != nil {
		return models.WithdrawalRequest{}, err
	}

	result := s.DB.Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status = ?", id, models.WithdrawalStatusPending).
		Update("status", models.WithdrawalStatusProcessing)
	if result.Error != nil {
		return models.WithdrawalRequest{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WithdrawalRequest{}, &common.TransitionError{Current: request.Status, Attempted: models.WithdrawalStatusProcessing}
	}

	request.Status = models.WithdrawalStatusProcessing
	return request, nil
}

type ApproveWithdrawalDTO struct {
	TransactionId string `json:"transaction_id"`
	AdminNote     string `json:"admin_note"`
}

// Approve completes a request: stamps processed_at and the processor,
// records the transaction id (generated when the admin leaves it blank) and
// queues settlement. Re-approving a completed request is a refused no-op,
// never a second processed_at stamp.
func (s *WithdrawalService) Approve(id, adminId int, data ApproveWithdrawalDTO) (models.WithdrawalRequest, error) {
	request, err := s.loadOwned(id, 0)
	if err != nil {
		return models.WithdrawalRequest{}, err
	}

	transactionId := strings.TrimSpace(data.TransactionId)
	if transactionId == "" {
		transactionId = uuid.NewString()
	}
	now := time.Now()

	result := s.DB.Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status IN ?", id, []string{models.WithdrawalStatusPending, models.WithdrawalStatusProcessing}).
		Updates(map[string]interface{}{
			"status":         models.WithdrawalStatusCompleted,
			"processed_at":   now,
			"processed_by":   adminId,
			"transaction_id": transactionId,
			"admin_note":     data.AdminNote,
		})
	if result.Error != nil {
		return models.WithdrawalRequest{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WithdrawalRequest{}, &common.TransitionError{Current: request.Status, Attempted: models.WithdrawalStatusCompleted}
	}

	if s.Settler != nil {
		if err := s.Settler.EnqueueWithdrawalSettlement(request.ID, request.UserId, request.Amount); err != nil {
			log.Printf("Failed to enqueue settlement for withdrawal %d: %v", request.ID, err)
		}
	}

	request.Status = models.WithdrawalStatusCompleted
	request.ProcessedAt = &now
	request.ProcessedBy = &adminId
	request.TransactionId = transactionId
	request.AdminNote = data.AdminNote
	return request, nil
}

type RejectWithdrawalDTO struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
	AdminNote       string `json:"admin_note"`
}

// Reject refuses a request with a mandatory reason, stamping processed_at
// and the processor.
func (s *WithdrawalService) Reject(id, adminId int, data RejectWithdrawalDTO) (models.WithdrawalRequest, error) {
	if strings.TrimSpace(data.RejectionReason) == "" {
		return models.WithdrawalRequest{}, common.NewValidationError("rejection_reason", "a rejection reason is required")
	}

	request, err := s.loadOwned(id, 0)
	if err != nil {
		return models.WithdrawalRequest{}, err
	}

	now := time.Now()
	result := s.DB.Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status IN ?", id, []string{models.WithdrawalStatusPending, models.WithdrawalStatusProcessing}).
		Updates(map[string]interface{}{
			"status":           models.WithdrawalStatusRejected,
			"processed_at":     now,
			"processed_by":     adminId,
			"rejection_reason": data.RejectionReason,
			"admin_note":       data.AdminNote,
		})
	if result.Error != nil {
		return models.WithdrawalRequest{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WithdrawalRequest{}, &common.TransitionError{Current: request.Status, Attempted: models.WithdrawalStatusRejected}
	}

	request.Status = models.WithdrawalStatusRejected
	request.ProcessedAt = &now
	request.ProcessedBy = &adminId
	request.RejectionReason = data.RejectionReason
	request.AdminNote = data.AdminNote
	return request, nil
}

type BulkWithdrawalDTO struct {
	Ids             []int  `json:"ids" binding:"required"`
	TransactionId   string `json:"transaction_id"`
	AdminNote       string `json:"admin_note"`
	RejectionReason string `json:"rejection_reason"`
}

// BulkApprove approves each selected request, skipping terminal ones and
// reporting per-item outcomes.
func (s *WithdrawalService) BulkApprove(adminId int, data BulkWithdrawalDTO) common.BulkResult {
	result := common.BulkResult{}
	for _, id := range data.Ids {
		_, err := s.Approve(id, adminId, ApproveWithdrawalDTO{TransactionId: data.TransactionId, AdminNote: data.AdminNote})
		if err != nil {
			result.AddFailure(id, err)
		} else {
			result.AddSuccess()
		}
	}
	return result
}

// BulkReject rejects each selected request with the shared reason.
func (s *WithdrawalService) BulkReject(adminId int, data BulkWithdrawalDTO) (common.BulkResult, error) {
	if strings.TrimSpace(data.RejectionReason) == "" {
		return common.BulkResult{}, common.NewValidationError("rejection_reason", "a rejection reason is required")
	}

	result := common.BulkResult{}
	for _, id := range data.Ids {
		_, err := s.Reject(id, adminId, RejectWithdrawalDTO{RejectionReason: data.RejectionReason, AdminNote: data.AdminNote})
		if err != nil {
			result.AddFailure(id, err)
		} else {
			result.AddSuccess()
		}
	}
	return result, nil
}

// DisableUserWithdrawals flips the withdrawal gate off for the owner of each
// selected request, with an auto-generated reason naming the request. One
// user failing never stops the rest.
func (s *WithdrawalService) DisableUserWithdrawals(ids []int) common.BulkResult {
	result := common.BulkResult{}
	for _, id := range ids {
		request, err := s.loadOwned(id, 0)
		if err != nil {
			result.AddFailure(id, err)
			continue
		}

		profile, err := s.Auth.GetOrCreateProfile(request.UserId)
		if err != nil {
			result.AddFailure(id, err)
			continue
		}

		err = s.DB.Model(&profile).Updates(map[string]interface{}{
			"withdrawal_enabled":         false,
			"withdrawal_disabled_reason": fmt.Sprintf("Disabled via withdrawal request #%d", request.ID),
		}).Error
		if err != nil {
			result.AddFailure(id, err)
			continue
		}
		result.AddSuccess()
	}
	return result
}

func (s *WithdrawalService) ListForUser(userId int) ([]models.WithdrawalRequest, error) {
	var requests []models.WithdrawalRequest
	err := s.DB.Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

type AdminListWithdrawalsDTO struct {
	Status string
	UserId int
	From   string
	To     string
	Page   int
	Limit  int
}

func (s *WithdrawalService) AdminList(data AdminListWithdrawalsDTO) (common.PaginationResult, error) {
	page, limit := common.NormalizePageLimit(data.Page, data.Limit)
	offset := (page - 1) * limit

	query := s.DB.Model(&models.WithdrawalRequest{})
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}
	if data.UserId != 0 {
		query = query.Where("user_id = ?", data.UserId)
	}
	if data.From != "" && data.To != "" {
		query = query.Where("created_at BETWEEN ? AND ?", data.From, data.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var list []models.WithdrawalRequest
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(list, total, page, limit, "Withdrawal requests fetched successfully"), nil
}
