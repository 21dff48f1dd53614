package services

import (
	"investment-service/internal/models"
	"investment-service/pkg/common"

	"gorm.io/gorm"
)

type BalanceService struct {
	DB *gorm.DB
}

func NewBalanceService(db *gorm.DB) *BalanceService {
	return &BalanceService{DB: db}
}

// GetOrCreateBalance lazily creates the per-user balance row on first access.
func (s *BalanceService) GetOrCreateBalance(userId int) (models.Balance, error) {
	var balance models.Balance
	err := s.DB.Where(models.Balance{UserId: userId}).FirstOrCreate(&balance).Error
	return balance, err
}

func (s *BalanceService) GetOrCreateTotalEarnings(userId int) (models.TotalEarnings, error) {
	var earnings models.TotalEarnings
	err := s.DB.Where(models.TotalEarnings{UserId: userId}).FirstOrCreate(&earnings).Error
	return earnings, err
}

func (s *BalanceService) GetOrCreateTotalWithdrawn(userId int) (models.TotalWithdrawn, error) {
	var withdrawn models.TotalWithdrawn
	err := s.DB.Where(models.TotalWithdrawn{UserId: userId}).FirstOrCreate(&withdrawn).Error
	return withdrawn, err
}

// Credit adds to the user's balance and writes an audit transaction.
func (s *BalanceService) Credit(userId int, amount float64, subject, description string) error {
	if amount <= 0 {
		return common.NewValidationError("amount", "credit amount must be positive")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var balance models.Balance
		if err := tx.Where(models.Balance{UserId: userId}).FirstOrCreate(&balance).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Balance{}).Where("user_id = ?", userId).
			Update("amount", gorm.Expr("amount + ?", amount)).Error; err != nil {
			return err
		}

		return NewHelperService(tx).SaveTransaction(TransactionData{
			UserId:        userId,
			TransactionNo: common.GenerateTrxNo(),
			Amount:        amount,
			TrxType:       models.TrxTypeCredit,
			Subject:       subject,
			Description:   description,
			Balance:       balance.Amount + amount,
		})
	})
}

// Debit removes from the user's balance, refusing to take it below zero.
func (s *BalanceService) Debit(userId int, amount float64, subject, description string) error {
	if amount <= 0 {
		return common.NewValidationError("amount", "debit amount must be positive")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var balance models.Balance
		if err := tx.Where(models.Balance{UserId: userId}).FirstOrCreate(&balance).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Balance{}).
			Where("user_id = ? AND amount >= ?", userId, amount).
			Update("amount", gorm.Expr("amount - ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.NewValidationError("amount", "insufficient balance")
		}

		return NewHelperService(tx).SaveTransaction(TransactionData{
			UserId:        userId,
			TransactionNo: common.GenerateTrxNo(),
			Amount:        amount,
			TrxType:       models.TrxTypeDebit,
			Subject:       subject,
			Description:   description,
			Balance:       balance.Amount - amount,
		})
	})
}

// AddTotalEarnings bumps the lifetime earnings counter.
func (s *BalanceService) AddTotalEarnings(userId int, amount float64) error {
	if _, err := s.GetOrCreateTotalEarnings(userId); err != nil {
		return err
	}
	return s.DB.Model(&models.TotalEarnings{}).Where("user_id = ?", userId).
		Update("total_earnings", gorm.Expr("total_earnings + ?", amount)).Error
}

// AddTotalWithdrawn bumps the lifetime withdrawal counter.
func (s *BalanceService) AddTotalWithdrawn(userId int, amount float64) error {
	if _, err := s.GetOrCreateTotalWithdrawn(userId); err != nil {
		return err
	}
	return s.DB.Model(&models.TotalWithdrawn{}).Where("user_id = ?", userId).
		Update("total_withdraw", gorm.Expr("total_withdraw + ?", amount)).Error
}
