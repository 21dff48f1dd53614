package services

import (
	"errors"
	"strings"

	"investment-service/internal/models"
	"investment-service/pkg/common"

	"gorm.io/gorm"
)

// WalletService is the admin-managed registry of deposit addresses, one per
// currency.
type WalletService struct {
	DB *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{DB: db}
}

type WalletDTO struct {
	WalletType    string `json:"wallet_type" binding:"required"`
	WalletAddress string `json:"wallet_address" binding:"required"`
	IsActive      *bool  `json:"is_active"`
}

func (s *WalletService) List() ([]models.CryptoWallet, error) {
	var wallets []models.CryptoWallet
	err := s.DB.Order("wallet_type ASC").Find(&wallets).Error
	return wallets, err
}

func (s *WalletService) Create(data WalletDTO) (models.CryptoWallet, error) {
	walletType := strings.ToUpper(strings.TrimSpace(data.WalletType))
	if !models.IsValidWalletType(walletType) {
		return models.CryptoWallet{}, common.NewValidationError("wallet_type", "unsupported wallet type")
	}
	if strings.TrimSpace(data.WalletAddress) == "" {
		return models.CryptoWallet{}, common.NewValidationError("wallet_address", "wallet address is required")
	}

	var count int64
	if err := s.DB.Model(&models.CryptoWallet{}).Where("wallet_type = ?", walletType).Count(&count).Error; err != nil {
		return models.CryptoWallet{}, err
	}
	if count > 0 {
		return models.CryptoWallet{}, common.NewValidationError("wallet_type", "a wallet for this currency already exists")
	}

	wallet := models.CryptoWallet{
		WalletType:    walletType,
		WalletAddress: strings.TrimSpace(data.WalletAddress),
		IsActive:      true,
	}
	if data.IsActive != nil {
		wallet.IsActive = *data.IsActive
	}

	if err := s.DB.Create(&wallet).Error; err != nil {
		return models.CryptoWallet{}, err
	}
	return wallet, nil
}

func (s *WalletService) Update(id int, data WalletDTO) (models.CryptoWallet, error) {
	var wallet models.CryptoWallet
	if err := s.DB.First(&wallet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CryptoWallet{}, &common.NotFoundError{Resource: "wallet"}
		}
		return models.CryptoWallet{}, err
	}

	if strings.TrimSpace(data.WalletAddress) == "" {
		return models.CryptoWallet{}, common.NewValidationError("wallet_address", "wallet address is required")
	}

	updates := map[string]interface{}{
		"wallet_address": strings.TrimSpace(data.WalletAddress),
	}
	if data.IsActive != nil {
		updates["is_active"] = *data.IsActive
	}

	if err := s.DB.Model(&wallet).Updates(updates).Error; err != nil {
		return models.CryptoWallet{}, err
	}

	if err := s.DB.First(&wallet, id).Error; err != nil {
		return models.CryptoWallet{}, err
	}
	return wallet, nil
}
