package models

import (
	"time"
)

// WalletTypes is the set of currencies the platform accepts deposits in.
var WalletTypes = []string{"BTC", "ETH", "BNB", "USDT", "LTC", "ADA", "DOT", "SOL"}

func IsValidWalletType(walletType string) bool {
	for _, t := range WalletTypes {
		if t == walletType {
			return true
		}
	}
	return false
}

// CryptoWallet is an admin-managed deposit address, one per currency.
type CryptoWallet struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	WalletType    string    `gorm:"column:wallet_type;size:10;not null;uniqueIndex" json:"wallet_type"`
	WalletAddress string    `gorm:"column:wallet_address;size:255;not null" json:"wallet_address"`
	IsActive      bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CryptoWallet) TableName() string {
	return "crypto_wallets"
}
