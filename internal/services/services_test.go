package services

import (
	"testing"

	"investment-service/internal/database"
	"investment-service/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.MigrateWith(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func seedWallet(t *testing.T, db *gorm.DB) models.CryptoWallet {
	t.Helper()

	wallet := models.CryptoWallet{
		WalletType:    "BTC",
		WalletAddress: "bc1qtestaddress",
		IsActive:      true,
	}
	if err := db.Create(&wallet).Error; err != nil {
		t.Fatalf("Failed to seed wallet: %v", err)
	}
	return wallet
}

func seedPlan(t *testing.T, db *gorm.DB, title string, min float64, max *float64) models.InvestmentPlan {
	t.Helper()

	wallet := seedWallet(t, db)
	plan := models.InvestmentPlan{
		Title:                   title,
		MinimumDeposit:          min,
		MaximumDeposit:          max,
		DailyEarningsPercentage: 1.8,
		InvestmentDurationDays:  30,
		DepositReturn:           true,
		CryptoWalletId:          wallet.ID,
		IsActive:                true,
	}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("Failed to seed plan: %v", err)
	}
	plan.CryptoWallet = &wallet
	return plan
}
