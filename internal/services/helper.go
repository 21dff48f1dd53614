package services

import (
	"investment-service/internal/models"

	"gorm.io/gorm"
)

type HelperService struct {
	DB *gorm.DB
}

func NewHelperService(db *gorm.DB) *HelperService {
	return &HelperService{DB: db}
}

type TransactionData struct {
	UserId        int
	TransactionNo string
	Amount        float64
	TrxType       string
	Subject       string
	Description   string
	Balance       float64
}

// SaveTransaction writes one audit line for a balance movement. Callers pass
// the post-movement balance so the history is self-contained.
func (s *HelperService) SaveTransaction(data TransactionData) error {
	trx := models.Transaction{
		UserId:        data.UserId,
		TransactionNo: data.TransactionNo,
		Amount:        data.Amount,
		TrxType:       data.TrxType,
		Subject:       data.Subject,
		Description:   data.Description,
		Balance:       data.Balance,
	}
	return s.DB.Create(&trx).Error
}
