package worker

import (
	"encoding/json"

	"investment-service/internal/consumers"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypeAccrualSweep         = "earnings-accrual-sweep"
	TypeWithdrawalSettlement = "withdrawal-settlement"
)

// Task Creators

func NewAccrualSweepTask(payload consumers.AccrualSweepDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAccrualSweep, data), nil
}

func NewWithdrawalSettlementTask(payload consumers.WithdrawalSettlementDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWithdrawalSettlement, data), nil
}
