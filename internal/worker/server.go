package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"investment-service/internal/consumers"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Processor *consumers.EarningsProcessor
}

func NewWorker(processor *consumers.EarningsProcessor) *Worker {
	return &Worker{Processor: processor}
}

func (w *Worker) HandleAccrualSweep(ctx context.Context, t *asynq.Task) error {
	var p consumers.AccrualSweepDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	return w.Processor.ProcessAccrualSweep(p)
}

func (w *Worker) HandleWithdrawalSettlement(ctx context.Context, t *asynq.Task) error {
	var p consumers.WithdrawalSettlementDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	return w.Processor.ProcessWithdrawalSettlement(p)
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.EarningsProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeAccrualSweep, worker.HandleAccrualSweep)
	mux.HandleFunc(TypeWithdrawalSettlement, worker.HandleWithdrawalSettlement)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run worker server: %v", err)
	}
}
