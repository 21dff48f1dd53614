package worker

import (
	"log"
	"time"

	"investment-service/internal/consumers"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

// Settler enqueues settlement bookkeeping for approved withdrawals. The
// withdrawal service holds it as an interface so tests can substitute it.
type Settler struct {
	Client *asynq.Client
}

func NewSettler(client *asynq.Client) *Settler {
	return &Settler{Client: client}
}

func (s *Settler) EnqueueWithdrawalSettlement(withdrawalId, userId int, amount float64) error {
	task, err := NewWithdrawalSettlementTask(consumers.WithdrawalSettlementDTO{
		WithdrawalId: withdrawalId,
		UserId:       userId,
		Amount:       amount,
	})
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, asynq.Queue("critical"))
	return err
}

// StartAccrualScheduler enqueues the daily earnings sweep at midnight.
func StartAccrualScheduler(client *asynq.Client) {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		log.Println("Enqueuing daily earnings accrual sweep...")
		task, err := NewAccrualSweepTask(consumers.AccrualSweepDTO{
			Date: time.Now().Format("2006-01-02"),
		})
		if err != nil {
			log.Printf("Error building accrual sweep task: %v", err)
			return
		}
		if _, err := client.Enqueue(task); err != nil {
			log.Printf("Error enqueuing accrual sweep: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling accrual sweep: %v", err)
		return
	}
	c.Start()
	log.Println("Earnings accrual scheduler started (Daily at 00:00)")
}
