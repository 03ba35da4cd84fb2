package alert

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"fleetrent/config"
	"fleetrent/models"
)

// TaskAlertPersist is the queued task type carrying a models.AlertPayload.
const TaskAlertPersist = "alert:persist"

// AsynqDispatcher enqueues alert payloads for the background worker to
// persist. Keeping persistence off the request path means a queue outage
// degrades alerting, not the lifecycle operation that raised it.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher builds a dispatcher against the configured queue DB.
func NewAsynqDispatcher() *AsynqDispatcher {
	return &AsynqDispatcher{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// DamageReported raises a high-severity alert for a damaged return.
func (d *AsynqDispatcher) DamageReported(ctx context.Context, dealer models.DealerID, rentalID, notes string, amount float64) error {
	msg := fmt.Sprintf("Vehicle returned damaged on rental %s ($%.2f in damage charges)", rentalID, amount)
	if notes != "" {
		msg = fmt.Sprintf("%s: %s", msg, notes)
	}
	return d.enqueue(ctx, models.AlertPayload{
		DealerID: dealer,
		Type:     models.AlertDamageReported,
		Severity: "high",
		Message:  msg,
		RentalID: rentalID,
	})
}

// RentalOverdue raises an advisory alert for an Active rental past its
// expected end date.
func (d *AsynqDispatcher) RentalOverdue(ctx context.Context, dealer models.DealerID, rentalID string, daysOverdue int) error {
	return d.enqueue(ctx, models.AlertPayload{
		DealerID: dealer,
		Type:     models.AlertRentalOverdue,
		Severity: "medium",
		Message:  fmt.Sprintf("Rental %s is %d day(s) past its expected end date", rentalID, daysOverdue),
		RentalID: rentalID,
	})
}

func (d *AsynqDispatcher) enqueue(ctx context.Context, payload models.AlertPayload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal alert payload: %w", err)
	}
	if _, err := d.client.EnqueueContext(ctx, asynq.NewTask(TaskAlertPersist, b)); err != nil {
		return fmt.Errorf("enqueue alert task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
