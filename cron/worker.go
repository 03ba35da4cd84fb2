package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"fleetrent/config"
	alertRepo "fleetrent/database/repository/alert"
	"fleetrent/models"
	"fleetrent/services/alert"
	"fleetrent/utils"
)

// InitAlertWorker runs the async alert worker in the background. It drains
// the queue the dispatcher feeds and persists each payload as an Alert
// document.
func InitAlertWorker(alerts alertRepo.AlertRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(alert.TaskAlertPersist, handleAlertTask(alerts))

	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting alert worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("Alert worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("Alert worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleAlertTask(alerts alertRepo.AlertRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.AlertPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("Invalid alert payload", zap.Error(err))
			return err
		}

		a := &models.Alert{
			DealerID:  p.DealerID,
			AlertID:   utils.NewEntityID("ALT"),
			Type:      p.Type,
			Severity:  p.Severity,
			Message:   p.Message,
			RentalID:  p.RentalID,
			CreatedAt: time.Now(),
		}
		if err := alerts.Create(ctx, a); err != nil {
			utils.GetLogger().Error("Failed to persist alert",
				zap.String("dealerId", string(p.DealerID)), zap.String("rentalId", p.RentalID), zap.Error(err))
			return err
		}

		utils.GetLogger().Info("Alert persisted",
			zap.String("dealerId", string(p.DealerID)),
			zap.String("alertId", a.AlertID),
			zap.String("type", string(p.Type)))
		return nil
	}
}
