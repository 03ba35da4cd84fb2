package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	alertRepo "fleetrent/database/repository/alert"
	rentalRepo "fleetrent/database/repository/rental"
	"fleetrent/models"
	"fleetrent/utils"
)

// OverdueNotifier raises the overdue alert for a rental.
type OverdueNotifier interface {
	RentalOverdue(ctx context.Context, dealer models.DealerID, rentalID string, daysOverdue int) error
}

// OverdueScanner periodically sweeps Active rentals past their expected end
// date and raises advisory alerts. It never flips rental status: Overdue is
// decided at return time, the sweep only tells the dealer to chase.
type OverdueScanner struct {
	cron     *cron.Cron
	rentals  rentalRepo.RentalRepository
	alerts   alertRepo.AlertRepository
	notifier OverdueNotifier
}

// NewOverdueScanner schedules the hourly sweep. Call Start to begin.
func NewOverdueScanner(rentals rentalRepo.RentalRepository, alerts alertRepo.AlertRepository, notifier OverdueNotifier) *OverdueScanner {
	s := &OverdueScanner{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		rentals:  rentals,
		alerts:   alerts,
		notifier: notifier,
	}
	if _, err := s.cron.AddFunc("@hourly", s.Scan); err != nil {
		utils.GetLogger().Error("Failed to register overdue scan job", zap.Error(err))
	}
	return s
}

func (s *OverdueScanner) Start() {
	s.cron.Start()
}

func (s *OverdueScanner) Stop() {
	s.cron.Stop()
}

// Scan is one sweep pass. Exported so the scheduler and tests share it.
func (s *OverdueScanner) Scan() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger := utils.GetLogger()
	now := time.Now()

	overdue, err := s.rentals.ListOverdueActive(ctx, now)
	if err != nil {
		logger.Error("Overdue scan failed", zap.Error(err))
		return
	}

	raised := 0
	for _, r := range overdue {
		open, err := s.alerts.HasOpenAlert(ctx, r.DealerID, models.AlertRentalOverdue, r.RentalID)
		if err != nil {
			logger.Error("Failed to check open alerts",
				zap.String("rentalId", r.RentalID), zap.Error(err))
			continue
		}
		if open {
			continue
		}

		daysOverdue := int(now.Sub(r.ExpectedEndDate).Hours() / 24)
		if daysOverdue < 1 {
			daysOverdue = 1
		}
		if err := s.notifier.RentalOverdue(ctx, r.DealerID, r.RentalID, daysOverdue); err != nil {
			logger.Error("Failed to raise overdue alert",
				zap.String("rentalId", r.RentalID), zap.Error(err))
			continue
		}
		raised++
	}

	logger.Info("Overdue scan completed",
		zap.Int("overdue", len(overdue)), zap.Int("alertsRaised", raised))
}
