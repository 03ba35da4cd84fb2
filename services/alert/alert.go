package alert

import (
	"context"
	"errors"
	"fmt"

	alertRepo "fleetrent/database/repository/alert"
	"fleetrent/models"
)

// NotFoundError signals an alert lookup that matched nothing within the
// dealer's scope.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("alert %s not found", e.ID)
}

// AlertService exposes the operator-facing alert feed.
type AlertService interface {
	List(ctx context.Context, dealer models.DealerID, unacknowledgedOnly bool) ([]models.Alert, error)
	Acknowledge(ctx context.Context, dealer models.DealerID, alertID string) error
}

// DefaultAlertService implements AlertService.
type DefaultAlertService struct {
	Alerts alertRepo.AlertRepository
}

func (svc *DefaultAlertService) List(ctx context.Context, dealer models.DealerID, unacknowledgedOnly bool) ([]models.Alert, error) {
	alerts, err := svc.Alerts.List(ctx, dealer, unacknowledgedOnly)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	return alerts, nil
}

func (svc *DefaultAlertService) Acknowledge(ctx context.Context, dealer models.DealerID, alertID string) error {
	if err := svc.Alerts.Acknowledge(ctx, dealer, alertID); err != nil {
		if errors.Is(err, alertRepo.ErrNotFound) {
			return NotFoundError{ID: alertID}
		}
		return fmt.Errorf("acknowledge alert %s: %w", alertID, err)
	}
	return nil
}
