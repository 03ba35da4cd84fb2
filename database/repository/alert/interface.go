package alertRepo

import (
	"context"
	"errors"

	"fleetrent/models"
)

// ErrNotFound is returned by Acknowledge when no alert matches within the
// dealer's scope.
var ErrNotFound = errors.New("alert not found")

// AlertRepository is the tenant-scoped data access surface for alerts.
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	List(ctx context.Context, dealer models.DealerID, unacknowledgedOnly bool) ([]models.Alert, error)
	Acknowledge(ctx context.Context, dealer models.DealerID, alertID string) error
	// HasOpenAlert reports whether an unacknowledged alert of the given type
	// already references the rental, so the overdue sweep does not raise
	// duplicates.
	HasOpenAlert(ctx context.Context, dealer models.DealerID, alertType models.AlertType, rentalID string) (bool, error)
}
