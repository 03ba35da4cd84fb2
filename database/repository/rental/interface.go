package rentalRepo

import (
	"context"
	"time"

	"fleetrent/models"
)

// Filter narrows a rental listing.
type Filter struct {
	Status     models.RentalStatus
	CustomerID string
	VehicleID  string
	Search     string
	Page       int64
	Limit      int64
}

// RentalRepository is the tenant-scoped data access surface for rentals.
// Lookups return (nil, nil) when no document matches within the dealer's scope.
type RentalRepository interface {
	GetByRentalID(ctx context.Context, dealer models.DealerID, rentalID string) (*models.Rental, error)
	List(ctx context.Context, dealer models.DealerID, f Filter) ([]models.Rental, int64, error)
	Create(ctx context.Context, rental *models.Rental) error
	Update(ctx context.Context, dealer models.DealerID, rental *models.Rental) error
	CountByStatus(ctx context.Context, dealer models.DealerID) (map[models.RentalStatus]int64, error)
	Recent(ctx context.Context, dealer models.DealerID, limit int64) ([]models.Rental, error)
	// ListOverdueActive is the maintenance-scan path: it crosses tenants by
	// design and is reachable only from the scheduled overdue sweep, never
	// from a request handler.
	ListOverdueActive(ctx context.Context, asOf time.Time) ([]models.Rental, error)
}
