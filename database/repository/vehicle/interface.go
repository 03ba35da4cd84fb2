package vehicleRepo

import (
	"context"
	"errors"
	"time"

	"fleetrent/models"
)

// ErrNotAvailable is returned by MarkRented when the vehicle is no longer
// Available by the time the write lands. Two racing creates against the same
// vehicle both pass the read-side check; the second one aborts here.
var ErrNotAvailable = errors.New("vehicle is not available")

// Filter narrows a vehicle listing.
type Filter struct {
	Status    models.VehicleStatus
	Condition models.VehicleCondition
	Page      int64
	Limit     int64
}

// VehicleRepository is the tenant-scoped data access surface for vehicles.
// Lookups return (nil, nil) when no document matches within the dealer's scope.
type VehicleRepository interface {
	GetByVehicleID(ctx context.Context, dealer models.DealerID, vehicleID string) (*models.Vehicle, error)
	List(ctx context.Context, dealer models.DealerID, f Filter) ([]models.Vehicle, int64, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Update(ctx context.Context, dealer models.DealerID, vehicle *models.Vehicle) error
	// MarkRented attaches a rental to an Available vehicle in one guarded write.
	MarkRented(ctx context.Context, dealer models.DealerID, vehicleID, rentalID string, expectedReturn time.Time) error
	CountByStatus(ctx context.Context, dealer models.DealerID) (map[models.VehicleStatus]int64, error)
}
