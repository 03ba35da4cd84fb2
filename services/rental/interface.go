package rental

import (
	"context"

	"fleetrent/database"
	customerRepo "fleetrent/database/repository/customer"
	paymentRepo "fleetrent/database/repository/payment"
	rentalRepo "fleetrent/database/repository/rental"
	vehicleRepo "fleetrent/database/repository/vehicle"
	"fleetrent/models"
)

// AlertDispatcher decouples the lifecycle engine from alert persistence.
// Dispatch failures are logged, never surfaced: a queue outage must not fail
// a return.
type AlertDispatcher interface {
	DamageReported(ctx context.Context, dealer models.DealerID, rentalID, notes string, amount float64) error
}

// RentalService is the lifecycle engine: create, return, extend and cancel
// rentals while keeping the vehicle, customer and derived payment records
// consistent.
type RentalService interface {
	Create(ctx context.Context, dealer models.DealerID, input models.CreateRentalInput) (*models.RentalDetail, error)
	Return(ctx context.Context, dealer models.DealerID, rentalID string, input models.ReturnRentalInput) (*models.RentalDetail, error)
	Extend(ctx context.Context, dealer models.DealerID, rentalID string, input models.ExtendRentalInput) (*models.RentalDetail, error)
	Cancel(ctx context.Context, dealer models.DealerID, rentalID string, input models.CancelRentalInput) (*models.RentalDetail, error)
	GetByID(ctx context.Context, dealer models.DealerID, rentalID string) (*models.RentalDetail, error)
	List(ctx context.Context, dealer models.DealerID, f rentalRepo.Filter) ([]models.Rental, int64, error)
}

// DefaultRentalService implements RentalService.
type DefaultRentalService struct {
	Rentals   rentalRepo.RentalRepository
	Vehicles  vehicleRepo.VehicleRepository
	Customers customerRepo.CustomerRepository
	Payments  paymentRepo.PaymentRepository
	Alerts    AlertDispatcher
	Txn       database.TxnRunner
}
