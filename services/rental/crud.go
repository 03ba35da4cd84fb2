package rental

import (
	"context"
	"fmt"

	rentalRepo "fleetrent/database/repository/rental"
	"fleetrent/models"
)

// loadLifecycleEntities fetches the rental plus the vehicle and customer it
// references, failing NotFound for anything absent from the dealer's scope.
func (svc *DefaultRentalService) loadLifecycleEntities(ctx context.Context, dealer models.DealerID, rentalID string) (*models.Rental, *models.Vehicle, *models.Customer, error) {
	r, err := svc.Rentals.GetByRentalID(ctx, dealer, rentalID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load rental %s: %w", rentalID, err)
	}
	if r == nil {
		return nil, nil, nil, NotFoundError{Entity: "rental", ID: rentalID}
	}

	vehicle, err := svc.Vehicles.GetByVehicleID(ctx, dealer, r.VehicleID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load vehicle %s: %w", r.VehicleID, err)
	}
	if vehicle == nil {
		return nil, nil, nil, NotFoundError{Entity: "vehicle", ID: r.VehicleID}
	}

	customer, err := svc.Customers.GetByCustomerID(ctx, dealer, r.CustomerID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load customer %s: %w", r.CustomerID, err)
	}
	if customer == nil {
		return nil, nil, nil, NotFoundError{Entity: "customer", ID: r.CustomerID}
	}

	return r, vehicle, customer, nil
}

// GetByID returns a rental populated with its customer and vehicle summaries.
func (svc *DefaultRentalService) GetByID(ctx context.Context, dealer models.DealerID, rentalID string) (*models.RentalDetail, error) {
	r, err := svc.Rentals.GetByRentalID(ctx, dealer, rentalID)
	if err != nil {
		return nil, fmt.Errorf("get rental %s: %w", rentalID, err)
	}
	if r == nil {
		return nil, NotFoundError{Entity: "rental", ID: rentalID}
	}

	detail := &models.RentalDetail{Rental: *r}
	// A dangling reference leaves the summary empty rather than failing the read.
	if vehicle, err := svc.Vehicles.GetByVehicleID(ctx, dealer, r.VehicleID); err == nil && vehicle != nil {
		detail.Vehicle = vehicle.Summary()
	}
	if customer, err := svc.Customers.GetByCustomerID(ctx, dealer, r.CustomerID); err == nil && customer != nil {
		detail.Customer = customer.Summary()
	}
	return detail, nil
}

// List returns a page of rentals matching the filter.
func (svc *DefaultRentalService) List(ctx context.Context, dealer models.DealerID, f rentalRepo.Filter) ([]models.Rental, int64, error) {
	rentals, total, err := svc.Rentals.List(ctx, dealer, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list rentals: %w", err)
	}
	if rentals == nil {
		rentals = []models.Rental{}
	}
	return rentals, total, nil
}
